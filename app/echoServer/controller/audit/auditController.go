package audit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	as "github.com/jzakotnik/openlibry-sub000/service/audit"
)

type Controller struct {
	Svc as.Service
	Log *slog.Logger
}

// GET /v1/audit?event_type=&since=&until=&limit=
func (h *Controller) List(c echo.Context) error {
	var f as.Filter
	f.EventType = c.QueryParam("event_type")

	if v := c.QueryParam("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid since"})
		}
		f.Since = &t
	}
	if v := c.QueryParam("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid until"})
		}
		f.Until = &t
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid limit"})
		}
		f.Limit = n
	}

	records, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("audit list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": records})
}
