package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rs "github.com/jzakotnik/openlibry-sub000/service/rental"
)

type Controller struct {
	Svc     rs.Service
	Overdue rs.Reporter
	V       *validator.Validate
	Log     *slog.Logger
}

// POST /v1/books/:id/rent
func (h *Controller) Rent(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	due, err := h.Svc.Rent(c.Request().Context(), id, req.UserID)
	if err != nil {
		h.Log.Error("rent", "book_id", id, "user_id", req.UserID, "err", err)
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case rs.ErrAlreadyRented:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book already rented"})
		case rs.ErrConflict:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "conflict, please retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"book_id":  id,
		"user_id":  req.UserID,
		"due_date": due.Format(time.RFC3339),
	})
}

// POST /v1/books/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Return(c.Request().Context(), id); err != nil {
		h.Log.Error("return", "book_id", id, "err", err)
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrConflict:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "conflict, please retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned"})
}

// POST /v1/books/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	due, count, err := h.Svc.Extend(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("extend", "book_id", id, "err", err)
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrNotRented:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book not rented"})
		case rs.ErrMaxExtensions:
			return c.JSON(http.StatusConflict, echo.Map{"message": "max extensions reached"})
		case rs.ErrConflict:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "conflict, please retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"book_id":       id,
		"due_date":      due.Format(time.RFC3339),
		"renewal_count": count,
	})
}

// GET /v1/books/:id/rental
func (h *Controller) Status(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	view, err := h.Svc.Status(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("rental status", "book_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, view)
}

// GET /v1/rentals/overdue
func (h *Controller) OverdueList(c echo.Context) error {
	books, err := h.Overdue.Overdue(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

func bookID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
