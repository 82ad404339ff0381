// Package main openlibry rental API.
//
// @title           openlibry API
// @version         1.0
// @description     Library management service (books, users, rentals, audit log).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jzakotnik/openlibry-sub000/app/echoServer"
	auditctrl "github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/audit"
	bookctrl "github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/book"
	rentalctrl "github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/rental"
	userctrl "github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/user"
	"github.com/jzakotnik/openlibry-sub000/app/echoServer/validation"
	"github.com/jzakotnik/openlibry-sub000/config"
	auditrepo "github.com/jzakotnik/openlibry-sub000/repository/audit"
	bookrepo "github.com/jzakotnik/openlibry-sub000/repository/book"
	rentalrepo "github.com/jzakotnik/openlibry-sub000/repository/rental"
	userrepo "github.com/jzakotnik/openlibry-sub000/repository/user"
	auditsvc "github.com/jzakotnik/openlibry-sub000/service/audit"
	booksvc "github.com/jzakotnik/openlibry-sub000/service/book"
	rentalsvc "github.com/jzakotnik/openlibry-sub000/service/rental"
	usersvc "github.com/jzakotnik/openlibry-sub000/service/user"
	"github.com/jzakotnik/openlibry-sub000/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := auditrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	ur := userrepo.New(db)

	// services
	as := auditsvc.New(ar, log)
	rs := rentalsvc.New(rr, as, cfg.Rental, rentalsvc.SystemClock())
	ov := rentalsvc.NewReporter(rr, rentalsvc.SystemClock())
	bs := booksvc.New(br, as)
	us := usersvc.New(ur, rs, as)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Overdue: ov, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	auditC := &auditctrl.Controller{Svc: as, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:   bookC,
		Rental: rentalC,
		User:   userC,
		Audit:  auditC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
