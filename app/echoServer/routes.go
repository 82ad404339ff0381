package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/audit"
	"github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/book"
	"github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/rental"
	"github.com/jzakotnik/openlibry-sub000/app/echoServer/controller/user"
)

type C struct {
	Book   *book.Controller
	Rental *rental.Controller
	User   *user.Controller
	Audit  *audit.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Books (catalog)
	v1.POST("/books", c.Book.Create)
	v1.GET("/books", c.Book.List)
	v1.GET("/books/:id", c.Book.Detail)
	v1.PUT("/books/:id", c.Book.Update)
	v1.PUT("/books/:id/status", c.Book.SetStatus)
	v1.DELETE("/books/:id", c.Book.Delete)

	// Rental lifecycle
	v1.POST("/books/:id/rent", c.Rental.Rent)
	v1.POST("/books/:id/return", c.Rental.Return)
	v1.POST("/books/:id/extend", c.Rental.Extend)
	v1.GET("/books/:id/rental", c.Rental.Status)
	v1.GET("/rentals/overdue", c.Rental.OverdueList)

	// Users
	v1.POST("/users", c.User.Create)
	v1.GET("/users", c.User.List)
	v1.GET("/users/:id", c.User.Detail)
	v1.PUT("/users/:id", c.User.Update)
	v1.DELETE("/users/:id", c.User.Deactivate)

	// Audit
	v1.GET("/audit", c.Audit.List)
}
