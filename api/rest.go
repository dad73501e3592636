// Package api
package api

import (
	"github.com/labstack/echo"
)

// RestServer define all API expose
type RestServer interface {
	// General
	Ping(c echo.Context) error
	ServerStatus(c echo.Context) error
	UpdateServerStatus(c echo.Context) error

	IPages

	Search(c echo.Context) error
	Session(c echo.Context) error
}

// IPages render one dashboard page per request.
type IPages interface {
	Home(c echo.Context) error
	Cryptocurrencies(c echo.Context) error
	Exchanges(c echo.Context) error
	News(c echo.Context) error
	Crypto(c echo.Context) error
}
