/*
 *  Copyright 2018 KardiaChain
 *  This file is part of the go-kardia library.
 *
 *  The go-kardia library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The go-kardia library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 *  GNU Lesser General Public License for more details.
 *
 *  You should have received a copy of the GNU Lesser General Public License
 *  along with the go-kardia library. If not, see <http://www.gnu.org/licenses/>.
 */

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-Id"

type restDefinition struct {
	method      string
	path        string
	fn          func(c echo.Context) error
	middlewares []echo.MiddlewareFunc
}

func bind(gr *echo.Group, srv RestServer) {
	apis := []restDefinition{
		{
			method:      echo.GET,
			path:        "/ping",
			fn:          srv.Ping,
			middlewares: nil,
		},
		{
			method:      echo.GET,
			path:        "/status",
			fn:          srv.ServerStatus,
			middlewares: nil,
		},
		{
			method:      echo.PUT,
			path:        "/status",
			fn:          srv.UpdateServerStatus,
			middlewares: nil,
		},
		// Pages
		{
			method: echo.GET,
			// Query params: ?all=true
			path: "/home",
			fn:   srv.Home,
		},
		{
			method: echo.GET,
			// Query params: ?page=1
			path:        "/cryptocurrencies",
			fn:          srv.Cryptocurrencies,
			middlewares: []echo.MiddlewareFunc{checkPage()},
		},
		{
			method: echo.GET,
			path:   "/exchanges",
			fn:     srv.Exchanges,
		},
		{
			method: echo.GET,
			path:   "/news",
			fn:     srv.News,
		},
		{
			method: echo.GET,
			// Params: coin id
			// Query params: ?days=7
			path: "/crypto/:id",
			fn:   srv.Crypto,
		},
		{
			method: echo.GET,
			// Query params: ?q=bit
			path: "/search",
			fn:   srv.Search,
		},
		// Shell session
		{
			method: echo.GET,
			path:   "/ws",
			fn:     srv.Session,
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

// requestID tags every request and its log lines with an id.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, id)
			return next(c)
		}
	}
}

func isWebsocket(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get("Upgrade"), "websocket")
}

// NewEcho wires middlewares, the v1 routes and the metrics endpoint.
func NewEcho(srv RestServer, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(middleware.CORS())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: isWebsocket,
	}))
	e.Use(observeRequests())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	v1Gr := e.Group("/api/v1")
	bind(v1Gr, srv)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			resp := InternalServer
			switch he.Code {
			case http.StatusNotFound:
				resp = NotFound
			case http.StatusBadRequest:
				resp = Invalid
			case http.StatusMethodNotAllowed:
				resp = Invalid
				resp.StatusCode = he.Code
			}
			_ = resp.Build(c)
			return
		}
		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		_ = InternalServer.Build(c)
	}
	return e
}

// Start serves until the listener fails or e is shut down.
func Start(e *echo.Echo, port string, logger *zap.Logger) {
	e.Server.ReadHeaderTimeout = 10 * time.Second
	logger.Info("API server", zap.String("port", port))
	if err := e.Start(port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("cannot start echo server", zap.Error(err))
	}
}
