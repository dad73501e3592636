// Package api
package api

import (
	"context"
	"strconv"

	"github.com/labstack/echo"

	"github.com/kardiachain/cryptoverse-backend/types"
)

func (s *Server) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), s.timeout)
}

// getPage reads ?page=, defaulting to the first page.
func getPage(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, types.ErrInvalidParam
	}
	return page, nil
}

func checkPage() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := getPage(c); err != nil {
				return Invalid.Build(c)
			}
			return next(c)
		}
	}
}

// getDayRange reads ?days=, defaulting to the week view.
func getDayRange(c echo.Context) (types.DayRange, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return types.DefaultDayRange, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || !types.DayRange(days).Valid() {
		return 0, types.ErrInvalidParam
	}
	return types.DayRange(days), nil
}

func getBool(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.ErrInvalidParam
	}
	return v, nil
}
