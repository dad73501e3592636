// Package api
package api

import (
	"context"
	"crypto/subtle"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

func (s *Server) Ping(c echo.Context) error {
	return OK.Build(c)
}

func (s *Server) ServerStatus(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "ServerStatus"))
	ctx := c.Request().Context()
	var status *types.ServerStatus
	var err error
	if s.cacheClient != nil {
		status, err = s.cacheClient.ServerStatus(ctx)
	}
	if status == nil {
		if err != nil {
			lgr.Debug("cannot get cache, return default instead", zap.Error(err))
		}
		status = &types.ServerStatus{
			Status:        "ONLINE",
			AppVersion:    "1.0.0",
			ServerVersion: "1.0.0",
		}
	}
	status.UpstreamURL = s.upstreamURL
	return OK.SetData(status).Build(c)
}

func (s *Server) UpdateServerStatus(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "UpdateServerStatus"))
	secret := c.Request().Header.Get("Authorization")
	if s.authorizationSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.authorizationSecret)) != 1 {
		lgr.Warn("Cannot authorization request")
		return Unauthorized.Build(c)
	}
	var serverStatus *types.ServerStatus
	if err := c.Bind(&serverStatus); err != nil || serverStatus == nil || serverStatus.Status == "" {
		lgr.Error("cannot bind server status", zap.Error(err))
		return Invalid.Build(c)
	}
	if s.cacheClient == nil {
		return InternalServer.Build(c)
	}
	if err := s.cacheClient.UpdateServerStatus(context.Background(), serverStatus); err != nil {
		lgr.Error("cannot update server status", zap.Error(err))
		return InternalServer.Build(c)
	}

	return OK.SetData(nil).Build(c)
}
