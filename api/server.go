// Package api
package api

import (
	"time"

	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/cache"
	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/dashboard"
)

type Server struct {
	authorizationSecret string
	upstreamURL         string
	timeout             time.Duration
	searchDelay         time.Duration

	client      coingecko.Client
	cacheClient cache.Client
	rates       dashboard.RateProvider

	logger *zap.Logger
}

func NewServer() *Server {
	return &Server{
		timeout: 10 * time.Second,
		logger:  zap.NewNop(),
	}
}

func (s *Server) SetSecret(secret string) *Server {
	s.authorizationSecret = secret
	return s
}

func (s *Server) SetLogger(logger *zap.Logger) *Server {
	s.logger = logger
	return s
}

func (s *Server) SetClient(client coingecko.Client) *Server {
	s.client = client
	return s
}

func (s *Server) SetCache(cache cache.Client) *Server {
	s.cacheClient = cache
	return s
}

func (s *Server) SetRates(rates dashboard.RateProvider) *Server {
	s.rates = rates
	return s
}

func (s *Server) SetTimeout(timeout time.Duration) *Server {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

func (s *Server) SetSearchDelay(delay time.Duration) *Server {
	s.searchDelay = delay
	return s
}

func (s *Server) SetUpstreamURL(url string) *Server {
	s.upstreamURL = url
	return s
}

func (s *Server) deps() dashboard.Deps {
	return dashboard.Deps{
		Client:      s.client,
		Rates:       s.rates,
		SearchDelay: s.searchDelay,
		Logger:      s.logger,
	}
}
