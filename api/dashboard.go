// Package api
package api

import (
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/dashboard"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

func (s *Server) Home(c echo.Context) error {
	all, err := getBool(c, "all")
	if err != nil {
		return Invalid.Build(c)
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	home := dashboard.NewHome(s.client, nil, s.logger)
	home.SetShowAll(all)
	home.Load(ctx)
	return OK.SetData(home.View()).Build(c)
}

func (s *Server) Cryptocurrencies(c echo.Context) error {
	page, err := getPage(c)
	if err != nil {
		return Invalid.Build(c)
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	listing := dashboard.NewListing(s.client, nil, s.logger)
	listing.SetPage(ctx, page)
	return OK.SetData(listing.View()).Build(c)
}

func (s *Server) Exchanges(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	exchanges := dashboard.NewExchanges(s.client, s.rates, s.logger)
	exchanges.Load(ctx)
	return OK.SetData(exchanges.View()).Build(c)
}

func (s *Server) News(c echo.Context) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	news := dashboard.NewNews(s.client, s.logger)
	news.Load(ctx)
	return OK.SetData(news.View()).Build(c)
}

func (s *Server) Crypto(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "Crypto"))
	id := c.Param("id")
	if !utils.IsValidCoinID(id) {
		lgr.Debug("invalid coin id", zap.String("id", id))
		return Invalid.Build(c)
	}
	days, err := getDayRange(c)
	if err != nil {
		return Invalid.Build(c)
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	detail := dashboard.NewDetail(s.client, id, s.logger)
	if err := detail.SetRange(ctx, days); err != nil {
		return Invalid.Build(c)
	}
	view := detail.View()
	if view.NotFound {
		return NotFound.SetData(view).Build(c)
	}
	return OK.SetData(view).Build(c)
}

func (s *Server) Search(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "Search"))
	q := c.QueryParam("q")
	view := dashboard.SearchView{Query: q, Results: []dashboard.SearchResult{}}
	if !dashboard.SearchQueryValid(q) {
		return OK.SetData(view).Build(c)
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()

	hits, err := s.client.Search(ctx, q)
	if err != nil {
		lgr.Warn("cannot search coins", zap.String("query", q), zap.Error(err))
		return OK.SetData(view).Build(c)
	}
	view.Results = dashboard.SearchResults(hits)
	view.Visible = len(view.Results) > 0
	return OK.SetData(view).Build(c)
}
