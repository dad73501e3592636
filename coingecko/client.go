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
// Package coingecko
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/types"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	apiKeyHeader = "x-cg-demo-api-key"
	maxBodySize  = 16 << 20
)

// Client is a read-only view of the market data API. Every call is a single
// request: no retries and no response caching.
type Client interface {
	GlobalStats(ctx context.Context) (*types.GlobalStats, error)
	Coins(ctx context.Context, filter types.CoinsFilter) ([]*types.Coin, error)
	Coin(ctx context.Context, id string) (*types.CoinDetail, error)
	MarketChart(ctx context.Context, id string, days types.DayRange) ([]*types.ChartPoint, error)
	Exchanges(ctx context.Context, perPage int) ([]*types.Exchange, error)
	Search(ctx context.Context, query string) ([]*types.SearchHit, error)
	StatusUpdates(ctx context.Context, perPage int) ([]*types.NewsItem, error)
	SimplePrice(ctx context.Context, id, vsCurrency string) (float64, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	Logger *zap.Logger
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker

	logger *zap.Logger
}

func New(cfg Config) (Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid coingecko url %q: %w", baseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("client", "coingecko"))

	var netTransport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConnsPerHost: 8,
	}
	c := &client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: netTransport,
		},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "coingecko",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		// A superseded request cancelled by its caller says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if to == gobreaker.StateOpen {
				breakerStateMetric.Set(1)
			} else {
				breakerStateMetric.Set(0)
			}
		},
	})
	return c, nil
}

func asFetchError(err error, target **types.FetchError) bool {
	return errors.As(err, target)
}

// get issues one GET request and decodes the JSON body into out.
func (c *client) get(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	start := time.Now()
	err := c.do(ctx, endpoint, path, query, out)
	observe(endpoint, err, time.Since(start))
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Debug("Upstream request failed", zap.String("endpoint", endpoint), zap.Error(err))
	}
	return err
}

func (c *client) do(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &types.FetchError{Kind: types.FetchNetwork, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		response, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}
		if response.StatusCode >= http.StatusInternalServerError || response.StatusCode == http.StatusTooManyRequests {
			_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodySize))
			_ = response.Body.Close()
			return nil, &types.FetchError{Kind: types.FetchHTTP, Endpoint: endpoint, StatusCode: response.StatusCode}
		}
		return response, nil
	})
	if err != nil {
		var fe *types.FetchError
		if errors.As(err, &fe) {
			return fe
		}
		return &types.FetchError{Kind: types.FetchNetwork, Endpoint: endpoint, Err: err}
	}

	response := result.(*http.Response)
	defer response.Body.Close()
	switch {
	case response.StatusCode == http.StatusNotFound:
		return &types.FetchError{Kind: types.FetchNotFound, Endpoint: endpoint, StatusCode: response.StatusCode}
	case response.StatusCode < 200 || response.StatusCode > 299:
		return &types.FetchError{Kind: types.FetchHTTP, Endpoint: endpoint, StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return &types.FetchError{Kind: types.FetchNetwork, Endpoint: endpoint, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &types.FetchError{Kind: types.FetchParse, Endpoint: endpoint, StatusCode: response.StatusCode, Err: err}
	}
	return nil
}

func (c *client) GlobalStats(ctx context.Context) (*types.GlobalStats, error) {
	var r globalResponse
	if err := c.get(ctx, "global", "/global", nil, &r); err != nil {
		return nil, err
	}
	return toGlobalStats(&r), nil
}

func (c *client) Coins(ctx context.Context, filter types.CoinsFilter) ([]*types.Coin, error) {
	filter.Sanitize()
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: page %d", err, filter.Page)
	}
	query := url.Values{}
	query.Set("vs_currency", quoteCurrency)
	query.Set("order", string(filter.Order))
	query.Set("per_page", strconv.Itoa(filter.PerPage))
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("sparkline", "false")
	query.Set("price_change_percentage", "24h")

	var rows []marketCoin
	if err := c.get(ctx, "coins_markets", "/coins/markets", query, &rows); err != nil {
		return nil, err
	}
	return toCoins(rows), nil
}

func (c *client) Coin(ctx context.Context, id string) (*types.CoinDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty coin id", types.ErrInvalidParam)
	}
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("community_data", "true")
	query.Set("developer_data", "false")

	var r coinResponse
	if err := c.get(ctx, "coin", "/coins/"+url.PathEscape(id), query, &r); err != nil {
		return nil, err
	}
	return toCoinDetail(&r), nil
}

func (c *client) MarketChart(ctx context.Context, id string, days types.DayRange) ([]*types.ChartPoint, error) {
	if id == "" || !days.Valid() {
		return nil, fmt.Errorf("%w: coin %q days %d", types.ErrInvalidParam, id, days)
	}
	query := url.Values{}
	query.Set("vs_currency", quoteCurrency)
	query.Set("days", strconv.Itoa(int(days)))

	var r marketChartResponse
	if err := c.get(ctx, "coin_market_chart", "/coins/"+url.PathEscape(id)+"/market_chart", query, &r); err != nil {
		return nil, err
	}
	return toChartPoints(&r), nil
}

func (c *client) Exchanges(ctx context.Context, perPage int) ([]*types.Exchange, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("%w: per page %d", types.ErrInvalidParam, perPage)
	}
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))

	var rows []exchangeResponse
	if err := c.get(ctx, "exchanges", "/exchanges", query, &rows); err != nil {
		return nil, err
	}
	return toExchanges(rows), nil
}

func (c *client) Search(ctx context.Context, query string) ([]*types.SearchHit, error) {
	params := url.Values{}
	params.Set("query", query)

	var r searchResponse
	if err := c.get(ctx, "search", "/search", params, &r); err != nil {
		return nil, err
	}
	return toSearchHits(&r), nil
}

func (c *client) StatusUpdates(ctx context.Context, perPage int) ([]*types.NewsItem, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("%w: per page %d", types.ErrInvalidParam, perPage)
	}
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))

	var r statusUpdatesResponse
	if err := c.get(ctx, "status_updates", "/status_updates", query, &r); err != nil {
		return nil, err
	}
	return toNewsItems(&r), nil
}

func (c *client) SimplePrice(ctx context.Context, id, vsCurrency string) (float64, error) {
	query := url.Values{}
	query.Set("ids", id)
	query.Set("vs_currencies", vsCurrency)

	var r simplePriceResponse
	if err := c.get(ctx, "simple_price", "/simple/price", query, &r); err != nil {
		return 0, err
	}
	price, ok := r[id][vsCurrency]
	if !ok {
		return 0, &types.FetchError{Kind: types.FetchNotFound, Endpoint: "simple_price"}
	}
	return price, nil
}
