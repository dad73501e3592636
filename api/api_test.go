// Package api
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/cache"
	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/dashboard"
)

// upstream is a canned CoinGecko.
func upstream() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/global", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"data":{"active_cryptocurrencies":10000,"markets":500,
			"total_market_cap":{"usd":2000000000000},"total_volume":{"usd":85000000000}}}`)
	})
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		rank := 1
		if page == "2" {
			rank = 51
		}
		write(w, `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"b.png","current_price":67000,
			"market_cap":1300000000000,"market_cap_rank":`+strconv.Itoa(rank)+`,"total_volume":25000000000,
			"price_change_percentage_24h":2.5},
			{"id":"tether","symbol":"usdt","name":"Tether","image":"t.png","current_price":0.9998,
			"market_cap":110000000000,"market_cap_rank":`+strconv.Itoa(rank+1)+`,"total_volume":50000000000,
			"price_change_percentage_24h":-0.01}]`)
	})
	mux.HandleFunc("/coins/bitcoin", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap_rank":1,
			"image":{"large":"l.png"},"description":{"en":"<p>Bitcoin.<script>x()</script></p><p>More.</p>"},
			"links":{"homepage":["https://bitcoin.org"]},
			"market_data":{"current_price":{"usd":67000},"market_cap":{"usd":1.3e12},"total_volume":{"usd":2.5e10},
				"circulating_supply":19700000,"total_supply":21000000}}`)
	})
	mux.HandleFunc("/coins/bitcoin/market_chart", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"prices":[[1704207840000,42000.5],[1704121440000,41000]]}`)
	})
	mux.HandleFunc("/exchanges", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[{"id":"binance","name":"Binance","url":"https://binance.com","image":"x.png",
			"trust_score":10,"trade_volume_24h_btc":1000,"year_established":2017}]`)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "down" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		write(w, `{"coins":[{"id":"a1","name":"A","symbol":"A"},{"id":"a2"},{"id":"a3"},{"id":"a4"},{"id":"a5"},{"id":"a6"},{"id":"a7"}]}`)
	})
	mux.HandleFunc("/status_updates", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		write(w, `{"error":"coin not found"}`)
	})
	return mux
}

func setupTestServer(t *testing.T) (*echo.Echo, *Server) {
	up := httptest.NewServer(upstream())
	t.Cleanup(up.Close)

	client, err := coingecko.New(coingecko.Config{BaseURL: up.URL, Timeout: 2 * time.Second, Logger: zap.NewNop()})
	require.NoError(t, err)
	cacheClient, err := cache.New(cache.Config{Adapter: cache.MemoryAdapter})
	require.NoError(t, err)

	srv := NewServer().
		SetLogger(zap.NewNop()).
		SetClient(client).
		SetCache(cacheClient).
		SetRates(dashboard.FixedRate(decimal.NewFromInt(50000))).
		SetSecret("secret").
		SetSearchDelay(time.Millisecond).
		SetUpstreamURL(up.URL)
	return NewEcho(srv, zap.NewNop()), srv
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target string, body string, headers map[string]string) (int, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestPing(t *testing.T) {
	e, _ := setupTestServer(t)
	code, env := doRequest(t, e, http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1000, env.Code)
	assert.Equal(t, "Success", env.Msg)
}

func TestServerStatus(t *testing.T) {
	e, srv := setupTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/v1/status", "", nil)
	var status map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "ONLINE", status["status"])
	assert.Equal(t, srv.upstreamURL, status["upstreamUrl"])

	code, _ := doRequest(t, e, http.MethodPut, "/api/v1/status", `{"status":"MAINTENANCE"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doRequest(t, e, http.MethodPut, "/api/v1/status", `{"status":"MAINTENANCE","appVersion":"2.0.0"}`,
		map[string]string{"Authorization": "secret"})
	assert.Equal(t, http.StatusOK, code)

	_, env = doRequest(t, e, http.MethodGet, "/api/v1/status", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "MAINTENANCE", status["status"])
	assert.Equal(t, "2.0.0", status["appVersion"])
}

func TestHome(t *testing.T) {
	e, _ := setupTestServer(t)

	code, env := doRequest(t, e, http.MethodGet, "/api/v1/home?all=true", "", nil)
	require.Equal(t, http.StatusOK, code)
	var v dashboard.HomeView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, dashboard.StateReady, v.State)
	require.NotNil(t, v.Stats)
	assert.Equal(t, "10,000", v.Stats.TotalCryptocurrencies)
	assert.Equal(t, "500", v.Stats.TotalExchanges)
	assert.Equal(t, "$2.00T", v.Stats.TotalMarketCap)
	assert.Equal(t, "Top 100 Cryptos In The World", v.Heading)
	require.Len(t, v.Cards, 2)
	assert.Equal(t, "$67,000", v.Cards[0].Price)
	assert.Equal(t, "$0.9998", v.Cards[1].Price)
	assert.Equal(t, "₮", v.Cards[1].Glyph)

	code, _ = doRequest(t, e, http.MethodGet, "/api/v1/home?all=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCryptocurrencies(t *testing.T) {
	e, _ := setupTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/v1/cryptocurrencies", "", nil)
	var v dashboard.ListingView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, 1, v.Page)
	assert.True(t, v.PrevDisabled)
	assert.False(t, v.NextDisabled)

	_, env = doRequest(t, e, http.MethodGet, "/api/v1/cryptocurrencies?page=2", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, 2, v.Page)
	assert.False(t, v.PrevDisabled)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, 51, v.Rows[0].Rank)
	assert.Equal(t, "+2.50%", v.Rows[0].Change24h)
	assert.Equal(t, "-0.01%", v.Rows[1].Change24h)

	for _, bad := range []string{"0", "-1", "abc"} {
		code, env := doRequest(t, e, http.MethodGet, "/api/v1/cryptocurrencies?page="+bad, "", nil)
		assert.Equal(t, http.StatusBadRequest, code, bad)
		assert.Equal(t, 1101, env.Code)
	}
}

func TestExchanges(t *testing.T) {
	e, _ := setupTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/v1/exchanges", "", nil)
	var v dashboard.ExchangesView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.VolumeApproximate)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "$50.00M", v.Rows[0].Volume24h)
	assert.Equal(t, "N/A", v.Rows[0].Markets)
	assert.Equal(t, "2017", v.Rows[0].Year)
}

func TestNews_UpstreamDown(t *testing.T) {
	e, _ := setupTestServer(t)

	code, env := doRequest(t, e, http.MethodGet, "/api/v1/news", "", nil)
	assert.Equal(t, http.StatusOK, code)
	var v dashboard.NewsView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.Fallback)
	assert.Len(t, v.Cards, 2)
}

func TestCrypto(t *testing.T) {
	e, _ := setupTestServer(t)

	code, env := doRequest(t, e, http.MethodGet, "/api/v1/crypto/bitcoin?days=1", "", nil)
	require.Equal(t, http.StatusOK, code)
	var v dashboard.DetailView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.Found)
	assert.Equal(t, "Bitcoin", v.Name)
	require.Len(t, v.Chart, 2)
	assert.Equal(t, "Jan 1, 03:04 PM", v.Chart[0].Label)
	assert.Equal(t, "$41000.00", v.Chart[0].Tooltip)
	assert.NotContains(t, v.Description, "script")
	assert.NotContains(t, v.Description, "More.")

	code, env = doRequest(t, e, http.MethodGet, "/api/v1/crypto/dogecoin2", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.NotFound)
	assert.Equal(t, "Crypto not found", v.Message)

	code, _ = doRequest(t, e, http.MethodGet, "/api/v1/crypto/bitcoin?days=14", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doRequest(t, e, http.MethodGet, "/api/v1/crypto/Bit%20coin", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearch(t *testing.T) {
	e, _ := setupTestServer(t)

	_, env := doRequest(t, e, http.MethodGet, "/api/v1/search?q=a", "", nil)
	var v dashboard.SearchView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.False(t, v.Visible)
	assert.Empty(t, v.Results)

	_, env = doRequest(t, e, http.MethodGet, "/api/v1/search?q=ab", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.True(t, v.Visible)
	require.Len(t, v.Results, 5)
	assert.Equal(t, "/crypto/a1", v.Results[0].Href)

	code, env := doRequest(t, e, http.MethodGet, "/api/v1/search?q=down", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1000, env.Code)
	v = dashboard.SearchView{}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "down", v.Query)
	assert.False(t, v.Visible)
	assert.NotNil(t, v.Results)
	assert.Empty(t, v.Results)
}

func TestUnknownRoute(t *testing.T) {
	e, _ := setupTestServer(t)
	code, env := doRequest(t, e, http.MethodGet, "/api/v1/portfolio", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, 1104, env.Code)
}

func TestMetrics(t *testing.T) {
	e, _ := setupTestServer(t)
	doRequest(t, e, http.MethodGet, "/api/v1/ping", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cryptoverse_http_requests_total")
}
