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


// Package cfg
package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"
)

type DashboardConfig struct {
	ServerMode        string
	Port              string
	HttpRequestSecret string

	LogLevel  string
	LogFile   string
	SentryDSN string

	DefaultAPITimeout time.Duration

	CoinGeckoURL    string
	CoinGeckoAPIKey string

	CacheEngine   string
	CacheURL      string
	CacheDB       int
	CachePassword string
	CacheIsFlush  bool

	RateExpiredTime     time.Duration
	RateRefreshInterval time.Duration
	FallbackBTCUSDRate  decimal.Decimal

	SearchDebounce time.Duration
}

func New() (DashboardConfig, error) {
	serverMode := os.Getenv("SERVER_MODE")
	if serverMode != ModeProduction {
		serverMode = ModeDev
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":3000"
	}

	apiDefaultTimeoutStr := os.Getenv("DEFAULT_API_TIMEOUT")
	apiDefaultTimeout, err := strconv.Atoi(apiDefaultTimeoutStr)
	if err != nil || apiDefaultTimeout <= 0 {
		apiDefaultTimeout = 10
	}

	coinGeckoURL := os.Getenv("COINGECKO_URL")
	if coinGeckoURL == "" {
		coinGeckoURL = "https://api.coingecko.com/api/v3"
	}

	cacheEngine := os.Getenv("CACHE_ENGINE")
	switch cacheEngine {
	case "":
		cacheEngine = "memory"
	case "memory", "redis":
	default:
		return DashboardConfig{}, fmt.Errorf("unsupported CACHE_ENGINE %q", cacheEngine)
	}

	cacheDB := 0
	if cacheDBStr := os.Getenv("CACHE_DB"); cacheDBStr != "" {
		cacheDB, err = strconv.Atoi(cacheDBStr)
		if err != nil {
			return DashboardConfig{}, fmt.Errorf("invalid CACHE_DB: %w", err)
		}
	}

	cacheIsFlushStr := os.Getenv("CACHE_IS_FLUSH")
	cacheIsFlush, err := strconv.ParseBool(cacheIsFlushStr)
	if err != nil {
		cacheIsFlush = false
	}

	rateExpiredTimeStr := os.Getenv("RATE_EXPIRED_TIME")
	rateExpiredTime, err := time.ParseDuration(rateExpiredTimeStr)
	if err != nil || rateExpiredTime <= 0 {
		rateExpiredTime = 10 * time.Minute
	}

	rateRefreshIntervalStr := os.Getenv("RATE_REFRESH_INTERVAL")
	rateRefreshInterval, err := time.ParseDuration(rateRefreshIntervalStr)
	if err != nil || rateRefreshInterval <= 0 {
		rateRefreshInterval = 5 * time.Minute
	}

	fallbackRate := decimal.NewFromInt(50000)
	if fallbackRateStr := os.Getenv("FALLBACK_BTC_USD_RATE"); fallbackRateStr != "" {
		fallbackRate, err = decimal.NewFromString(fallbackRateStr)
		if err != nil || !fallbackRate.IsPositive() {
			return DashboardConfig{}, fmt.Errorf("invalid FALLBACK_BTC_USD_RATE %q", fallbackRateStr)
		}
	}

	searchDebounceStr := os.Getenv("SEARCH_DEBOUNCE")
	searchDebounce, err := time.ParseDuration(searchDebounceStr)
	if err != nil || searchDebounce <= 0 {
		searchDebounce = 300 * time.Millisecond
	}

	cfg := DashboardConfig{
		ServerMode:        serverMode,
		Port:              port,
		HttpRequestSecret: os.Getenv("HTTP_REQUEST_SECRET"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFile:   os.Getenv("LOG_FILE"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		DefaultAPITimeout: time.Duration(apiDefaultTimeout) * time.Second,

		CoinGeckoURL:    coinGeckoURL,
		CoinGeckoAPIKey: os.Getenv("COINGECKO_API_KEY"),

		CacheEngine:   cacheEngine,
		CacheURL:      os.Getenv("CACHE_URI"),
		CacheDB:       cacheDB,
		CachePassword: os.Getenv("CACHE_PASSWORD"),
		CacheIsFlush:  cacheIsFlush,

		RateExpiredTime:     rateExpiredTime,
		RateRefreshInterval: rateRefreshInterval,
		FallbackBTCUSDRate:  fallbackRate,

		SearchDebounce: searchDebounce,
	}

	return cfg, nil
}
