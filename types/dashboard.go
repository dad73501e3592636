// Package types
package types

// GlobalStats is the aggregate market snapshot shown on the home page.
type GlobalStats struct {
	ActiveCryptocurrencies int64    `json:"active_cryptocurrencies"`
	Markets                int64    `json:"markets"`
	TotalMarketCap         *float64 `json:"total_market_cap"`
	TotalVolume            *float64 `json:"total_volume"`
}
