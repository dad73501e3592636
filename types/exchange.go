package types

// Exchange volume is reported upstream in BTC, not in the display currency.
type Exchange struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	URL               string  `json:"url"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
	TrustScore        int     `json:"trust_score"`
	Markets           *int    `json:"markets"`
	YearEstablished   *int    `json:"year_established"`
}
