package types

// Coin is one row of the markets listing, ranked by descending market cap.
type Coin struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	MarketCapRank            int      `json:"market_cap_rank"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
	TotalVolume              *float64 `json:"total_volume"`
}

type CoinLinks struct {
	Homepage       string `json:"homepage"`
	BlockchainSite string `json:"blockchain_site"`
	OfficialForum  string `json:"official_forum"`
	Subreddit      string `json:"subreddit"`
}

// CoinDetail is fetched fresh on every detail page visit.
type CoinDetail struct {
	Coin
	Description       string    `json:"description"`
	Links             CoinLinks `json:"links"`
	CirculatingSupply *float64  `json:"circulating_supply"`
	TotalSupply       *float64  `json:"total_supply"`
	ATH               *float64  `json:"ath"`
	MarketCount       int       `json:"market_count"`
	NumberOfExchanges int       `json:"number_of_exchanges"`
}

// SearchHit is the reduced coin used by the search overlay.
type SearchHit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Thumb  string `json:"thumb"`
}
