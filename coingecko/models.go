// Package coingecko
package coingecko

// Wire formats of the CoinGecko v3 API. Only the fields the dashboard reads
// are declared; numeric fields that can be null upstream are pointers.

type globalResponse struct {
	Data struct {
		ActiveCryptocurrencies int64              `json:"active_cryptocurrencies"`
		Markets                int64              `json:"markets"`
		TotalMarketCap         map[string]float64 `json:"total_market_cap"`
		TotalVolume            map[string]float64 `json:"total_volume"`
	} `json:"data"`
}

type marketCoin struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

type coinResponse struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Image         struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	Description struct {
		En string `json:"en"`
	} `json:"description"`
	Links struct {
		Homepage         []string `json:"homepage"`
		BlockchainSite   []string `json:"blockchain_site"`
		OfficialForumURL []string `json:"official_forum_url"`
		SubredditURL     string   `json:"subreddit_url"`
	} `json:"links"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		Ath                      map[string]float64 `json:"ath"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
		CirculatingSupply        *float64           `json:"circulating_supply"`
		TotalSupply              *float64           `json:"total_supply"`
		NumberOfExchanges        int                `json:"number_of_exchanges"`
	} `json:"market_data"`
	Tickers []struct {
		Base   string `json:"base"`
		Target string `json:"target"`
	} `json:"tickers"`
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

type exchangeResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	YearEstablished   *int    `json:"year_established"`
	URL               string  `json:"url"`
	Image             string  `json:"image"`
	TrustScore        *int    `json:"trust_score"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
	Markets           *int    `json:"markets"`
}

type searchResponse struct {
	Coins []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Symbol        string `json:"symbol"`
		MarketCapRank *int   `json:"market_cap_rank"`
		Thumb         string `json:"thumb"`
	} `json:"coins"`
}

type statusUpdatesResponse struct {
	StatusUpdates []struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		CreatedAt   string `json:"created_at"`
		User        string `json:"user"`
		UserTitle   string `json:"user_title"`
		Project     struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Image struct {
				Thumb string `json:"thumb"`
			} `json:"image"`
		} `json:"project"`
	} `json:"status_updates"`
}

// simplePriceResponse is keyed by coin id, then by quote currency.
type simplePriceResponse map[string]map[string]float64
