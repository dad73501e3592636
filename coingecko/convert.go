// Package coingecko
package coingecko

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kardiachain/cryptoverse-backend/types"
)

const quoteCurrency = "usd"

func quote(m map[string]float64) *float64 {
	v, ok := m[quoteCurrency]
	if !ok {
		return nil
	}
	return &v
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func rank(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}

func toGlobalStats(r *globalResponse) *types.GlobalStats {
	return &types.GlobalStats{
		ActiveCryptocurrencies: r.Data.ActiveCryptocurrencies,
		Markets:                r.Data.Markets,
		TotalMarketCap:         quote(r.Data.TotalMarketCap),
		TotalVolume:            quote(r.Data.TotalVolume),
	}
}

func toCoins(rows []marketCoin) []*types.Coin {
	coins := make([]*types.Coin, 0, len(rows))
	for _, r := range rows {
		coins = append(coins, &types.Coin{
			ID:                       r.ID,
			Symbol:                   r.Symbol,
			Name:                     r.Name,
			Image:                    r.Image,
			MarketCapRank:            rank(r.MarketCapRank),
			CurrentPrice:             r.CurrentPrice,
			PriceChangePercentage24h: r.PriceChangePercentage24h,
			MarketCap:                r.MarketCap,
			TotalVolume:              r.TotalVolume,
		})
	}
	return coins
}

func toCoinDetail(r *coinResponse) *types.CoinDetail {
	image := r.Image.Large
	if image == "" {
		image = r.Image.Small
	}
	md := r.MarketData
	var ath *float64
	if v, ok := md.Ath[quoteCurrency]; ok {
		ath = &v
	}
	return &types.CoinDetail{
		Coin: types.Coin{
			ID:                       r.ID,
			Symbol:                   r.Symbol,
			Name:                     r.Name,
			Image:                    image,
			MarketCapRank:            rank(r.MarketCapRank),
			CurrentPrice:             quote(md.CurrentPrice),
			PriceChangePercentage24h: md.PriceChangePercentage24h,
			MarketCap:                quote(md.MarketCap),
			TotalVolume:              quote(md.TotalVolume),
		},
		Description: r.Description.En,
		Links: types.CoinLinks{
			Homepage:       firstNonEmpty(r.Links.Homepage),
			BlockchainSite: firstNonEmpty(r.Links.BlockchainSite),
			OfficialForum:  firstNonEmpty(r.Links.OfficialForumURL),
			Subreddit:      r.Links.SubredditURL,
		},
		CirculatingSupply: md.CirculatingSupply,
		TotalSupply:       md.TotalSupply,
		ATH:               ath,
		MarketCount:       len(r.Tickers),
		NumberOfExchanges: md.NumberOfExchanges,
	}
}

// toChartPoints drops malformed samples and sorts by time ascending.
func toChartPoints(r *marketChartResponse) []*types.ChartPoint {
	points := make([]*types.ChartPoint, 0, len(r.Prices))
	for _, p := range r.Prices {
		if len(p) < 2 {
			continue
		}
		points = append(points, &types.ChartPoint{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points
}

func toExchanges(rows []exchangeResponse) []*types.Exchange {
	exchanges := make([]*types.Exchange, 0, len(rows))
	for _, r := range rows {
		trust := 0
		if r.TrustScore != nil {
			trust = *r.TrustScore
		}
		exchanges = append(exchanges, &types.Exchange{
			ID:                r.ID,
			Name:              r.Name,
			Image:             r.Image,
			URL:               r.URL,
			TradeVolume24hBTC: r.TradeVolume24hBTC,
			TrustScore:        trust,
			Markets:           r.Markets,
			YearEstablished:   r.YearEstablished,
		})
	}
	return exchanges
}

func toSearchHits(r *searchResponse) []*types.SearchHit {
	hits := make([]*types.SearchHit, 0, len(r.Coins))
	for _, c := range r.Coins {
		hits = append(hits, &types.SearchHit{
			ID:     c.ID,
			Name:   c.Name,
			Symbol: c.Symbol,
			Thumb:  c.Thumb,
		})
	}
	return hits
}

// Status updates carry no id upstream; derive a stable one from content.
func toNewsItems(r *statusUpdatesResponse) []*types.NewsItem {
	items := make([]*types.NewsItem, 0, len(r.StatusUpdates))
	for _, u := range r.StatusUpdates {
		key := u.Project.ID + "|" + u.CreatedAt + "|" + u.Description
		items = append(items, &types.NewsItem{
			ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
			ProjectName:  u.Project.Name,
			ProjectImage: u.Project.Image.Thumb,
			UserTitle:    u.UserTitle,
			Description:  u.Description,
			CreatedAt:    u.CreatedAt,
		})
	}
	return items
}
