package dashboard

import (
	"context"
	"strconv"
	"sync"

	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

// fakeClient serves canned responses. Unset funcs return empty results.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	globalStats   func(ctx context.Context) (*types.GlobalStats, error)
	coins         func(ctx context.Context, filter types.CoinsFilter) ([]*types.Coin, error)
	coin          func(ctx context.Context, id string) (*types.CoinDetail, error)
	marketChart   func(ctx context.Context, id string, days types.DayRange) ([]*types.ChartPoint, error)
	exchanges     func(ctx context.Context, perPage int) ([]*types.Exchange, error)
	search        func(ctx context.Context, query string) ([]*types.SearchHit, error)
	statusUpdates func(ctx context.Context, perPage int) ([]*types.NewsItem, error)
	simplePrice   func(ctx context.Context, id, vs string) (float64, error)
}

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) GlobalStats(ctx context.Context) (*types.GlobalStats, error) {
	f.hit("global")
	if f.globalStats == nil {
		return &types.GlobalStats{}, nil
	}
	return f.globalStats(ctx)
}

func (f *fakeClient) Coins(ctx context.Context, filter types.CoinsFilter) ([]*types.Coin, error) {
	f.hit("coins")
	if f.coins == nil {
		return nil, nil
	}
	return f.coins(ctx, filter)
}

func (f *fakeClient) Coin(ctx context.Context, id string) (*types.CoinDetail, error) {
	f.hit("coin")
	if f.coin == nil {
		return nil, &types.FetchError{Kind: types.FetchNotFound, Endpoint: "/coins/" + id, StatusCode: 404}
	}
	return f.coin(ctx, id)
}

func (f *fakeClient) MarketChart(ctx context.Context, id string, days types.DayRange) ([]*types.ChartPoint, error) {
	f.hit("chart")
	if f.marketChart == nil {
		return nil, nil
	}
	return f.marketChart(ctx, id, days)
}

func (f *fakeClient) Exchanges(ctx context.Context, perPage int) ([]*types.Exchange, error) {
	f.hit("exchanges")
	if f.exchanges == nil {
		return nil, nil
	}
	return f.exchanges(ctx, perPage)
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]*types.SearchHit, error) {
	f.hit("search")
	if f.search == nil {
		return nil, nil
	}
	return f.search(ctx, query)
}

func (f *fakeClient) StatusUpdates(ctx context.Context, perPage int) ([]*types.NewsItem, error) {
	f.hit("news")
	if f.statusUpdates == nil {
		return nil, nil
	}
	return f.statusUpdates(ctx, perPage)
}

func (f *fakeClient) SimplePrice(ctx context.Context, id, vs string) (float64, error) {
	f.hit("price")
	if f.simplePrice == nil {
		return 0, types.ErrRateUnavailable
	}
	return f.simplePrice(ctx, id, vs)
}

func makeCoins(offset, n int) []*types.Coin {
	coins := make([]*types.Coin, 0, n)
	for i := 1; i <= n; i++ {
		rank := offset + i
		coins = append(coins, &types.Coin{
			ID:                       "coin-" + strconv.Itoa(rank),
			Symbol:                   "c" + strconv.Itoa(rank),
			Name:                     "Coin " + strconv.Itoa(rank),
			MarketCapRank:            rank,
			CurrentPrice:             utils.Float64Ptr(float64(1000 - rank)),
			PriceChangePercentage24h: utils.Float64Ptr(1.5),
			MarketCap:                utils.Float64Ptr(1e9 / float64(rank)),
			TotalVolume:              utils.Float64Ptr(1e6),
		})
	}
	return coins
}

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingNav) Navigate(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recordingNav) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
