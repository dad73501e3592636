// Package dashboard
package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

const ListingPageSize = 50

type CoinRow struct {
	Rank           int    `json:"rank"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Image          string `json:"image"`
	Price          string `json:"price"`
	Change24h      string `json:"change24h"`
	ChangePositive bool   `json:"changePositive"`
	MarketCap      string `json:"marketCap"`
	Volume         string `json:"volume"`
	Href           string `json:"href"`
}

type ListingView struct {
	State        State     `json:"state"`
	Page         int       `json:"page"`
	PrevDisabled bool      `json:"prevDisabled"`
	NextDisabled bool      `json:"nextDisabled"`
	Rows         []CoinRow `json:"rows"`
}

func NewCoinRow(c *types.Coin) CoinRow {
	return CoinRow{
		Rank:           c.MarketCapRank,
		ID:             c.ID,
		Name:           c.Name,
		Symbol:         strings.ToUpper(c.Symbol),
		Image:          c.Image,
		Price:          utils.FormatPrice(c.CurrentPrice),
		Change24h:      utils.FormatPercent(c.PriceChangePercentage24h, true),
		ChangePositive: c.PriceChangePercentage24h != nil && *c.PriceChangePercentage24h >= 0,
		MarketCap:      utils.FormatCurrencyScaled(c.MarketCap),
		Volume:         utils.FormatCurrencyScaled(c.TotalVolume),
		Href:           CoinPath(c.ID),
	}
}

// Listing pages through all coins by market cap. The upstream exposes no
// total, so there is always a next page.
type Listing struct {
	loader
	client coingecko.Client
	nav    Navigator
	logger *zap.Logger

	page  int
	coins []*types.Coin
}

func NewListing(client coingecko.Client, nav Navigator, logger *zap.Logger) *Listing {
	if nav == nil {
		nav = nopNavigator{}
	}
	return &Listing{
		client: client,
		nav:    nav,
		logger: logger.With(zap.String("page", "listing")),
		page:   1,
	}
}

func (l *Listing) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// Load fetches the current page.
func (l *Listing) Load(ctx context.Context) {
	l.load(ctx)
}

// SetPage moves to page k and reloads. Pages below 1 are clamped.
func (l *Listing) SetPage(ctx context.Context, k int) {
	if k < 1 {
		k = 1
	}
	l.mu.Lock()
	l.page = k
	l.mu.Unlock()
	l.load(ctx)
}

func (l *Listing) Next(ctx context.Context) {
	l.SetPage(ctx, l.Page()+1)
}

func (l *Listing) Prev(ctx context.Context) {
	l.SetPage(ctx, l.Page()-1)
}

func (l *Listing) Open(id string) {
	l.nav.Navigate(CoinPath(id))
}

// load reads the page after begin so the newest load always fetches the
// newest page.
func (l *Listing) load(ctx context.Context) {
	ctx, gen := l.begin(ctx)
	page := l.Page()
	lgr := l.logger.With(zap.String("method", "Load"), zap.Int("page", page))

	coins, err := l.client.Coins(ctx, types.CoinsFilter{
		Page:    page,
		PerPage: ListingPageSize,
		Order:   types.OrderMarketCapDesc,
	})
	if err != nil {
		if ctx.Err() == nil {
			lgr.Warn("cannot load coins", zap.Error(err))
		}
		coins = nil
	}
	l.finish(gen, func() { l.coins = coins })
}

func (l *Listing) View() ListingView {
	var v ListingView
	l.read(func(state State) {
		v.State = state
		v.Page = l.page
		v.PrevDisabled = l.page == 1
		v.NextDisabled = false
		v.Rows = make([]CoinRow, 0, len(l.coins))
		for _, c := range l.coins {
			v.Rows = append(v.Rows, NewCoinRow(c))
		}
	})
	return v
}
