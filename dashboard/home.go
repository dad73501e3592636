// Package dashboard
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

const (
	homeTopSize     = 100
	homeCollapsed   = 10
	homeHeadingTmpl = "Top %d Cryptos In The World"
)

var symbolGlyphs = map[string]string{
	"btc":  "₿",
	"eth":  "Ξ",
	"usdt": "₮",
	"bnb":  "BNB",
	"xrp":  "XRP",
	"usdc": "$",
	"sol":  "◎",
	"ada":  "₳",
	"doge": "Ð",
	"trx":  "T",
}

var accentColors = []string{
	"#f7931a", "#627eea", "#26a17b", "#f3ba2f",
	"#23292f", "#2775ca", "#9945ff", "#0033ad",
	"#c2a633", "#ff0013",
}

// SymbolGlyph is the text badge shown when a coin icon is missing.
func SymbolGlyph(symbol string) string {
	s := strings.ToLower(symbol)
	if g, ok := symbolGlyphs[s]; ok {
		return g
	}
	for _, r := range strings.ToUpper(symbol) {
		return string(r)
	}
	return ""
}

func AccentColor(index int) string {
	if index < 0 {
		index = -index
	}
	return accentColors[index%len(accentColors)]
}

type GlobalStatsView struct {
	TotalCryptocurrencies string `json:"totalCryptocurrencies"`
	TotalExchanges        string `json:"totalExchanges"`
	TotalMarketCap        string `json:"totalMarketCap"`
	TotalVolume           string `json:"totalVolume"`
	TotalMarkets          string `json:"totalMarkets"`
}

type CoinCard struct {
	Rank           int    `json:"rank"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Image          string `json:"image"`
	Glyph          string `json:"glyph"`
	Color          string `json:"color"`
	Price          string `json:"price"`
	MarketCap      string `json:"marketCap"`
	DailyChange    string `json:"dailyChange"`
	ChangePositive bool   `json:"changePositive"`
	Href           string `json:"href"`
}

type HomeView struct {
	State   State            `json:"state"`
	Stats   *GlobalStatsView `json:"stats,omitempty"`
	Heading string           `json:"heading"`
	ShowAll bool             `json:"showAll"`
	Cards   []CoinCard       `json:"cards"`
}

func NewGlobalStatsView(s *types.GlobalStats) *GlobalStatsView {
	if s == nil {
		return nil
	}
	markets := float64(s.Markets)
	return &GlobalStatsView{
		TotalCryptocurrencies: utils.FormatInteger(s.ActiveCryptocurrencies),
		TotalExchanges:        utils.FormatInteger(s.Markets),
		TotalMarketCap:        utils.FormatCurrencyScaled(s.TotalMarketCap),
		TotalVolume:           utils.FormatCurrencyScaled(s.TotalVolume),
		TotalMarkets:          utils.FormatCompactCount(&markets),
	}
}

func NewCoinCard(index int, c *types.Coin) CoinCard {
	return CoinCard{
		Rank:           c.MarketCapRank,
		ID:             c.ID,
		Name:           c.Name,
		Symbol:         strings.ToUpper(c.Symbol),
		Image:          c.Image,
		Glyph:          SymbolGlyph(c.Symbol),
		Color:          AccentColor(index),
		Price:          utils.FormatPrice(c.CurrentPrice),
		MarketCap:      utils.FormatCurrencyScaled(c.MarketCap),
		DailyChange:    utils.FormatPercent(c.PriceChangePercentage24h, false),
		ChangePositive: c.PriceChangePercentage24h != nil && *c.PriceChangePercentage24h >= 0,
		Href:           CoinPath(c.ID),
	}
}

// Home shows global stats and the top coins. The toggle only changes how
// many of the already fetched coins are visible.
type Home struct {
	loader
	client coingecko.Client
	nav    Navigator
	logger *zap.Logger

	stats   *types.GlobalStats
	coins   []*types.Coin
	showAll bool
}

func NewHome(client coingecko.Client, nav Navigator, logger *zap.Logger) *Home {
	if nav == nil {
		nav = nopNavigator{}
	}
	return &Home{
		client: client,
		nav:    nav,
		logger: logger.With(zap.String("page", "home")),
	}
}

func (h *Home) Load(ctx context.Context) {
	ctx, gen := h.begin(ctx)
	lgr := h.logger.With(zap.String("method", "Load"))

	var g errgroup.Group
	g.Go(func() error {
		stats, err := h.client.GlobalStats(ctx)
		if err != nil {
			return fmt.Errorf("global stats: %w", err)
		}
		h.update(gen, func() { h.stats = stats })
		return nil
	})
	g.Go(func() error {
		coins, err := h.client.Coins(ctx, types.CoinsFilter{
			Page:    1,
			PerPage: homeTopSize,
			Order:   types.OrderMarketCapDesc,
		})
		if err != nil {
			return fmt.Errorf("top coins: %w", err)
		}
		h.update(gen, func() { h.coins = coins })
		return nil
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		lgr.Warn("home loaded partially", zap.Error(err))
	}
	h.finish(gen, nil)
}

func (h *Home) SetShowAll(showAll bool) {
	h.mu.Lock()
	h.showAll = showAll
	h.mu.Unlock()
}

func (h *Home) ToggleShowAll() {
	h.mu.Lock()
	h.showAll = !h.showAll
	h.mu.Unlock()
}

// Open navigates to the detail page of a coin card.
func (h *Home) Open(id string) {
	h.nav.Navigate(CoinPath(id))
}

func (h *Home) View() HomeView {
	var v HomeView
	h.read(func(state State) {
		v.State = state
		v.Stats = NewGlobalStatsView(h.stats)
		v.ShowAll = h.showAll
		visible := h.coins
		size := homeTopSize
		if !h.showAll {
			size = homeCollapsed
			if len(visible) > homeCollapsed {
				visible = visible[:homeCollapsed]
			}
		}
		v.Heading = fmt.Sprintf(homeHeadingTmpl, size)
		v.Cards = make([]CoinCard, 0, len(visible))
		for i, c := range visible {
			v.Cards = append(v.Cards, NewCoinCard(i, c))
		}
	})
	return v
}
