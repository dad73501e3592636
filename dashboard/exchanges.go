// Package dashboard
package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

const ExchangesPageSize = 50

type TrustLevel string

const (
	TrustHigh   TrustLevel = "high"
	TrustMedium TrustLevel = "medium"
	TrustLow    TrustLevel = "low"
)

func TrustLevelOf(score int) TrustLevel {
	switch {
	case score >= 8:
		return TrustHigh
	case score >= 6:
		return TrustMedium
	}
	return TrustLow
}

type ExchangeRow struct {
	Rank       int        `json:"rank"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Image      string     `json:"image"`
	URL        string     `json:"url"`
	Volume24h  string     `json:"volume24h"`
	TrustScore string     `json:"trustScore"`
	TrustLevel TrustLevel `json:"trustLevel"`
	Markets    string     `json:"markets"`
	Year       string     `json:"year"`
}

type ExchangesView struct {
	State State `json:"state"`
	// VolumeApproximate is set when volumes were converted with the fallback
	// BTC/USD rate instead of a live one.
	VolumeApproximate bool          `json:"volumeApproximate"`
	BTCUSDRate        string        `json:"btcUsdRate"`
	Rows              []ExchangeRow `json:"rows"`
}

func optionalInt(v *int) string {
	if v == nil {
		return utils.NotAvailable
	}
	return strconv.Itoa(*v)
}

func NewExchangeRow(index int, e *types.Exchange, rate decimal.Decimal) ExchangeRow {
	volume, _ := decimal.NewFromFloat(e.TradeVolume24hBTC).Mul(rate).Float64()
	return ExchangeRow{
		Rank:       index + 1,
		ID:         e.ID,
		Name:       e.Name,
		Image:      e.Image,
		URL:        e.URL,
		Volume24h:  utils.FormatCurrencyScaled(&volume),
		TrustScore: fmt.Sprintf("%d/10", e.TrustScore),
		TrustLevel: TrustLevelOf(e.TrustScore),
		Markets:    optionalInt(e.Markets),
		Year:       optionalInt(e.YearEstablished),
	}
}

// Exchanges lists the top exchanges once, in upstream order.
type Exchanges struct {
	loader
	client coingecko.Client
	rates  RateProvider
	logger *zap.Logger

	exchanges   []*types.Exchange
	rate        decimal.Decimal
	approximate bool
}

func NewExchanges(client coingecko.Client, rates RateProvider, logger *zap.Logger) *Exchanges {
	if rates == nil {
		rates = FixedRate(decimal.NewFromInt(DefaultFallbackBTCUSD))
	}
	return &Exchanges{
		client: client,
		rates:  rates,
		logger: logger.With(zap.String("page", "exchanges")),
	}
}

func (e *Exchanges) Load(ctx context.Context) {
	ctx, gen := e.begin(ctx)
	lgr := e.logger.With(zap.String("method", "Load"))

	exchanges, err := e.client.Exchanges(ctx, ExchangesPageSize)
	if err != nil {
		if ctx.Err() == nil {
			lgr.Warn("cannot load exchanges", zap.Error(err))
		}
		exchanges = nil
	}
	rate, approximate := e.rates.BTCUSD(ctx)
	e.finish(gen, func() {
		e.exchanges = exchanges
		e.rate = rate
		e.approximate = approximate
	})
}

func (e *Exchanges) View() ExchangesView {
	var v ExchangesView
	e.read(func(state State) {
		v.State = state
		v.VolumeApproximate = e.approximate
		v.BTCUSDRate = e.rate.StringFixed(2)
		v.Rows = make([]ExchangeRow, 0, len(e.exchanges))
		for i, x := range e.exchanges {
			v.Rows = append(v.Rows, NewExchangeRow(i, x, e.rate))
		}
	})
	return v
}
