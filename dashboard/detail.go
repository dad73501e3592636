// Package dashboard
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

const (
	notFoundMessage = "Crypto not found"
	approvedMark    = "✓"
	unapprovedMark  = "✗"
)

// descriptionPolicy strips scripts, handlers and unsafe URLs from upstream
// markup before it leaves the server.
var descriptionPolicy = bluemonday.UGCPolicy()

type StatRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type ChartPointView struct {
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Tooltip string  `json:"tooltip"`
}

type RangeOption struct {
	Days     types.DayRange `json:"days"`
	Label    string         `json:"label"`
	Selected bool           `json:"selected"`
}

type DetailView struct {
	State State  `json:"state"`
	ID    string `json:"id"`
	Found bool   `json:"found"`
	// NotFound is set only when upstream reported the coin as unknown.
	NotFound bool   `json:"notFound"`
	Message  string `json:"message,omitempty"`

	Name           string `json:"name,omitempty"`
	Symbol         string `json:"symbol,omitempty"`
	Image          string `json:"image,omitempty"`
	Price          string `json:"price,omitempty"`
	Change24h      string `json:"change24h,omitempty"`
	ChangePositive bool   `json:"changePositive"`

	Days   types.DayRange   `json:"days"`
	Ranges []RangeOption    `json:"ranges"`
	Chart  []ChartPointView `json:"chart"`

	ValueStats  []StatRow `json:"valueStats"`
	OtherStats  []StatRow `json:"otherStats"`
	Description string    `json:"description,omitempty"`
	Links       []Link    `json:"links"`
}

// FirstParagraph keeps the markup up to and including the first </p>.
func FirstParagraph(html string) string {
	if html == "" {
		return ""
	}
	return strings.SplitN(html, "</p>", 2)[0] + "</p>"
}

// SanitizeDescription cuts the description to its first paragraph and
// removes unsafe markup.
func SanitizeDescription(html string) string {
	p := FirstParagraph(html)
	if p == "" {
		return ""
	}
	return descriptionPolicy.Sanitize(p)
}

func countOrNA(n int) string {
	if n <= 0 {
		return utils.NotAvailable
	}
	return strconv.Itoa(n)
}

func rankOrNA(rank int) string {
	if rank <= 0 {
		return utils.NotAvailable
	}
	return strconv.Itoa(rank)
}

func NewChartView(points []*types.ChartPoint, days types.DayRange) []ChartPointView {
	intraday := days == types.Range1D
	out := make([]ChartPointView, 0, len(points))
	for _, p := range points {
		out = append(out, ChartPointView{
			Label:   utils.FormatChartTime(p.Time, intraday),
			Price:   p.Price,
			Tooltip: utils.FormatUSD2(p.Price),
		})
	}
	return out
}

func rangeOptions(selected types.DayRange) []RangeOption {
	out := make([]RangeOption, 0, len(types.DayRanges))
	for _, r := range types.DayRanges {
		out = append(out, RangeOption{Days: r, Label: r.Label(), Selected: r == selected})
	}
	return out
}

func coinLinks(l types.CoinLinks) []Link {
	links := make([]Link, 0, 4)
	add := func(label, url string) {
		if url != "" {
			links = append(links, Link{Label: label, URL: url})
		}
	}
	add("Website", l.Homepage)
	add("Blockchain Explorer", l.BlockchainSite)
	add("Forum", l.OfficialForum)
	add("Reddit", l.Subreddit)
	return links
}

// Detail shows one coin with its price chart. Both are refetched whenever
// the coin or the day range changes.
type Detail struct {
	loader
	client coingecko.Client
	logger *zap.Logger

	id       string
	days     types.DayRange
	coin     *types.CoinDetail
	chart    []*types.ChartPoint
	notFound bool
}

func NewDetail(client coingecko.Client, id string, logger *zap.Logger) *Detail {
	return &Detail{
		client: client,
		logger: logger.With(zap.String("page", "detail")),
		id:     id,
		days:   types.DefaultDayRange,
	}
}

func (d *Detail) params() (string, types.DayRange) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id, d.days
}

// SetCoin switches to another coin and reloads.
func (d *Detail) SetCoin(ctx context.Context, id string) error {
	if !utils.IsValidCoinID(id) {
		return fmt.Errorf("coin %q: %w", id, types.ErrInvalidParam)
	}
	d.mu.Lock()
	d.id = id
	d.mu.Unlock()
	d.Load(ctx)
	return nil
}

// SetRange switches the chart range and reloads.
func (d *Detail) SetRange(ctx context.Context, days types.DayRange) error {
	if !days.Valid() {
		return fmt.Errorf("day range %d: %w", days, types.ErrInvalidParam)
	}
	d.mu.Lock()
	d.days = days
	d.mu.Unlock()
	d.Load(ctx)
	return nil
}

func (d *Detail) Load(ctx context.Context) {
	ctx, gen := d.begin(ctx)
	id, days := d.params()
	lgr := d.logger.With(zap.String("method", "Load"), zap.String("id", id), zap.Int("days", int(days)))

	var g errgroup.Group
	g.Go(func() error {
		coin, err := d.client.Coin(ctx, id)
		notFound := types.IsFetchKind(err, types.FetchNotFound)
		d.update(gen, func() {
			d.coin = coin
			d.notFound = notFound
		})
		if err != nil && !notFound {
			return fmt.Errorf("coin: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		chart, err := d.client.MarketChart(ctx, id, days)
		d.update(gen, func() { d.chart = chart })
		if err != nil && !types.IsFetchKind(err, types.FetchNotFound) {
			return fmt.Errorf("market chart: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		lgr.Warn("detail loaded partially", zap.Error(err))
	}
	d.finish(gen, nil)
}

func (d *Detail) View() DetailView {
	var v DetailView
	d.read(func(state State) {
		v.State = state
		v.ID = d.id
		v.Days = d.days
		v.Ranges = rangeOptions(d.days)
		v.Chart = NewChartView(d.chart, d.days)
		v.Links = []Link{}
		if d.coin == nil {
			v.NotFound = d.notFound
			if state == StateReady {
				v.Message = notFoundMessage
			}
			return
		}
		c := d.coin
		v.Found = true
		v.Name = c.Name
		v.Symbol = strings.ToUpper(c.Symbol)
		v.Image = c.Image
		v.Price = utils.FormatPrice(c.CurrentPrice)
		v.Change24h = utils.FormatPercent(c.PriceChangePercentage24h, false)
		v.ChangePositive = c.PriceChangePercentage24h == nil || *c.PriceChangePercentage24h >= 0
		v.ValueStats = []StatRow{
			{Label: "Price to USD", Value: utils.FormatPrice(c.CurrentPrice)},
			{Label: "Rank", Value: rankOrNA(c.MarketCapRank)},
			{Label: "24h Volume", Value: utils.FormatCurrencyScaled(c.TotalVolume)},
			{Label: "Market Cap", Value: utils.FormatCurrencyScaled(c.MarketCap)},
			{Label: "All-time-high (daily avg.)", Value: utils.FormatPrice(c.ATH)},
		}
		approved := unapprovedMark
		if c.CirculatingSupply != nil && *c.CirculatingSupply > 0 {
			approved = approvedMark
		}
		v.OtherStats = []StatRow{
			{Label: "Number Of Markets", Value: countOrNA(c.MarketCount)},
			{Label: "Number Of Exchanges", Value: countOrNA(c.NumberOfExchanges)},
			{Label: "Approved Supply", Value: approved},
			{Label: "Total Supply", Value: utils.FormatCompactCount(c.TotalSupply)},
			{Label: "Circulating Supply", Value: utils.FormatCompactCount(c.CirculatingSupply)},
		}
		v.Description = SanitizeDescription(c.Description)
		v.Links = coinLinks(c.Links)
	})
	return v
}
