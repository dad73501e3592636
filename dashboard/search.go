// Package dashboard
package dashboard

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
)

const (
	SearchMinQueryLen  = 2
	SearchMaxResults   = 5
	DefaultSearchDelay = 300 * time.Millisecond
)

type SearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Thumb  string `json:"thumb"`
	Href   string `json:"href"`
}

type SearchView struct {
	Query   string         `json:"query"`
	Visible bool           `json:"visible"`
	Pending bool           `json:"pending"`
	Results []SearchResult `json:"results"`
}

// SearchQueryValid reports whether q is long enough to be sent upstream.
func SearchQueryValid(q string) bool {
	return utf8.RuneCountInString(q) >= SearchMinQueryLen
}

// SearchResults keeps the first hits and links each to its detail page.
func SearchResults(hits []*types.SearchHit) []SearchResult {
	if len(hits) > SearchMaxResults {
		hits = hits[:SearchMaxResults]
	}
	out := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, SearchResult{
			ID:     h.ID,
			Name:   h.Name,
			Symbol: h.Symbol,
			Thumb:  h.Thumb,
			Href:   CoinPath(h.ID),
		})
	}
	return out
}

// SearchOverlay is the search-as-you-type box of a session. Keystrokes are
// debounced and only the newest query may publish results.
type SearchOverlay struct {
	client coingecko.Client
	nav    Navigator
	delay  time.Duration
	logger *zap.Logger

	// emitMu keeps listener deliveries in the order their views were built.
	emitMu sync.Mutex

	mu       sync.Mutex
	ctx      context.Context
	gen      uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	query    string
	results  []SearchResult
	visible  bool
	pending  bool
	onChange func(SearchView)
}

func NewSearchOverlay(ctx context.Context, client coingecko.Client, nav Navigator, delay time.Duration, logger *zap.Logger) *SearchOverlay {
	if nav == nil {
		nav = nopNavigator{}
	}
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &SearchOverlay{
		ctx:    ctx,
		client: client,
		nav:    nav,
		delay:  delay,
		logger: logger.With(zap.String("component", "search")),
	}
}

// OnChange registers the listener notified after every visible change.
func (s *SearchOverlay) OnChange(fn func(SearchView)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// invalidate drops any armed timer and in-flight request. Callers hold mu.
func (s *SearchOverlay) invalidate() uint64 {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.gen
}

func (s *SearchOverlay) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	gen := s.invalidate()
	if !SearchQueryValid(q) {
		s.results = nil
		s.visible = false
		s.pending = false
		s.mu.Unlock()
		s.emit()
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(gen, q)
	})
	s.mu.Unlock()
}

func (s *SearchOverlay) run(gen uint64, q string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	hits, err := s.client.Search(ctx, q)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.cancel = nil
	s.pending = false
	if err != nil {
		s.mu.Unlock()
		if ctx.Err() == nil {
			s.logger.Warn("cannot search coins", zap.String("query", q), zap.Error(err))
		}
		s.emit()
		return
	}
	s.results = SearchResults(hits)
	s.visible = true
	s.mu.Unlock()
	s.emit()
}

// Select opens the detail page of a hit and resets the overlay.
func (s *SearchOverlay) Select(id string) {
	s.mu.Lock()
	s.invalidate()
	s.query = ""
	s.results = nil
	s.visible = false
	s.pending = false
	s.mu.Unlock()
	s.nav.Navigate(CoinPath(id))
	s.emit()
}

// Focus shows the overlay again when it still holds results.
func (s *SearchOverlay) Focus() {
	s.mu.Lock()
	changed := !s.visible && len(s.results) > 0
	if changed {
		s.visible = true
	}
	s.mu.Unlock()
	if changed {
		s.emit()
	}
}

func (s *SearchOverlay) View() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *SearchOverlay) view() SearchView {
	results := make([]SearchResult, len(s.results))
	copy(results, s.results)
	return SearchView{
		Query:   s.query,
		Visible: s.visible && len(results) > 0,
		Pending: s.pending,
		Results: results,
	}
}

func (s *SearchOverlay) emit() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	fn := s.onChange
	v := s.view()
	s.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

// Close stops pending work. The overlay must not be used afterwards.
func (s *SearchOverlay) Close() {
	s.mu.Lock()
	s.invalidate()
	s.mu.Unlock()
}
