// Package dashboard
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/coingecko"
	"github.com/kardiachain/cryptoverse-backend/types"
)

// Deps are the collaborators shared by every page of a session.
type Deps struct {
	Client      coingecko.Client
	Rates       RateProvider
	SearchDelay time.Duration

	Logger *zap.Logger
}

// PageView is the rendered state of the page behind the current route.
// Exactly one page field is set, except for RouteNotFound.
type PageView struct {
	Route     Route          `json:"route"`
	Home      *HomeView      `json:"home,omitempty"`
	Listing   *ListingView   `json:"listing,omitempty"`
	Exchanges *ExchangesView `json:"exchanges,omitempty"`
	News      *NewsView      `json:"news,omitempty"`
	Detail    *DetailView    `json:"detail,omitempty"`
	Message   string         `json:"message,omitempty"`
}

type page interface {
	Load(ctx context.Context)
	State() State
	Close()
}

// newPage builds the controller for a route. It returns nil for
// RouteNotFound.
func newPage(route Route, deps Deps, nav Navigator) page {
	switch route.Kind {
	case RouteHome:
		return NewHome(deps.Client, nav, deps.Logger)
	case RouteListing:
		return NewListing(deps.Client, nav, deps.Logger)
	case RouteExchanges:
		return NewExchanges(deps.Client, deps.Rates, deps.Logger)
	case RouteNews:
		return NewNews(deps.Client, deps.Logger)
	case RouteDetail:
		return NewDetail(deps.Client, route.CoinID, deps.Logger)
	}
	return nil
}

func renderPage(route Route, p page) PageView {
	v := PageView{Route: route}
	switch c := p.(type) {
	case *Home:
		hv := c.View()
		v.Home = &hv
	case *Listing:
		lv := c.View()
		v.Listing = &lv
	case *Exchanges:
		ev := c.View()
		v.Exchanges = &ev
	case *News:
		nv := c.View()
		v.News = &nv
	case *Detail:
		dv := c.View()
		v.Detail = &dv
	default:
		v.Message = "Page not found"
	}
	return v
}

// Shell is the stateful root of one client session: the current route,
// its page controller and the search overlay.
type Shell struct {
	ctx    context.Context
	deps   Deps
	logger *zap.Logger

	mu     sync.Mutex
	gen    uint64
	route  Route
	page   page
	search *SearchOverlay
	onPage func(PageView)
	wg     sync.WaitGroup

	// emitMu keeps listener deliveries in the order their views were built.
	emitMu sync.Mutex
}

func NewShell(ctx context.Context, deps Deps) *Shell {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Shell{
		ctx:    ctx,
		deps:   deps,
		logger: deps.Logger.With(zap.String("component", "shell")),
	}
	s.search = NewSearchOverlay(ctx, deps.Client, s, deps.SearchDelay, deps.Logger)
	return s
}

func (s *Shell) Search() *SearchOverlay {
	return s.search
}

// OnPage registers the listener notified whenever the page view changes.
func (s *Shell) OnPage(fn func(PageView)) {
	s.mu.Lock()
	s.onPage = fn
	s.mu.Unlock()
}

// Navigate switches to path. The previous page is cancelled and the new one
// loads in the background; the listener sees the loading and ready views.
func (s *Shell) Navigate(path string) {
	route, err := Resolve(path)
	if err != nil {
		s.logger.Debug("unknown route", zap.String("path", path))
	}
	p := newPage(route, s.deps, s)

	s.mu.Lock()
	if s.page != nil {
		s.page.Close()
	}
	s.gen++
	gen := s.gen
	s.route = route
	s.page = p
	s.mu.Unlock()

	if p == nil {
		s.emit(gen)
		return
	}
	s.async(gen, p.Load)
}

// Route is the current route.
func (s *Shell) Route() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

func (s *Shell) View() PageView {
	s.mu.Lock()
	route, p := s.route, s.page
	s.mu.Unlock()
	return renderPage(route, p)
}

// current returns the active page if it has type T.
func current[T page](s *Shell) (T, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.page.(T)
	if !ok {
		return c, 0, fmt.Errorf("action not available on %s: %w", s.route.Kind, types.ErrInvalidParam)
	}
	return c, s.gen, nil
}

// ToggleShowAll flips the home page between the top 10 and top 100.
func (s *Shell) ToggleShowAll() error {
	h, gen, err := current[*Home](s)
	if err != nil {
		return err
	}
	h.ToggleShowAll()
	s.emit(gen)
	return nil
}

// SetPage moves the listing to page k.
func (s *Shell) SetPage(k int) error {
	l, gen, err := current[*Listing](s)
	if err != nil {
		return err
	}
	s.async(gen, func(ctx context.Context) { l.SetPage(ctx, k) })
	return nil
}

// SetRange changes the chart range of the detail page.
func (s *Shell) SetRange(days types.DayRange) error {
	d, gen, err := current[*Detail](s)
	if err != nil {
		return err
	}
	if !days.Valid() {
		return fmt.Errorf("day range %d: %w", days, types.ErrInvalidParam)
	}
	s.async(gen, func(ctx context.Context) { _ = d.SetRange(ctx, days) })
	return nil
}

// Open follows a coin card or row of the home and listing pages.
func (s *Shell) Open(id string) error {
	s.mu.Lock()
	p := s.page
	s.mu.Unlock()
	switch c := p.(type) {
	case *Home:
		c.Open(id)
	case *Listing:
		c.Open(id)
	default:
		return fmt.Errorf("open: %w", types.ErrInvalidParam)
	}
	return nil
}

// async runs fn on the session context, emitting before and after when gen
// is still the current navigation.
func (s *Shell) async(gen uint64, fn func(ctx context.Context)) {
	s.emit(gen)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
		s.emit(gen)
	}()
}

func (s *Shell) emit(gen uint64) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	if gen != s.gen || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	route, p, fn := s.route, s.page, s.onPage
	s.mu.Unlock()
	if fn != nil {
		fn(renderPage(route, p))
	}
}

// Close cancels the current page and search, then waits for background
// loads. The session context should be cancelled by the caller.
func (s *Shell) Close() {
	s.mu.Lock()
	s.gen++
	if s.page != nil {
		s.page.Close()
	}
	s.mu.Unlock()
	s.search.Close()
	s.wg.Wait()
}
