// Package orchestrator decides, for every user action, whether to serve it
// from state or cache or to fetch from the catalog API, and keeps the state
// store and cache consistent with the results.
//
// All methods must be called from one goroutine. Remote work is returned as
// Tasks; their messages go back through Handle on that same goroutine.
package orchestrator

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/catalog"
	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

// DefaultPageSize is the number of records shown per page
const DefaultPageSize = 12

// Config holds the orchestrator's collaborators
type Config struct {
	Store     *state.Store
	Cache     *cache.Cache
	Loaders   *catalog.Registry
	Presenter Presenter
	Renderer  Renderer
	PageSize  int
	Logger    *slog.Logger
}

// Orchestrator coordinates the store, cache and loaders
type Orchestrator struct {
	store     *state.Store
	cache     *cache.Cache
	loaders   *catalog.Registry
	presenter Presenter
	renderer  Renderer
	pageSize  int
	logger    *slog.Logger

	inflight   map[string]bool       // keys with a fetch outstanding
	lastBrowse map[domain.Tab]string // last browse key shown per catalog
	detail     detailMachine
	pending    []Task // tasks produced while handling store notifications
	wantStats  bool   // Start asked for every catalog's total
}

// New creates an orchestrator and subscribes it to the store
func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemory()
	}

	o := &Orchestrator{
		store:      cfg.Store,
		cache:      cfg.Cache,
		loaders:    cfg.Loaders,
		presenter:  cfg.Presenter,
		renderer:   cfg.Renderer,
		pageSize:   cfg.PageSize,
		logger:     cfg.Logger,
		inflight:   make(map[string]bool),
		lastBrowse: make(map[domain.Tab]string),
	}
	o.store.Subscribe(o.onState)
	return o
}

// State returns the current snapshot
func (o *Orchestrator) State() state.AppState {
	return o.store.Snapshot()
}

// PageSize returns the number of records per page
func (o *Orchestrator) PageSize() int {
	return o.pageSize
}

// VisibleItems returns the records on screen in list order
func (o *Orchestrator) VisibleItems() []domain.Item {
	s := o.store.Snapshot()
	items := s.CurrentItems()
	if s.SearchTerm != "" {
		items = pageOf(items, s.CurrentPage, o.pageSize)
	}
	return items
}

// Handle applies a task result and returns any follow-up tasks
func (o *Orchestrator) Handle(msg Msg) []Task {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		o.handlePageLoaded(msg)
	case searchResultsMsg:
		o.handleSearchResults(msg)
	case detailLoadedMsg:
		o.handleDetailLoaded(msg)
	}
	return o.drain()
}

// update mutates the store, keeping IsLoading in step with outstanding work
func (o *Orchestrator) update(mutate func(*state.AppState)) {
	o.store.Update(func(s *state.AppState) {
		mutate(s)
		s.IsLoading = o.busy()
	})
}

func (o *Orchestrator) busy() bool {
	return len(o.inflight) > 0 || o.detail.active()
}

// onState reacts to every snapshot
func (o *Orchestrator) onState(s state.AppState) {
	o.presenter.ShowLoading(s.IsLoading)
	o.presenter.UpdatePagination(s.CurrentPage, s.TotalPages)
	o.presenter.UpdateStats(s.TotalCharacters, s.TotalPlanets, s.TotalTransformations)

	if s.InDetail() && o.detail.phase == PhaseIdle {
		o.resolveDetail(*s.Detail)
	}
}

// drain returns tasks queued by notifications, plus extra
func (o *Orchestrator) drain(extra ...Task) []Task {
	tasks := append(o.pending, extra...)
	o.pending = nil
	return tasks
}

// renderList shows the active catalog when the home view is up. Search
// results are held whole in state and paged here.
func (o *Orchestrator) renderList() {
	s := o.store.Snapshot()
	if s.CurrentView != state.ViewHome {
		return
	}
	o.presenter.RenderContent(o.renderer.List(s.CurrentTab, o.VisibleItems(), s.SearchTerm))
}

// pageOf returns the page-th slice of items
func pageOf(items []domain.Item, page, pageSize int) []domain.Item {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []domain.Item{}
	}
	return items[start:min(start+pageSize, len(items))]
}

// clampPage keeps CurrentPage within [1, TotalPages]
func clampPage(s *state.AppState) {
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	if s.CurrentPage > s.TotalPages {
		s.CurrentPage = s.TotalPages
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
}

func errorMessage(action string, tab domain.Tab, err error) string {
	if errors.Is(err, domain.ErrServerOffline) {
		return "Could not " + action + " " + string(tab) + ": the catalog API is unreachable"
	}
	return "Could not " + action + " " + string(tab)
}
