package orchestrator

import (
	"context"
	"strings"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/catalog"
	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

// SetSearchTerm records a settled search term and reloads when the list is
// on screen. An empty term returns to browse mode.
func (o *Orchestrator) SetSearchTerm(term string) []Task {
	term = strings.TrimSpace(term)
	o.update(func(s *state.AppState) {
		s.SearchTerm = term
		s.CurrentPage = 1
	})

	if o.store.Snapshot().CurrentView != state.ViewHome {
		return o.drain()
	}
	return o.LoadDataIfNeeded()
}

// LoadDataIfNeeded runs a search or a page load depending on the current term
func (o *Orchestrator) LoadDataIfNeeded() []Task {
	s := o.store.Snapshot()
	var tasks []Task
	if s.SearchTerm != "" {
		tasks = o.PerformSearch(s.SearchTerm, s.CurrentTab)
	} else {
		tasks = o.LoadTabData(s.CurrentTab, s.CurrentPage)
	}
	return append(tasks, o.retryStats()...)
}

// PerformSearch searches tab for term. Catalogs with a server-side search
// endpoint always query it; the others filter the page already loaded,
// loading the first page when nothing is loaded yet.
func (o *Orchestrator) PerformSearch(term string, tab domain.Tab) []Task {
	loader := o.loaders.For(tab)
	if loader == nil {
		o.logger.Error("no loader for catalog", "tab", tab)
		return nil
	}

	if searcher, ok := loader.(catalog.Searcher); ok {
		return o.remoteSearch(searcher, tab, term)
	}

	if source, ok := o.localSearchSource(tab); ok {
		o.applySearchResults(tab, catalog.Filter(source, term))
		return o.drain()
	}

	task := o.fetchPage(tab, 1, term)
	o.update(func(*state.AppState) {})
	if task == nil {
		return o.drain()
	}
	return o.drain(task)
}

func (o *Orchestrator) remoteSearch(searcher catalog.Searcher, tab domain.Tab, term string) []Task {
	key := cache.Key(tab, 1, term)
	if o.inflight[key] {
		return nil
	}
	o.inflight[key] = true
	o.update(func(*state.AppState) {})

	return o.drain(func(ctx context.Context) Msg {
		items, err := searcher.Search(ctx, term)
		return searchResultsMsg{tab: tab, term: term, key: key, items: items, err: err}
	})
}

func (o *Orchestrator) handleSearchResults(msg searchResultsMsg) {
	delete(o.inflight, msg.key)

	if msg.err == nil {
		if err := o.cache.Set(msg.key, msg.items); err != nil {
			o.logger.Error("failed to cache search results", "key", msg.key, "error", err)
		}
	}

	s := o.store.Snapshot()
	if s.CurrentTab != msg.tab || s.SearchTerm != msg.term {
		o.logger.Debug("dropping stale search results", "tab", msg.tab, "term", msg.term)
		o.update(func(*state.AppState) {})
		return
	}

	if msg.err != nil {
		o.presenter.ShowError(errorMessage("search", msg.tab, msg.err))
		o.applySearchResults(msg.tab, []domain.Item{})
		return
	}
	o.applySearchResults(msg.tab, msg.items)
}

// localSearchSource returns the browse page a local search filters. The
// cached page is used rather than the state list so repeated searches do
// not filter earlier results.
func (o *Orchestrator) localSearchSource(tab domain.Tab) ([]domain.Item, bool) {
	key, ok := o.lastBrowse[tab]
	if !ok {
		return nil, false
	}
	return o.cache.Get(key)
}

// finishLocalSearch filters a page that arrived while a local search is
// active, provided it is the page searches run over. The current term is
// used, so a term typed while the page was in flight still gets results.
func (o *Orchestrator) finishLocalSearch(msg pageLoadedMsg) {
	s := o.store.Snapshot()
	if s.CurrentTab != msg.tab || s.SearchTerm == "" {
		return
	}
	if msg.err != nil && msg.search != "" {
		o.applySearchResults(msg.tab, []domain.Item{})
		return
	}
	if o.lastBrowse[msg.tab] != msg.key {
		return
	}
	if _, remote := o.loaders.For(msg.tab).(catalog.Searcher); remote {
		return
	}
	if msg.search != "" && msg.search != s.SearchTerm {
		o.logger.Debug("search term changed while loading", "tab", msg.tab, "was", msg.search, "now", s.SearchTerm)
	}
	o.applySearchResults(msg.tab, catalog.Filter(msg.result.Items, s.SearchTerm))
}

func (o *Orchestrator) applySearchResults(tab domain.Tab, items []domain.Item) {
	o.update(func(s *state.AppState) {
		s.SetItems(tab, items)
		s.TotalPages = state.TotalPages(len(items), o.pageSize)
		clampPage(s)
	})
	o.renderList()
}
