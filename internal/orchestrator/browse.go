package orchestrator

import (
	"context"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

// Start loads the default catalog and the first page of the other catalogs
// so their totals are known. Stats pages that fail are retried on later
// loads until every catalog has reported its total.
func (o *Orchestrator) Start() []Task {
	s := o.store.Snapshot()
	tasks := o.LoadTabData(s.CurrentTab, s.CurrentPage)

	if o.cache.IsLoaded(cache.FlagStats) {
		return tasks
	}
	o.wantStats = true
	return append(tasks, o.statsTasks()...)
}

// statsTasks fetches page 1 of every catalog not yet cached
func (o *Orchestrator) statsTasks() []Task {
	var tasks []Task
	for _, tab := range domain.Tabs {
		if o.cache.Has(cache.Key(tab, 1, "")) {
			continue
		}
		if task := o.fetchPage(tab, 1, ""); task != nil {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		return nil
	}
	o.update(func(*state.AppState) {})
	return o.drain(tasks...)
}

// retryStats reissues stats pages that failed after Start
func (o *Orchestrator) retryStats() []Task {
	if !o.wantStats || o.cache.IsLoaded(cache.FlagStats) {
		return nil
	}
	return o.statsTasks()
}

// markStats sets the stats flag once every catalog's first page is in
func (o *Orchestrator) markStats() {
	for _, tab := range domain.Tabs {
		if !o.cache.IsLoaded(cache.TabFlag(tab)) {
			return
		}
	}
	o.cache.SetLoaded(cache.FlagStats)
}

// LoadTabData shows page of tab, from cache when possible
func (o *Orchestrator) LoadTabData(tab domain.Tab, page int) []Task {
	key := cache.Key(tab, page, "")

	if items, ok := o.cache.Get(key); ok {
		o.logger.Debug("using cached page", "key", key)
		o.lastBrowse[tab] = key
		o.update(func(s *state.AppState) {
			s.SetItems(tab, items)
			if s.CurrentTab == tab && s.SearchTerm == "" {
				s.TotalPages = state.TotalPages(s.Total(tab), o.pageSize)
				clampPage(s)
			}
		})
		o.renderList()
		return o.drain()
	}

	task := o.fetchPage(tab, page, "")
	o.update(func(*state.AppState) {})
	if task == nil {
		return o.drain()
	}
	return o.drain(task)
}

// fetchPage returns a load task for key, or nil when one is already running
func (o *Orchestrator) fetchPage(tab domain.Tab, page int, search string) Task {
	key := cache.Key(tab, page, "")
	if o.inflight[key] {
		o.logger.Debug("load already in flight", "key", key)
		return nil
	}
	loader := o.loaders.For(tab)
	if loader == nil {
		o.logger.Error("no loader for catalog", "tab", tab)
		return nil
	}

	o.inflight[key] = true
	pageSize := o.pageSize
	return func(ctx context.Context) Msg {
		result, err := loader.Load(ctx, page, pageSize)
		return pageLoadedMsg{tab: tab, page: page, key: key, result: result, err: err, search: search}
	}
}

func (o *Orchestrator) handlePageLoaded(msg pageLoadedMsg) {
	delete(o.inflight, msg.key)

	if msg.err == nil {
		if err := o.cache.Set(msg.key, msg.result.Items); err != nil {
			o.logger.Error("failed to cache page", "key", msg.key, "error", err)
		}
		if msg.page == 1 {
			o.cache.SetLoaded(cache.TabFlag(msg.tab))
			o.markStats()
		}
	}

	s := o.store.Snapshot()
	current := s.CurrentTab == msg.tab && s.CurrentPage == msg.page && s.SearchTerm == ""
	if _, seen := o.lastBrowse[msg.tab]; msg.err == nil && (current || !seen || s.CurrentTab != msg.tab) {
		o.lastBrowse[msg.tab] = msg.key
	}
	if !current && s.CurrentTab == msg.tab && s.SearchTerm == "" {
		o.logger.Warn("stale page completion", "key", msg.key, "page", s.CurrentPage, "search", s.SearchTerm)
	}

	o.update(func(s *state.AppState) {
		// A failed page keeps the catalog size already known
		total := msg.result.TotalCount
		if msg.err != nil && s.Total(msg.tab) > 0 {
			total = s.Total(msg.tab)
		}
		s.SetTotal(msg.tab, total)
		switch {
		case current:
			s.SetItems(msg.tab, msg.result.Items)
			s.TotalPages = state.TotalPages(total, o.pageSize)
			clampPage(s)
		case s.CurrentTab != msg.tab:
			// Not on screen, so nothing is overwritten
			s.SetItems(msg.tab, msg.result.Items)
		}
	})

	if msg.err != nil && (current || msg.search != "") {
		o.presenter.ShowError(errorMessage("load", msg.tab, msg.err))
	}
	if current {
		o.renderList()
	}

	o.finishLocalSearch(msg)
}

// ChangePage moves by direction pages when the target page exists
func (o *Orchestrator) ChangePage(direction int) []Task {
	s := o.store.Snapshot()
	next := s.CurrentPage + direction
	if next < 1 || next > s.TotalPages {
		return nil
	}

	o.update(func(s *state.AppState) { s.CurrentPage = next })
	return o.LoadDataIfNeeded()
}

// SwitchTab shows tab from its first page in browse mode. It does nothing
// when tab is already showing in the home view.
func (o *Orchestrator) SwitchTab(tab domain.Tab) []Task {
	s := o.store.Snapshot()
	if s.CurrentTab == tab && s.CurrentView == state.ViewHome {
		return nil
	}

	o.detail.reset()
	o.update(func(s *state.AppState) {
		s.CurrentTab = tab
		s.CurrentPage = 1
		s.SearchTerm = ""
		s.CurrentView = state.ViewHome
		s.Detail = nil
	})
	return o.LoadDataIfNeeded()
}
