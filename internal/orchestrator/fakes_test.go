package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/catalog"
	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

type fakeLoader struct {
	tab       domain.Tab
	items     []domain.Item
	err       error
	byIDErr   error
	loadPages []int
	byIDCalls int
}

func (f *fakeLoader) Tab() domain.Tab { return f.tab }

func (f *fakeLoader) Load(_ context.Context, page, pageSize int) (domain.Page, error) {
	f.loadPages = append(f.loadPages, page)
	if f.err != nil {
		return domain.EmptyPage(), f.err
	}
	start := (page - 1) * pageSize
	if start >= len(f.items) {
		return domain.Page{Items: []domain.Item{}, TotalCount: len(f.items)}, nil
	}
	end := min(start+pageSize, len(f.items))
	return domain.Page{Items: f.items[start:end], TotalCount: len(f.items)}, nil
}

func (f *fakeLoader) ByID(_ context.Context, id int) (domain.Item, error) {
	f.byIDCalls++
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if item := domain.FindByID(f.items, id); item != nil {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

// fakeSearcher is a loader with a server-side search endpoint
type fakeSearcher struct {
	fakeLoader
	searches  []string
	searchErr error
}

func (f *fakeSearcher) Search(_ context.Context, name string) ([]domain.Item, error) {
	f.searches = append(f.searches, name)
	if f.searchErr != nil {
		return []domain.Item{}, f.searchErr
	}
	return catalog.Filter(f.items, name), nil
}

type recordingPresenter struct {
	content    []string
	details    []string
	errors     []string
	loading    []bool
	pagination [][2]int
	stats      [3]int
}

func (p *recordingPresenter) RenderContent(c string)       { p.content = append(p.content, c) }
func (p *recordingPresenter) RenderDetailContent(c string) { p.details = append(p.details, c) }
func (p *recordingPresenter) ShowLoading(l bool)           { p.loading = append(p.loading, l) }
func (p *recordingPresenter) ShowError(m string)           { p.errors = append(p.errors, m) }

func (p *recordingPresenter) UpdatePagination(page, total int) {
	p.pagination = append(p.pagination, [2]int{page, total})
}

func (p *recordingPresenter) UpdateStats(c, pl, t int) { p.stats = [3]int{c, pl, t} }

func (p *recordingPresenter) lastContent() string {
	if len(p.content) == 0 {
		return ""
	}
	return p.content[len(p.content)-1]
}

type namesRenderer struct{}

func (namesRenderer) List(_ domain.Tab, items []domain.Item, _ string) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.GetName()
	}
	return strings.Join(names, "\n")
}

func (namesRenderer) Detail(item domain.Item) string {
	return "detail:" + item.GetName()
}

func characters(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = &domain.Character{ID: i + 1, Name: fmt.Sprintf("Char %d", i+1)}
	}
	return items
}

func planets(names ...string) []domain.Item {
	items := make([]domain.Item, len(names))
	for i, name := range names {
		items[i] = &domain.Planet{ID: i + 1, Name: name, Description: "The planet " + name}
	}
	return items
}

func transformations(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = &domain.Transformation{ID: i + 1, Name: fmt.Sprintf("Form %d", i+1)}
	}
	return items
}

type fixture struct {
	orch      *Orchestrator
	store     *state.Store
	cache     *cache.Cache
	presenter *recordingPresenter
	chars     *fakeSearcher
	planets   *fakeLoader
	forms     *fakeLoader
}

func newFixture() *fixture {
	f := &fixture{
		store:     state.NewStore(state.Initial()),
		cache:     cache.NewMemory(),
		presenter: &recordingPresenter{},
		chars:     &fakeSearcher{fakeLoader: fakeLoader{tab: domain.TabCharacters, items: characters(25)}},
		planets:   &fakeLoader{tab: domain.TabPlanets, items: planets("Namek", "Earth", "Vegeta", "Kaio")},
		forms:     &fakeLoader{tab: domain.TabTransformations, items: transformations(30)},
	}
	f.orch = New(Config{
		Store:     f.store,
		Cache:     f.cache,
		Loaders:   catalog.NewRegistry(f.chars, f.planets, f.forms),
		Presenter: f.presenter,
		Renderer:  namesRenderer{},
		PageSize:  12,
	})
	return f
}

// run executes tasks inline, feeding every message back like the event loop
func (f *fixture) run(tasks []Task) {
	for len(tasks) > 0 {
		t := tasks[0]
		tasks = tasks[1:]
		tasks = append(tasks, f.orch.Handle(t(context.Background()))...)
	}
}

// consistent reports whether the detail fields agree with the view
func consistent(s state.AppState) bool {
	return (s.Detail != nil) == (s.CurrentView == state.ViewDetail)
}
