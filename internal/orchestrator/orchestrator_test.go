package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
)

var errOffline = errors.New("offline")

func TestLoadTabDataFetchesThenCaches(t *testing.T) {
	f := newFixture()

	tasks := f.orch.LoadTabData(domain.TabCharacters, 1)
	require.Len(t, tasks, 1)
	assert.True(t, f.orch.State().IsLoading)

	f.run(tasks)

	s := f.orch.State()
	assert.False(t, s.IsLoading)
	assert.Len(t, s.Characters, 12)
	assert.Equal(t, 25, s.TotalCharacters)
	assert.Equal(t, 3, s.TotalPages)
	assert.True(t, f.cache.Has(cache.Key(domain.TabCharacters, 1, "")))
	assert.True(t, f.cache.IsLoaded(cache.TabFlag(domain.TabCharacters)))
	assert.Contains(t, f.presenter.lastContent(), "Char 1")
}

func TestSameKeyLoadsOnce(t *testing.T) {
	f := newFixture()

	first := f.orch.LoadTabData(domain.TabCharacters, 1)
	second := f.orch.LoadTabData(domain.TabCharacters, 1)
	assert.Empty(t, second, "in-flight key is not fetched again")

	f.run(first)
	third := f.orch.LoadTabData(domain.TabCharacters, 1)
	assert.Empty(t, third, "cached key renders without a task")

	assert.Equal(t, []int{1}, f.chars.loadPages)
	assert.Len(t, f.presenter.content, 2)
}

func TestChangePageStaysInBounds(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	assert.Nil(t, f.orch.ChangePage(-1))
	assert.Equal(t, 1, f.orch.State().CurrentPage)

	f.run(f.orch.ChangePage(1))
	f.run(f.orch.ChangePage(1))
	assert.Equal(t, 3, f.orch.State().CurrentPage)
	assert.Len(t, f.orch.State().Characters, 1)

	assert.Nil(t, f.orch.ChangePage(1), "page 4 of 3 is rejected")
	assert.Equal(t, 3, f.orch.State().CurrentPage)
	assert.Equal(t, []int{1, 2, 3}, f.chars.loadPages, "page 4 is never fetched")

	f.run(f.orch.ChangePage(-1))
	assert.Equal(t, 2, f.orch.State().CurrentPage)
	assert.Equal(t, []int{1, 2, 3}, f.chars.loadPages, "page 2 comes from cache")
}

func TestSwitchTabToActiveTabIsNoop(t *testing.T) {
	f := newFixture()
	f.run(f.orch.SwitchTab(domain.TabPlanets))
	require.Equal(t, domain.TabPlanets, f.orch.State().CurrentTab)

	notified := 0
	f.store.Subscribe(func(state.AppState) { notified++ })

	tasks := f.orch.SwitchTab(domain.TabPlanets)

	assert.Nil(t, tasks)
	assert.Zero(t, notified)
	assert.Equal(t, []int{1}, f.planets.loadPages)
}

func TestSwitchTabResetsBrowseState(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))
	f.run(f.orch.ChangePage(1))
	f.run(f.orch.NavigateToDetail(domain.ItemCharacter, 14))

	f.run(f.orch.SwitchTab(domain.TabCharacters))

	s := f.orch.State()
	assert.Equal(t, state.ViewHome, s.CurrentView)
	assert.Nil(t, s.Detail)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, "", s.SearchTerm)
	assert.Equal(t, 3, s.TotalPages)
	assert.True(t, consistent(s))
}

func TestLoadFailureShowsErrorAndRetries(t *testing.T) {
	f := newFixture()
	f.planets.err = errOffline

	f.run(f.orch.SwitchTab(domain.TabPlanets))

	s := f.orch.State()
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Planets)
	assert.Equal(t, 1, s.TotalPages)
	require.Len(t, f.presenter.errors, 1)
	assert.Contains(t, f.presenter.errors[0], "planets")
	assert.False(t, f.cache.Has(cache.Key(domain.TabPlanets, 1, "")))
	assert.False(t, f.cache.IsLoaded(cache.TabFlag(domain.TabPlanets)))

	f.planets.err = nil
	f.run(f.orch.LoadDataIfNeeded())
	assert.Len(t, f.orch.State().Planets, 4)
	assert.Equal(t, []int{1, 1}, f.planets.loadPages)
}

func TestStartLoadsStatsWithoutRendering(t *testing.T) {
	f := newFixture()

	tasks := f.orch.Start()
	require.Len(t, tasks, 3)
	f.run(tasks)

	s := f.orch.State()
	assert.Equal(t, 25, s.TotalCharacters)
	assert.Equal(t, 4, s.TotalPlanets)
	assert.Equal(t, 30, s.TotalTransformations)
	assert.Equal(t, [3]int{25, 4, 30}, f.presenter.stats)
	assert.Equal(t, 3, s.TotalPages, "pages follow the active catalog")
	assert.Len(t, f.presenter.content, 1)
	assert.True(t, f.cache.IsLoaded(cache.FlagStats))
	assert.True(t, f.cache.Has(cache.Key(domain.TabTransformations, 1, "")))

	// The stats pages now serve tab switches from cache
	f.run(f.orch.SwitchTab(domain.TabTransformations))
	assert.Equal(t, []int{1}, f.forms.loadPages)
	assert.Equal(t, 3, f.orch.State().TotalPages)

	assert.Empty(t, f.orch.Start(), "stats load once per process")
}

func TestStatsLoadFailureIsSilent(t *testing.T) {
	f := newFixture()
	f.forms.err = errOffline

	f.run(f.orch.Start())

	assert.Empty(t, f.presenter.errors)
	assert.Zero(t, f.orch.State().TotalTransformations)
	assert.False(t, f.orch.State().IsLoading)
	assert.False(t, f.cache.IsLoaded(cache.FlagStats))
}

func TestFailedStatsRetryOnNextLoad(t *testing.T) {
	f := newFixture()
	f.forms.err = errOffline
	f.run(f.orch.Start())
	require.Zero(t, f.orch.State().TotalTransformations)

	f.forms.err = nil
	f.run(f.orch.SwitchTab(domain.TabPlanets))

	s := f.orch.State()
	assert.Equal(t, 30, s.TotalTransformations)
	assert.Equal(t, [3]int{25, 4, 30}, f.presenter.stats)
	assert.Equal(t, []int{1, 1}, f.forms.loadPages)
	assert.True(t, f.cache.IsLoaded(cache.FlagStats))
	assert.Empty(t, f.presenter.errors)

	f.run(f.orch.SwitchTab(domain.TabCharacters))
	assert.Equal(t, []int{1, 1}, f.forms.loadPages, "no more stats loads once all totals are known")
}

func TestHeadlessLoadsSkipStats(t *testing.T) {
	f := newFixture()

	f.run(f.orch.SwitchTab(domain.TabPlanets))

	assert.Empty(t, f.chars.loadPages)
	assert.Empty(t, f.forms.loadPages)
}

func TestFailedPageKeepsKnownTotal(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	f.chars.err = errOffline
	f.run(f.orch.ChangePage(1))

	s := f.orch.State()
	assert.Equal(t, 2, s.CurrentPage)
	assert.Empty(t, s.Characters)
	assert.Equal(t, 25, s.TotalCharacters)
	assert.Equal(t, 3, s.TotalPages)
	require.Len(t, f.presenter.errors, 1)

	f.chars.err = nil
	f.run(f.orch.SwitchTab(domain.TabPlanets))
	f.run(f.orch.SwitchTab(domain.TabCharacters))

	s = f.orch.State()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 3, s.TotalPages)

	tasks := f.orch.ChangePage(1)
	require.Len(t, tasks, 1)
	f.run(tasks)

	s = f.orch.State()
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, 13, s.Characters[0].GetID())
	assert.Equal(t, []int{1, 2, 2}, f.chars.loadPages)
}

func TestCharacterSearchAlwaysHitsRemote(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	f.run(f.orch.SetSearchTerm("char 1"))
	f.run(f.orch.PerformSearch("char 1", domain.TabCharacters))

	assert.Equal(t, []string{"char 1", "char 1"}, f.chars.searches)

	s := f.orch.State()
	assert.Equal(t, "char 1", s.SearchTerm)
	assert.Len(t, s.Characters, 11) // Char 1, Char 10..Char 19
	assert.Equal(t, 1, s.TotalPages)
	assert.Equal(t, 25, s.TotalCharacters, "catalog total is untouched")
}

func TestSearchResultsArePaged(t *testing.T) {
	f := newFixture()
	f.run(f.orch.SetSearchTerm("char"))

	s := f.orch.State()
	assert.Len(t, s.Characters, 25)
	assert.Equal(t, 3, s.TotalPages)

	f.run(f.orch.ChangePage(1))
	assert.Equal(t, 2, f.orch.State().CurrentPage)
	assert.Contains(t, f.presenter.lastContent(), "Char 13")
	assert.NotContains(t, f.presenter.lastContent(), "Char 12\n")
}

func TestCharacterSearchFailure(t *testing.T) {
	f := newFixture()
	f.chars.searchErr = errOffline

	f.run(f.orch.SetSearchTerm("goku"))

	require.Len(t, f.presenter.errors, 1)
	assert.Contains(t, f.presenter.errors[0], "search characters")
	assert.Empty(t, f.orch.State().Characters)
	assert.False(t, f.orch.State().IsLoading)
}

func TestLocalSearchFiltersLoadedPage(t *testing.T) {
	f := newFixture()
	f.run(f.orch.SwitchTab(domain.TabPlanets))

	f.run(f.orch.SetSearchTerm("NAM"))
	s := f.orch.State()
	require.Len(t, s.Planets, 1)
	assert.Equal(t, "Namek", s.Planets[0].GetName())

	// A second search runs over the page, not the previous results
	f.run(f.orch.SetSearchTerm("earth"))
	s = f.orch.State()
	require.Len(t, s.Planets, 1)
	assert.Equal(t, "Earth", s.Planets[0].GetName())

	assert.Equal(t, []int{1}, f.planets.loadPages)
}

func TestLocalSearchLoadsFirstPageWhenNothingLoaded(t *testing.T) {
	f := newFixture()
	f.store.Update(func(s *state.AppState) { s.CurrentTab = domain.TabTransformations })

	tasks := f.orch.PerformSearch("form 2", domain.TabTransformations)
	require.Len(t, tasks, 1)
	f.store.Update(func(s *state.AppState) { s.SearchTerm = "form 2" })
	f.run(tasks)

	s := f.orch.State()
	// Only page 1 (Form 1..Form 12) is searched
	require.Len(t, s.Transformations, 1)
	assert.Equal(t, "Form 2", s.Transformations[0].GetName())
	assert.Equal(t, 30, s.TotalTransformations)
	assert.True(t, f.cache.Has(cache.Key(domain.TabTransformations, 1, "")))
}

func TestClearingSearchReturnsToBrowse(t *testing.T) {
	f := newFixture()
	f.run(f.orch.SwitchTab(domain.TabPlanets))
	f.run(f.orch.SetSearchTerm("namek"))
	f.run(f.orch.SetSearchTerm(""))

	s := f.orch.State()
	assert.Len(t, s.Planets, 4)
	assert.Equal(t, 1, s.TotalPages)
	assert.Equal(t, []int{1}, f.planets.loadPages)
}

func TestSearchTermInDetailViewDefersLoad(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))
	f.run(f.orch.NavigateToDetail(domain.ItemCharacter, 1))

	tasks := f.orch.SetSearchTerm("goku")

	assert.Empty(t, tasks)
	assert.Empty(t, f.chars.searches)
	assert.Equal(t, "goku", f.orch.State().SearchTerm)
}

func TestNavigateToDetailResolvesLocally(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	tasks := f.orch.NavigateToDetail(domain.ItemCharacter, 7)

	assert.Empty(t, tasks)
	assert.Zero(t, f.chars.byIDCalls)
	assert.Equal(t, []string{"detail:Char 7"}, f.presenter.details)
	assert.Equal(t, PhaseDone, f.orch.DetailPhase())

	s := f.orch.State()
	assert.False(t, s.IsLoading)
	assert.True(t, consistent(s))
	assert.Equal(t, &state.DetailRef{Type: domain.ItemCharacter, ID: 7}, s.Detail)
}

func TestNavigateToDetailFetchesRemote(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	tasks := f.orch.NavigateToDetail(domain.ItemCharacter, 20)
	require.Len(t, tasks, 1)
	assert.Equal(t, PhaseFetchingRemote, f.orch.DetailPhase())
	assert.True(t, f.orch.State().IsLoading)

	f.run(tasks)

	assert.Equal(t, 1, f.chars.byIDCalls)
	assert.Equal(t, []string{"detail:Char 20"}, f.presenter.details)
	assert.Equal(t, PhaseDone, f.orch.DetailPhase())
	assert.False(t, f.orch.State().IsLoading)
}

func TestDetailNotFoundAndFailureDiffer(t *testing.T) {
	f := newFixture()

	f.run(f.orch.NavigateToDetail(domain.ItemPlanet, 99))
	require.Len(t, f.presenter.errors, 1)
	assert.Contains(t, f.presenter.errors[0], "not found")

	f.planets.byIDErr = errOffline
	f.run(f.orch.NavigateToDetail(domain.ItemPlanet, 2))
	require.Len(t, f.presenter.errors, 2)
	assert.Contains(t, f.presenter.errors[1], "Could not load planet details")

	assert.False(t, f.orch.State().IsLoading)
	assert.Empty(t, f.presenter.details)
}

func TestDetailResolutionDoesNotRetrigger(t *testing.T) {
	f := newFixture()

	f.run(f.orch.NavigateToDetail(domain.ItemTransformation, 3))
	f.store.Update(func(s *state.AppState) {})
	f.run(f.orch.drain())

	assert.Equal(t, 1, f.forms.byIDCalls)
	assert.Len(t, f.presenter.details, 1)
}

func TestGoBackDropsPendingDetail(t *testing.T) {
	f := newFixture()

	tasks := f.orch.NavigateToDetail(domain.ItemCharacter, 5)
	require.Len(t, tasks, 1)
	f.run(f.orch.GoBack())

	s := f.orch.State()
	assert.False(t, s.IsLoading)
	assert.True(t, consistent(s))

	f.run(tasks)
	assert.Empty(t, f.presenter.details, "completion after GoBack is ignored")
	assert.Equal(t, state.ViewHome, f.orch.State().CurrentView)
}

func TestStaleCompletionOnlyUpdatesTotals(t *testing.T) {
	f := newFixture()
	f.run(f.orch.LoadTabData(domain.TabCharacters, 1))

	page2 := f.orch.ChangePage(1)
	require.Len(t, page2, 1)
	f.store.Update(func(s *state.AppState) { s.CurrentPage = 1 })
	f.run(page2)

	s := f.orch.State()
	assert.Equal(t, 1, s.Characters[0].GetID(), "page 1 stays on screen")
	assert.True(t, f.cache.Has(cache.Key(domain.TabCharacters, 2, "")), "stale data is still cached")
}

func TestConsistencyAcrossSequence(t *testing.T) {
	f := newFixture()
	violations := 0
	f.store.Subscribe(func(s state.AppState) {
		if !consistent(s) || s.TotalPages < 1 || s.CurrentPage < 1 {
			violations++
		}
	})

	f.run(f.orch.Start())
	f.run(f.orch.ChangePage(1))
	f.run(f.orch.NavigateToDetail(domain.ItemCharacter, 13))
	f.run(f.orch.GoBack())
	f.run(f.orch.SwitchTab(domain.TabPlanets))
	f.run(f.orch.SetSearchTerm("e"))
	f.run(f.orch.NavigateToDetail(domain.ItemPlanet, 40))
	f.run(f.orch.SwitchTab(domain.TabTransformations))

	assert.Zero(t, violations)
	s := f.orch.State()
	assert.LessOrEqual(t, s.CurrentPage, s.TotalPages)
}

func TestRunnerDrivesTasksToCompletion(t *testing.T) {
	f := newFixture()
	runner := NewRunner(f.orch, time.Second)

	err := runner.Do(context.Background(), func(o *Orchestrator) []Task {
		return o.Start()
	})
	require.NoError(t, err)
	assert.Equal(t, 30, f.orch.State().TotalTransformations)

	err = runner.Do(context.Background(), func(o *Orchestrator) []Task {
		return o.NavigateToDetail(domain.ItemPlanet, 3)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"detail:Vegeta"}, f.presenter.details)
}
