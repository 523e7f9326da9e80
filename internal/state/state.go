// Package state holds the single application state container.
package state

import (
	"github.com/mmcdole/zenkai/internal/domain"
)

// View is the screen being shown
type View string

const (
	ViewHome   View = "home"
	ViewDetail View = "detail"
)

// DetailRef identifies the record shown by the detail view
type DetailRef struct {
	Type domain.ItemType
	ID   int
}

// AppState is an immutable snapshot of the application state. Slices in a
// snapshot are shared with later snapshots and must not be modified in
// place; updates replace them.
type AppState struct {
	CurrentTab  domain.Tab
	CurrentPage int
	SearchTerm  string // empty = browse mode
	IsLoading   bool

	Characters      []domain.Item
	Planets         []domain.Item
	Transformations []domain.Item

	TotalCharacters      int
	TotalPlanets         int
	TotalTransformations int

	TotalPages  int
	CurrentView View
	Detail      *DetailRef // set iff CurrentView == ViewDetail
}

// Initial returns the state the application starts in
func Initial() AppState {
	return AppState{
		CurrentTab:      domain.TabCharacters,
		CurrentPage:     1,
		TotalPages:      1,
		CurrentView:     ViewHome,
		Characters:      []domain.Item{},
		Planets:         []domain.Item{},
		Transformations: []domain.Item{},
	}
}

// Items returns the list held for tab
func (s AppState) Items(tab domain.Tab) []domain.Item {
	switch tab {
	case domain.TabPlanets:
		return s.Planets
	case domain.TabTransformations:
		return s.Transformations
	default:
		return s.Characters
	}
}

// SetItems replaces the list held for tab
func (s *AppState) SetItems(tab domain.Tab, items []domain.Item) {
	switch tab {
	case domain.TabPlanets:
		s.Planets = items
	case domain.TabTransformations:
		s.Transformations = items
	default:
		s.Characters = items
	}
}

// Total returns the catalog size recorded for tab
func (s AppState) Total(tab domain.Tab) int {
	switch tab {
	case domain.TabPlanets:
		return s.TotalPlanets
	case domain.TabTransformations:
		return s.TotalTransformations
	default:
		return s.TotalCharacters
	}
}

// SetTotal records the catalog size for tab
func (s *AppState) SetTotal(tab domain.Tab, total int) {
	switch tab {
	case domain.TabPlanets:
		s.TotalPlanets = total
	case domain.TabTransformations:
		s.TotalTransformations = total
	default:
		s.TotalCharacters = total
	}
}

// CurrentItems returns the list for the active tab
func (s AppState) CurrentItems() []domain.Item {
	return s.Items(s.CurrentTab)
}

// InDetail reports whether the detail view is showing a record
func (s AppState) InDetail() bool {
	return s.CurrentView == ViewDetail && s.Detail != nil
}

// TotalPages returns the page count for total items, never less than one
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
