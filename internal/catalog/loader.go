package catalog

import (
	"context"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Loader fetches one catalog and normalizes every response shape into a
// domain.Page. On failure Load returns an empty page alongside the error, so
// callers can treat data the same way whether or not the fetch worked.
type Loader interface {
	Tab() domain.Tab
	Load(ctx context.Context, page, pageSize int) (domain.Page, error)

	// ByID returns domain.ErrNotFound when the record does not exist
	ByID(ctx context.Context, id int) (domain.Item, error)
}

// Searcher is implemented by loaders backed by a server-side search endpoint
type Searcher interface {
	Search(ctx context.Context, name string) ([]domain.Item, error)
}

// Registry holds the loader for each catalog
type Registry struct {
	loaders map[domain.Tab]Loader
}

// NewRegistry indexes loaders by the catalog they serve
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{loaders: make(map[domain.Tab]Loader, len(loaders))}
	for _, l := range loaders {
		r.loaders[l.Tab()] = l
	}
	return r
}

// For returns the loader for tab, or nil
func (r *Registry) For(tab domain.Tab) Loader {
	return r.loaders[tab]
}

// ForItemType returns the loader that resolves records of type t
func (r *Registry) ForItemType(t domain.ItemType) Loader {
	return r.loaders[t.Tab()]
}

// Client is everything the catalog loaders need from the API
type Client interface {
	domain.CharacterRepository
	domain.PlanetRepository
	domain.TransformationRepository
}

// NewDefaultRegistry wires the three loaders onto one API client
func NewDefaultRegistry(client Client, opts ...Option) *Registry {
	return NewRegistry(
		NewCharacters(client, opts...),
		NewPlanets(client, opts...),
		NewTransformations(client, opts...),
	)
}

// pageBounds returns the [start, end) slice bounds of page within n items
func pageBounds(n, page, pageSize int) (int, int) {
	if page < 1 || pageSize < 1 {
		return 0, 0
	}
	start := (page - 1) * pageSize
	if start >= n {
		return n, n
	}
	return start, min(start+pageSize, n)
}
