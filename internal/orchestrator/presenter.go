package orchestrator

import "github.com/mmcdole/zenkai/internal/domain"

// Presenter is the display surface the orchestrator drives.
type Presenter interface {
	RenderContent(content string)
	RenderDetailContent(content string)
	UpdatePagination(page, totalPages int)
	UpdateStats(characters, planets, transformations int)
	ShowLoading(loading bool)
	ShowError(message string)
}

// Renderer turns records into display strings.
type Renderer interface {
	// List renders one line per item; highlight is the active search term
	List(tab domain.Tab, items []domain.Item, highlight string) string

	// Detail renders a single record
	Detail(item domain.Item) string
}
