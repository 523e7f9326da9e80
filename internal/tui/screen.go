package tui

import "github.com/mmcdole/zenkai/internal/orchestrator"

var _ orchestrator.Presenter = (*Screen)(nil)

// Screen collects what the orchestrator presents. The Model reads it when
// rendering; both run on the bubbletea event loop.
type Screen struct {
	content    string
	detail     string
	page       int
	totalPages int
	characters int
	planets    int
	forms      int
	loading    bool
	err        string
	errGen     int
}

// NewScreen creates an empty screen on page 1 of 1
func NewScreen() *Screen {
	return &Screen{page: 1, totalPages: 1}
}

func (s *Screen) RenderContent(content string) {
	s.content = content
}

func (s *Screen) RenderDetailContent(content string) {
	s.detail = content
}

func (s *Screen) UpdatePagination(page, totalPages int) {
	s.page, s.totalPages = page, totalPages
}

func (s *Screen) UpdateStats(characters, planets, transformations int) {
	s.characters, s.planets, s.forms = characters, planets, transformations
}

func (s *Screen) ShowLoading(loading bool) {
	s.loading = loading
}

func (s *Screen) ShowError(message string) {
	s.err = message
	s.errGen++
}

func (s *Screen) clearError(gen int) {
	if gen == s.errGen {
		s.err = ""
	}
}
