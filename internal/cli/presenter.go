package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mmcdole/zenkai/internal/orchestrator"
	"github.com/mmcdole/zenkai/internal/render"
	"github.com/mmcdole/zenkai/internal/state"
)

// textPresenter keeps the last output of each kind for printing once all
// work has finished
type textPresenter struct {
	content    string
	detail     string
	page       int
	totalPages int
	err        string
}

func (p *textPresenter) RenderContent(content string)       { p.content = content }
func (p *textPresenter) RenderDetailContent(content string) { p.detail = content }
func (p *textPresenter) UpdateStats(int, int, int)          {}
func (p *textPresenter) ShowLoading(bool)                   {}
func (p *textPresenter) ShowError(message string)           { p.err = message }

func (p *textPresenter) UpdatePagination(page, totalPages int) {
	p.page, p.totalPages = page, totalPages
}

// session is a headless orchestrator run
type session struct {
	orch      *orchestrator.Orchestrator
	runner    *orchestrator.Runner
	presenter *textPresenter
}

func (a *app) newSession() *session {
	p := &textPresenter{}
	orch := orchestrator.New(orchestrator.Config{
		Store:     state.NewStore(state.Initial()),
		Cache:     a.cache,
		Loaders:   a.registry,
		Presenter: p,
		Renderer:  render.Plain{},
		PageSize:  a.cfg.Browse.PageSize,
		Logger:    a.logger,
	})
	return &session{
		orch:      orch,
		runner:    orchestrator.NewRunner(orch, a.cfg.API.Timeout),
		presenter: p,
	}
}

// do runs op and everything it triggers, failing on a presented error
func (s *session) do(ctx context.Context, op func(*orchestrator.Orchestrator) []orchestrator.Task) error {
	if err := s.runner.Do(ctx, op); err != nil {
		return err
	}
	if s.presenter.err != "" {
		return errors.New(s.presenter.err)
	}
	return nil
}

// goToPage moves from page 1 to page once the page count is known
func (s *session) goToPage(ctx context.Context, page int) error {
	if page == 1 {
		return nil
	}
	total := s.orch.State().TotalPages
	if page < 1 || page > total {
		return fmt.Errorf("page %d out of range (1-%d)", page, total)
	}
	return s.do(ctx, func(o *orchestrator.Orchestrator) []orchestrator.Task {
		return o.ChangePage(page - o.State().CurrentPage)
	})
}

// printList writes the rendered list followed by the page position
func (s *session) printList(w io.Writer) {
	fmt.Fprintln(w, s.presenter.content)
	if s.presenter.totalPages > 1 {
		fmt.Fprintf(w, "page %d of %d\n", s.presenter.page, s.presenter.totalPages)
	}
}
