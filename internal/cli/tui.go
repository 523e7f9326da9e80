package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/orchestrator"
	"github.com/mmcdole/zenkai/internal/render"
	"github.com/mmcdole/zenkai/internal/state"
	"github.com/mmcdole/zenkai/internal/tui"
	"github.com/mmcdole/zenkai/internal/viewer"
)

// runTUI starts the interactive browser and blocks until it exits
func (a *app) runTUI(ctx context.Context, version string) error {
	a.logger.Info("starting zenkai", "version", version)

	screen := tui.NewScreen()
	orch := orchestrator.New(orchestrator.Config{
		Store:     state.NewStore(state.Initial()),
		Cache:     a.cache,
		Loaders:   a.registry,
		Presenter: screen,
		Renderer:  render.Styled{},
		PageSize:  a.cfg.Browse.PageSize,
		Logger:    a.logger,
	})

	forms, _ := a.registry.For(domain.TabTransformations).(viewer.FormSource)
	model := tui.NewModel(tui.Config{
		Orchestrator:   orch,
		Screen:         screen,
		Characters:     a.registry.For(domain.TabCharacters),
		Forms:          forms,
		SearchDebounce: a.cfg.Browse.SearchDebounce,
		RequestTimeout: a.cfg.API.Timeout,
		ViewerInterval: a.cfg.Viewer.Interval,
		Logger:         a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
