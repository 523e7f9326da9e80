package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/zenkai/internal/orchestrator"
	"github.com/mmcdole/zenkai/internal/viewer"
)

// errorDisplayDuration is how long an error stays in the status line
const errorDisplayDuration = 5 * time.Second

// runTasks turns orchestrator tasks into commands. Their results come back
// to Update as orchestrator.Msg.
func (m Model) runTasks(tasks []orchestrator.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(tasks))
	for i, task := range tasks {
		cmds[i] = taskCmd(task, m.timeout)
	}
	return tea.Batch(cmds...)
}

func taskCmd(task orchestrator.Task, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return task(ctx)
	}
}

// debounceSearchCmd reports term after the debounce interval. Only the
// latest seq is acted on.
func debounceSearchCmd(seq int, term string, wait time.Duration) tea.Cmd {
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq, term: term}
	})
}

// loadViewerCmd fetches a character and its transformations
func (m Model) loadViewerCmd(id int) tea.Cmd {
	chars, forms, timeout, logger := m.chars, m.forms, m.timeout, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		seq, err := viewer.Load(ctx, chars, forms, id, logger)
		if err != nil {
			return ErrMsg{Err: err, Context: "Could not open transformations"}
		}
		return viewerLoadedMsg{seq: seq}
	}
}

// clearErrorCmd hides the error identified by gen after a delay
func clearErrorCmd(gen int) tea.Cmd {
	return tea.Tick(errorDisplayDuration, func(time.Time) tea.Msg {
		return clearErrorMsg{gen: gen}
	})
}
