// Package tui is the interactive terminal front end. The bubbletea event
// loop is the only goroutine that touches the orchestrator.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/orchestrator"
	"github.com/mmcdole/zenkai/internal/tui/components"
	"github.com/mmcdole/zenkai/internal/tui/styles"
	"github.com/mmcdole/zenkai/internal/viewer"
)

// Config holds the Model's collaborators and timings
type Config struct {
	Orchestrator   *orchestrator.Orchestrator
	Screen         *Screen
	Characters     viewer.CharacterSource
	Forms          viewer.FormSource
	SearchDebounce time.Duration
	RequestTimeout time.Duration
	ViewerInterval time.Duration
	Logger         *slog.Logger
}

// Model is the main application model
type Model struct {
	Width    int
	Height   int
	Ready    bool
	ShowHelp bool

	orch   *orchestrator.Orchestrator
	screen *Screen
	chars  viewer.CharacterSource
	forms  viewer.FormSource
	logger *slog.Logger

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	search  components.SearchBox
	viewer  components.ViewerPanel
	cursor  int

	debounce  time.Duration
	timeout   time.Duration
	searchSeq int    // bumped on every edit; only the latest settle counts
	lastTerm  string // last settled term handed to the orchestrator
	errSeen   int    // screen error generation already scheduled for clearing
}

// NewModel creates the application model
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		orch:     cfg.Orchestrator,
		screen:   cfg.Screen,
		chars:    cfg.Characters,
		forms:    cfg.Forms,
		logger:   cfg.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		spinner:  sp,
		search:   components.NewSearchBox(),
		viewer:   components.NewViewerPanel(cfg.ViewerInterval),
		debounce: cfg.SearchDebounce,
		timeout:  cfg.RequestTimeout,
	}
}

// Init loads the first page and the catalog totals
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.runTasks(m.orch.Start()),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.help.Width = msg.Width
		m.search.SetWidth(msg.Width / 3)
		m.viewer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case orchestrator.Msg:
		cmd := m.apply(m.orch.Handle(msg))
		m.clampCursor()
		return m, cmd

	case searchSettledMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		term := strings.TrimSpace(msg.term)
		if term == m.lastTerm {
			return m, nil
		}
		m.lastTerm = term
		m.cursor = 0
		cmd := m.apply(m.orch.SetSearchTerm(term))
		return m, cmd

	case viewerLoadedMsg:
		s := m.orch.State()
		if !s.InDetail() || s.Detail.Type != domain.ItemCharacter || s.Detail.ID != msg.seq.Character.ID {
			return m, nil
		}
		m.viewer.Open(msg.seq)
		return m, nil

	case components.ViewerTickMsg:
		var cmd tea.Cmd
		m.viewer, cmd, _ = m.viewer.Update(msg)
		return m, cmd

	case ErrMsg:
		m.logger.Warn("command failed", "context", msg.Context, "error", msg.Err)
		m.screen.ShowError(msg.Error())
		cmd := m.apply(nil)
		return m, cmd

	case clearErrorMsg:
		m.screen.clearError(msg.gen)
		return m, nil
	}

	return m, nil
}

// apply runs orchestrator tasks and schedules clearing of any new error
func (m *Model) apply(tasks []orchestrator.Task) tea.Cmd {
	cmds := []tea.Cmd{m.runTasks(tasks)}
	if m.screen.errGen != m.errSeen {
		m.errSeen = m.screen.errGen
		cmds = append(cmds, clearErrorCmd(m.errSeen))
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg routes keys to the focused element
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		var changed bool
		m.search, cmd, changed = m.search.Update(msg)
		if changed {
			m.searchSeq++
			cmd = tea.Batch(cmd, debounceSearchCmd(m.searchSeq, m.search.Value(), m.debounce))
		}
		return m, cmd
	}

	if m.viewer.IsOpen() {
		var cmd tea.Cmd
		m.viewer, cmd, _ = m.viewer.Update(msg)
		return m, cmd
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		return m.switchTab(domain.TabCharacters)
	case key.Matches(msg, m.keys.Tab2):
		return m.switchTab(domain.TabPlanets)
	case key.Matches(msg, m.keys.Tab3):
		return m.switchTab(domain.TabTransformations)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.relativeTab(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.relativeTab(-1))
	}

	if m.orch.State().InDetail() {
		return m.handleDetailKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.orch.VisibleItems())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		items := m.orch.VisibleItems()
		if m.cursor >= len(items) {
			return m, nil
		}
		item := items[m.cursor]
		m.screen.detail = ""
		cmd := m.apply(m.orch.NavigateToDetail(item.GetItemType(), item.GetID()))
		return m, cmd
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor = 0
		cmd := m.apply(m.orch.ChangePage(-1))
		return m, cmd
	case key.Matches(msg, m.keys.NextPage):
		m.cursor = 0
		cmd := m.apply(m.orch.ChangePage(1))
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		if m.lastTerm == "" {
			return m, nil
		}
		m.resetSearch()
		m.cursor = 0
		cmd := m.apply(m.orch.SetSearchTerm(""))
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		cmd := m.apply(m.orch.GoBack())
		m.clampCursor()
		return m, cmd
	case key.Matches(msg, m.keys.Viewer):
		ref := m.orch.State().Detail
		if ref.Type != domain.ItemCharacter || m.chars == nil || m.forms == nil {
			return m, nil
		}
		return m, m.loadViewerCmd(ref.ID)
	}
	return m, nil
}

// switchTab shows tab in browse mode, dropping any search
func (m Model) switchTab(tab domain.Tab) (tea.Model, tea.Cmd) {
	s := m.orch.State()
	if s.CurrentTab == tab && !s.InDetail() {
		if s.SearchTerm == "" {
			return m, nil
		}
		m.resetSearch()
		m.cursor = 0
		cmd := m.apply(m.orch.SetSearchTerm(""))
		return m, cmd
	}
	m.resetSearch()
	m.cursor = 0
	cmd := m.apply(m.orch.SwitchTab(tab))
	return m, cmd
}

// resetSearch empties the search box and cancels a pending settle
func (m *Model) resetSearch() {
	m.search.Clear()
	m.lastTerm = ""
	m.searchSeq++
}

func (m Model) relativeTab(step int) domain.Tab {
	current := m.orch.State().CurrentTab
	for i, tab := range domain.Tabs {
		if tab == current {
			n := len(domain.Tabs)
			return domain.Tabs[((i+step)%n+n)%n]
		}
	}
	return domain.TabCharacters
}

// clampCursor keeps the cursor on a visible row
func (m *Model) clampCursor() {
	n := len(m.orch.VisibleItems())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}
