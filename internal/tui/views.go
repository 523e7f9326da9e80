package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/state"
	"github.com/mmcdole/zenkai/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	s := m.orch.State()
	sections := []string{
		m.renderHeader(s),
		m.renderStats(),
	}

	switch {
	case m.ShowHelp:
		sections = append(sections, styles.BodyStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	case m.viewer.IsOpen():
		sections = append(sections, styles.BodyStyle.Render(m.viewer.View()))
	case s.InDetail():
		sections = append(sections, styles.BodyStyle.Render(m.renderDetail()))
	default:
		sections = append(sections, m.search.View(), styles.BodyStyle.Render(m.renderList()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := m.renderFooter(s)

	if gap := m.Height - lipgloss.Height(body) - lipgloss.Height(footer); gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(body + "\n" + footer)
}

// renderHeader draws the title and the catalog tabs
func (m Model) renderHeader(s state.AppState) string {
	parts := []string{styles.AccentStyle.Bold(true).Render("ZENKAI") + "  "}
	for i, tab := range domain.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		if tab == s.CurrentTab {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderStats draws the catalog totals
func (m Model) renderStats() string {
	return styles.DimStyle.Render(fmt.Sprintf("%d characters · %d planets · %d transformations",
		m.screen.characters, m.screen.planets, m.screen.forms))
}

// renderList draws the rendered rows with a cursor on the selected one
func (m Model) renderList() string {
	if m.screen.content == "" {
		if m.screen.loading {
			return m.spinner.View() + styles.DimStyle.Render(" Powering up...")
		}
		return ""
	}

	lines := strings.Split(m.screen.content, "\n")
	if len(lines) != len(m.orch.VisibleItems()) {
		return m.screen.content
	}
	for i, line := range lines {
		if i == m.cursor {
			lines[i] = styles.CursorStyle.Render("▸ ") + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// renderDetail draws the resolved record, or a placeholder while resolving
func (m Model) renderDetail() string {
	switch {
	case m.screen.detail != "":
		return styles.DetailStyle.Render(m.screen.detail)
	case m.screen.loading:
		return m.spinner.View() + styles.DimStyle.Render(" Sensing ki...")
	default:
		return styles.DimStyle.Render("Nothing to show")
	}
}

// renderFooter draws pagination, status and key help
func (m Model) renderFooter(s state.AppState) string {
	status := styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", m.screen.page, m.screen.totalPages))
	if s.SearchTerm != "" {
		status += styles.DimStyle.Render(fmt.Sprintf("  matching %q", s.SearchTerm))
	}
	if m.screen.loading {
		status += "  " + m.spinner.View()
	}
	if m.screen.err != "" {
		status += "  " + styles.ErrorStyle.Render(m.screen.err)
	}

	var bindings []key.Binding
	switch {
	case m.search.Focused():
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case m.viewer.IsOpen():
		bindings = m.viewer.Keys().ShortHelp()
	case s.InDetail():
		bindings = m.keys.DetailHelp()
	default:
		bindings = m.keys.HomeHelp()
	}

	return status + "\n" + m.help.ShortHelpView(bindings)
}
