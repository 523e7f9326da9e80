package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/zenkai/internal/tui/styles"
)

// SearchBox is the single-line search input above the list
type SearchBox struct {
	focused bool
	input   textinput.Model
}

// NewSearchBox creates an unfocused, empty search box
func NewSearchBox() SearchBox {
	ti := textinput.New()
	ti.Placeholder = "press / to search"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBox{input: ti}
}

// Focus starts capturing keystrokes, keeping the current text
func (s *SearchBox) Focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

// Blur stops capturing keystrokes
func (s *SearchBox) Blur() {
	s.focused = false
	s.input.Blur()
}

// Clear empties the box without changing focus
func (s *SearchBox) Clear() {
	s.input.SetValue("")
}

// Focused reports whether keystrokes go to the box
func (s SearchBox) Focused() bool {
	return s.focused
}

// Value returns the current text
func (s SearchBox) Value() string {
	return s.input.Value()
}

// SetWidth sets the visible input width
func (s *SearchBox) SetWidth(w int) {
	s.input.Width = max(w, 10)
}

// Update handles input events, returns (box, cmd, changed). Enter and esc
// release focus; esc also clears the text.
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd, bool) {
	if !s.focused {
		return s, nil, false
	}

	before := s.input.Value()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			s.Blur()
			return s, nil, false
		case "esc":
			s.Blur()
			s.Clear()
			return s, nil, before != ""
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the prompt and input
func (s SearchBox) View() string {
	prompt := styles.DimStyle.Render("/ ")
	if s.focused {
		prompt = styles.SearchPromptStyle.Render("/ ")
	}
	return prompt + s.input.View()
}
