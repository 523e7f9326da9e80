package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/tui/styles"
)

// Styled renders terminal output with lipgloss styles. List emits exactly one
// line per item so callers can decorate rows by index.
type Styled struct {
	Width int // row width in cells, 0 for unbounded
}

// List renders id, name and summary columns, highlighting characters of the
// name that match the search term
func (r Styled) List(tab domain.Tab, items []domain.Item, highlight string) string {
	if len(items) == 0 {
		return styles.DimStyle.Render(EmptyMessage(tab, highlight))
	}

	nameWidth := 28
	if r.Width > 0 {
		nameWidth = min(nameWidth, max(r.Width/2, 8))
	}

	rows := make([]string, len(items))
	for i, item := range items {
		name := styles.Truncate(item.GetName(), nameWidth)
		row := styles.IDStyle.Render(strconv.Itoa(item.GetID())) + "  " +
			styles.Pad(highlightMatches(name, highlight), nameWidth)
		if summary := item.GetSummary(); summary != "" {
			row += "  " + styles.DimStyle.Render(summary)
		}
		if r.Width > 0 && lipgloss.Width(row) > r.Width {
			row = lipgloss.NewStyle().MaxWidth(r.Width).Render(row)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// Detail renders the name as a title followed by labeled fields
func (r Styled) Detail(item domain.Item) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(item.GetName()))
	b.WriteString("  " + styles.BadgeStyle.Render(string(item.GetItemType())))
	b.WriteString("\n")

	labelWidth := 0
	fields := Fields(item)
	for _, f := range fields {
		labelWidth = max(labelWidth, len(f.Label))
	}

	valueStyle := lipgloss.NewStyle().Foreground(styles.White)
	if r.Width > labelWidth+4 {
		valueStyle = valueStyle.Width(r.Width - labelWidth - 4)
	}
	for _, f := range fields {
		label := styles.LabelStyle.Render(styles.Pad(f.Label, labelWidth))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", valueStyle.Render(f.Value)))
	}
	return b.String()
}

// highlightMatches styles the characters of text matched by term
func highlightMatches(text, term string) string {
	if term == "" {
		return styles.NormalItemStyle.Render(text)
	}
	matches := fuzzy.Find(strings.ToLower(term), []string{strings.ToLower(text)})
	if len(matches) == 0 || len(strings.ToLower(text)) != len(text) {
		return styles.NormalItemStyle.Render(text)
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if matched[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(string(r)))
		}
	}
	return b.String()
}
