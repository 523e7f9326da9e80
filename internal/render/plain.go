package render

import (
	"fmt"
	"strings"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Plain renders undecorated text for pipes and scripts
type Plain struct{}

// List renders one line per item: id, name and summary separated by tabs
func (Plain) List(tab domain.Tab, items []domain.Item, highlight string) string {
	if len(items) == 0 {
		return EmptyMessage(tab, highlight)
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\t%s", item.GetID(), item.GetName())
		if summary := item.GetSummary(); summary != "" {
			b.WriteString("\t" + summary)
		}
	}
	return b.String()
}

// Detail renders the name followed by one "Label: value" line per field
func (Plain) Detail(item domain.Item) string {
	var b strings.Builder
	b.WriteString(item.GetName())
	for _, f := range Fields(item) {
		fmt.Fprintf(&b, "\n%s: %s", f.Label, f.Value)
	}
	return b.String()
}
