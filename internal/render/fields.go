// Package render turns catalog records into display text.
package render

import (
	"strconv"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Field is one labeled value of a detail view
type Field struct {
	Label string
	Value string
}

// Fields returns the detail fields shown for item, skipping empty values.
// The description, when present, is always last.
func Fields(item domain.Item) []Field {
	var fields []Field
	add := func(label, value string) {
		if value != "" {
			fields = append(fields, Field{Label: label, Value: value})
		}
	}

	add("ID", strconv.Itoa(item.GetID()))
	switch v := item.(type) {
	case *domain.Character:
		add("Race", v.Race)
		add("Gender", v.Gender)
		add("Ki", v.Ki)
		add("Max Ki", v.MaxKi)
		add("Affiliation", v.Affiliation)
		add("Origin planet", v.OriginPlanet)
		add("Description", v.Description)
	case *domain.Planet:
		add("Status", v.Status())
		add("Description", v.Description)
	case *domain.Transformation:
		add("Ki", v.Ki)
	}
	return fields
}

// EmptyMessage is shown for a list with no records
func EmptyMessage(tab domain.Tab, search string) string {
	if search != "" {
		return "No " + string(tab) + " match \"" + search + "\""
	}
	return "No " + string(tab) + " found"
}
