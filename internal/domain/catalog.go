package domain

import "fmt"

// Tab identifies one of the three catalogs
type Tab string

const (
	TabCharacters      Tab = "characters"
	TabPlanets         Tab = "planets"
	TabTransformations Tab = "transformations"
)

// Tabs lists the catalogs in display order
var Tabs = []Tab{TabCharacters, TabPlanets, TabTransformations}

// Title returns the tab label
func (t Tab) Title() string {
	switch t {
	case TabCharacters:
		return "Characters"
	case TabPlanets:
		return "Planets"
	case TabTransformations:
		return "Transformations"
	default:
		return string(t)
	}
}

// ItemType returns the detail type for records of this catalog
func (t Tab) ItemType() ItemType {
	switch t {
	case TabPlanets:
		return ItemPlanet
	case TabTransformations:
		return ItemTransformation
	default:
		return ItemCharacter
	}
}

// ParseTab parses a catalog name
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown catalog %q (want characters, planets or transformations)", s)
}

// ItemType identifies the kind of record a detail view shows
type ItemType string

const (
	ItemCharacter      ItemType = "character"
	ItemPlanet         ItemType = "planet"
	ItemTransformation ItemType = "transformation"
)

// Tab returns the catalog holding records of this type
func (t ItemType) Tab() Tab {
	switch t {
	case ItemPlanet:
		return TabPlanets
	case ItemTransformation:
		return TabTransformations
	default:
		return TabCharacters
	}
}

// ParseItemType parses a detail type name
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemCharacter, ItemPlanet, ItemTransformation:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("unknown item type %q (want character, planet or transformation)", s)
}
