package domain

import (
	"fmt"
	"strings"
)

// Character is a fighter from the characters catalog
type Character struct {
	ID          int    // Catalog identifier
	Name        string // Display name
	Ki          string // Base ki, as reported by the API ("60.000.000")
	MaxKi       string // Peak ki across transformations
	Race        string // "Saiyan", "Namekian", ...
	Gender      string // "Male", "Female", ...
	Description string // Biography
	Image       string // Portrait URL
	Affiliation string // "Z Fighter", "Army of Frieza", ...

	// OriginPlanet is only filled when the character is fetched by id
	OriginPlanet string
}

// Item interface implementation for Character

func (c *Character) GetID() int           { return c.ID }
func (c *Character) GetName() string      { return c.Name }
func (c *Character) GetItemType() ItemType { return ItemCharacter }

func (c *Character) GetSummary() string {
	parts := make([]string, 0, 2)
	if c.Race != "" {
		parts = append(parts, c.Race)
	}
	if c.Gender != "" {
		parts = append(parts, c.Gender)
	}
	return strings.Join(parts, " · ")
}

// Planet is a world from the planets catalog
type Planet struct {
	ID          int
	Name        string
	IsDestroyed bool
	Description string
	Image       string
}

// Status returns a human-readable planet status
func (p *Planet) Status() string {
	if p.IsDestroyed {
		return "Destroyed"
	}
	return "Intact"
}

// Item interface implementation for Planet

func (p *Planet) GetID() int            { return p.ID }
func (p *Planet) GetName() string       { return p.Name }
func (p *Planet) GetItemType() ItemType { return ItemPlanet }
func (p *Planet) GetSummary() string    { return p.Status() }

// Transformation is a form from the transformations catalog
type Transformation struct {
	ID    int
	Name  string
	Image string
	Ki    string
}

// Item interface implementation for Transformation

func (t *Transformation) GetID() int            { return t.ID }
func (t *Transformation) GetName() string       { return t.Name }
func (t *Transformation) GetItemType() ItemType { return ItemTransformation }

func (t *Transformation) GetSummary() string {
	if t.Ki == "" {
		return ""
	}
	return fmt.Sprintf("Ki %s", t.Ki)
}

// OriginalForm presents a character as the first step of its own
// transformation sequence.
func OriginalForm(c *Character) *Transformation {
	return &Transformation{
		ID:    c.ID,
		Name:  c.Name + " (Original)",
		Image: c.Image,
		Ki:    c.Ki,
	}
}
