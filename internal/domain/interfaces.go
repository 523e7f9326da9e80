package domain

// Item is the polymorphic interface for catalog records.
// Characters, planets and transformations implement it directly so lists,
// caches and renderers can treat them uniformly.
type Item interface {
	// GetID returns the catalog identifier
	GetID() int

	// GetName returns the display name
	GetName() string

	// GetItemType returns the detail type used to resolve this record by id
	GetItemType() ItemType

	// GetSummary returns secondary info for list rows ("Saiyan · Male")
	GetSummary() string
}

// Page is one normalized page of a catalog.
type Page struct {
	Items      []Item
	TotalCount int
}

// EmptyPage is what loaders return when the remote call fails.
func EmptyPage() Page {
	return Page{Items: []Item{}}
}

// FindByID returns the item with the given id, or nil.
func FindByID(items []Item, id int) Item {
	for _, item := range items {
		if item != nil && item.GetID() == id {
			return item
		}
	}
	return nil
}

// Items converts a typed slice to a slice of Item.
func Items[T Item](typed []T) []Item {
	out := make([]Item, len(typed))
	for i, t := range typed {
		out[i] = t
	}
	return out
}

// Typed converts a slice of Item back to a typed slice, dropping entries of
// any other type.
func Typed[T Item](items []Item) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if t, ok := item.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
