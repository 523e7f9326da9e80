package dragonball

import "encoding/json"

// PageResponse is the paginated envelope returned by list endpoints
type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// Meta describes the page a PageResponse holds
type Meta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// Links holds navigation URLs; empty strings mean "none"
type Links struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

// Character is the API representation of a character
type Character struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Ki           string           `json:"ki"`
	MaxKi        string           `json:"maxKi"`
	Race         string           `json:"race"`
	Gender       string           `json:"gender"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
	Affiliation  string           `json:"affiliation"`
	DeletedAt    *string          `json:"deletedAt"`
	OriginPlanet *Planet          `json:"originPlanet,omitempty"`
	Forms        []Transformation `json:"transformations,omitempty"`
}

// Planet is the API representation of a planet
type Planet struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	IsDestroyed bool    `json:"isDestroyed"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	DeletedAt   *string `json:"deletedAt"`
}

// Transformation is the API representation of a transformation
type Transformation struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Ki        string  `json:"ki"`
	DeletedAt *string `json:"deletedAt"`
}

// itemsEnvelope is the object form some endpoints use instead of a raw array
type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

// decodeList accepts either a raw JSON array or an object with an items array
func decodeList[T any](body []byte) ([]T, error) {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			var list []T
			if err := json.Unmarshal(body, &list); err != nil {
				return nil, err
			}
			return list, nil
		default:
			var env itemsEnvelope[T]
			if err := json.Unmarshal(body, &env); err != nil {
				return nil, err
			}
			return env.Items, nil
		}
	}
	return nil, nil
}
