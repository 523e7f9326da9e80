package domain

import "context"

// CharacterRepository provides access to the characters catalog
type CharacterRepository interface {
	GetCharacters(ctx context.Context, page, limit int) ([]*Character, int, error)
	GetCharacter(ctx context.Context, id int) (*Character, error)

	// SearchCharacters matches by name on the server
	SearchCharacters(ctx context.Context, name string) ([]*Character, error)
}

// PlanetRepository provides access to the planets catalog
type PlanetRepository interface {
	GetPlanets(ctx context.Context, page, limit int) ([]*Planet, int, error)
	GetPlanet(ctx context.Context, id int) (*Planet, error)
}

// TransformationRepository provides access to the transformations catalog.
// The listing endpoint is not paginated.
type TransformationRepository interface {
	GetAllTransformations(ctx context.Context) ([]*Transformation, error)
	GetTransformation(ctx context.Context, id int) (*Transformation, error)
}
