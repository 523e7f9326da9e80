package dragonball

import "github.com/mmcdole/zenkai/internal/domain"

// MapCharacters converts API characters to domain characters
func MapCharacters(items []Character) []*domain.Character {
	out := make([]*domain.Character, 0, len(items))
	for _, item := range items {
		out = append(out, mapCharacter(item))
	}
	return out
}

func mapCharacter(c Character) *domain.Character {
	char := &domain.Character{
		ID:          c.ID,
		Name:        c.Name,
		Ki:          c.Ki,
		MaxKi:       c.MaxKi,
		Race:        c.Race,
		Gender:      c.Gender,
		Description: c.Description,
		Image:       c.Image,
		Affiliation: c.Affiliation,
	}
	if c.OriginPlanet != nil {
		char.OriginPlanet = c.OriginPlanet.Name
	}
	return char
}

// MapPlanets converts API planets to domain planets
func MapPlanets(items []Planet) []*domain.Planet {
	out := make([]*domain.Planet, 0, len(items))
	for _, item := range items {
		out = append(out, mapPlanet(item))
	}
	return out
}

func mapPlanet(p Planet) *domain.Planet {
	return &domain.Planet{
		ID:          p.ID,
		Name:        p.Name,
		IsDestroyed: p.IsDestroyed,
		Description: p.Description,
		Image:       p.Image,
	}
}

// MapTransformations converts API transformations to domain transformations
func MapTransformations(items []Transformation) []*domain.Transformation {
	out := make([]*domain.Transformation, 0, len(items))
	for _, item := range items {
		out = append(out, mapTransformation(item))
	}
	return out
}

func mapTransformation(t Transformation) *domain.Transformation {
	return &domain.Transformation{
		ID:    t.ID,
		Name:  t.Name,
		Image: t.Image,
		Ki:    t.Ki,
	}
}
