package catalog

import (
	"context"
	"log/slog"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Planets loads the paginated planets catalog
type Planets struct {
	repo   domain.PlanetRepository
	logger *slog.Logger
}

// NewPlanets creates a planets loader
func NewPlanets(repo domain.PlanetRepository, opts ...Option) *Planets {
	o := buildOptions(opts)
	return &Planets{repo: repo, logger: o.logger}
}

func (l *Planets) Tab() domain.Tab { return domain.TabPlanets }

func (l *Planets) Load(ctx context.Context, page, pageSize int) (domain.Page, error) {
	planets, total, err := l.repo.GetPlanets(ctx, page, pageSize)
	if err != nil {
		l.logger.Error("failed to load planets", "page", page, "error", err)
		return domain.EmptyPage(), err
	}
	l.logger.Debug("loaded planets", "page", page, "count", len(planets), "total", total)
	return domain.Page{Items: domain.Items(planets), TotalCount: total}, nil
}

func (l *Planets) ByID(ctx context.Context, id int) (domain.Item, error) {
	planet, err := l.repo.GetPlanet(ctx, id)
	if err != nil {
		return nil, err
	}
	return planet, nil
}
