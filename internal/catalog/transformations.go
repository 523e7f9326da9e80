package catalog

import (
	"context"
	"log/slog"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Transformations loads the transformations catalog. The API returns the
// whole catalog in one array, so pages are cut out locally.
type Transformations struct {
	repo   domain.TransformationRepository
	logger *slog.Logger
}

// NewTransformations creates a transformations loader
func NewTransformations(repo domain.TransformationRepository, opts ...Option) *Transformations {
	o := buildOptions(opts)
	return &Transformations{repo: repo, logger: o.logger}
}

func (l *Transformations) Tab() domain.Tab { return domain.TabTransformations }

func (l *Transformations) Load(ctx context.Context, page, pageSize int) (domain.Page, error) {
	all, err := l.repo.GetAllTransformations(ctx)
	if err != nil {
		l.logger.Error("failed to load transformations", "page", page, "error", err)
		return domain.EmptyPage(), err
	}

	start, end := pageBounds(len(all), page, pageSize)
	l.logger.Debug("loaded transformations", "page", page, "count", end-start, "total", len(all))
	return domain.Page{Items: domain.Items(all[start:end]), TotalCount: len(all)}, nil
}

func (l *Transformations) ByID(ctx context.Context, id int) (domain.Item, error) {
	form, err := l.repo.GetTransformation(ctx, id)
	if err != nil {
		return nil, err
	}
	return form, nil
}

// ForCharacter returns every transformation whose name contains the
// character's name, ignoring case, in catalog order.
func (l *Transformations) ForCharacter(ctx context.Context, name string) ([]*domain.Transformation, error) {
	all, err := l.repo.GetAllTransformations(ctx)
	if err != nil {
		l.logger.Error("failed to load transformations", "character", name, "error", err)
		return nil, err
	}

	needle := fold(name)
	forms := make([]*domain.Transformation, 0)
	for _, t := range all {
		if containsFolded(t.Name, needle) {
			forms = append(forms, t)
		}
	}
	return forms, nil
}
