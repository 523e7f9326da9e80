package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/zenkai/internal/domain"
)

// Characters loads the paginated characters catalog
type Characters struct {
	repo   domain.CharacterRepository
	logger *slog.Logger
}

// NewCharacters creates a characters loader
func NewCharacters(repo domain.CharacterRepository, opts ...Option) *Characters {
	o := buildOptions(opts)
	return &Characters{repo: repo, logger: o.logger}
}

func (l *Characters) Tab() domain.Tab { return domain.TabCharacters }

func (l *Characters) Load(ctx context.Context, page, pageSize int) (domain.Page, error) {
	chars, total, err := l.repo.GetCharacters(ctx, page, pageSize)
	if err != nil {
		l.logger.Error("failed to load characters", "page", page, "error", err)
		return domain.EmptyPage(), err
	}
	l.logger.Debug("loaded characters", "page", page, "count", len(chars), "total", total)
	return domain.Page{Items: domain.Items(chars), TotalCount: total}, nil
}

func (l *Characters) ByID(ctx context.Context, id int) (domain.Item, error) {
	char, err := l.repo.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}
	return char, nil
}

// Search asks the server for characters matching name and orders the
// answer by closeness to the query.
func (l *Characters) Search(ctx context.Context, name string) ([]domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []domain.Item{}, nil
	}

	chars, err := l.repo.SearchCharacters(ctx, name)
	if err != nil {
		l.logger.Error("failed to search characters", "query", name, "error", err)
		return []domain.Item{}, err
	}

	ranked := rankResults(domain.Items(chars), name)
	l.logger.Debug("search complete", "query", name, "results", len(ranked))
	return ranked, nil
}
