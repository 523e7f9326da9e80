package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/zenkai/internal/domain"
)

var errBoom = errors.New("boom")

type fakeClient struct {
	characters      []*domain.Character
	planets         []*domain.Planet
	transformations []*domain.Transformation
	searchResults   []*domain.Character
	err             error
}

func (f *fakeClient) GetCharacters(_ context.Context, page, limit int) ([]*domain.Character, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	start, end := pageBounds(len(f.characters), page, limit)
	return f.characters[start:end], len(f.characters), nil
}

func (f *fakeClient) GetCharacter(_ context.Context, id int) (*domain.Character, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.characters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClient) SearchCharacters(_ context.Context, _ string) ([]*domain.Character, error) {
	return f.searchResults, f.err
}

func (f *fakeClient) GetPlanets(_ context.Context, page, limit int) ([]*domain.Planet, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	start, end := pageBounds(len(f.planets), page, limit)
	return f.planets[start:end], len(f.planets), nil
}

func (f *fakeClient) GetPlanet(_ context.Context, id int) (*domain.Planet, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.planets {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClient) GetAllTransformations(_ context.Context) ([]*domain.Transformation, error) {
	return f.transformations, f.err
}

func (f *fakeClient) GetTransformation(_ context.Context, id int) (*domain.Transformation, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.transformations {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func manyTransformations(n int) []*domain.Transformation {
	out := make([]*domain.Transformation, n)
	for i := range out {
		out[i] = &domain.Transformation{ID: i + 1, Name: fmt.Sprintf("Form %d", i+1)}
	}
	return out
}

func TestCharactersLoad(t *testing.T) {
	client := &fakeClient{characters: []*domain.Character{{ID: 1, Name: "Goku"}, {ID: 2, Name: "Vegeta"}}}
	loader := NewCharacters(client)

	page, err := loader.Load(context.Background(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Vegeta", page.Items[1].GetName())
}

func TestLoadFailureReturnsEmptyPage(t *testing.T) {
	client := &fakeClient{err: errBoom}

	for _, loader := range []Loader{NewCharacters(client), NewPlanets(client), NewTransformations(client)} {
		t.Run(string(loader.Tab()), func(t *testing.T) {
			page, err := loader.Load(context.Background(), 1, 12)
			assert.ErrorIs(t, err, errBoom)
			assert.NotNil(t, page.Items)
			assert.Empty(t, page.Items)
			assert.Zero(t, page.TotalCount)
		})
	}
}

func TestTransformationsSlicesPages(t *testing.T) {
	loader := NewTransformations(&fakeClient{transformations: manyTransformations(25)})

	tests := []struct {
		page      int
		wantCount int
		wantFirst int
	}{
		{1, 12, 1},
		{2, 12, 13},
		{3, 1, 25},
		{4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := loader.Load(context.Background(), tt.page, 12)
			require.NoError(t, err)
			assert.Equal(t, 25, page.TotalCount)
			require.Len(t, page.Items, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantFirst, page.Items[0].GetID())
			}
		})
	}
}

func TestByIDNotFound(t *testing.T) {
	loader := NewPlanets(&fakeClient{planets: []*domain.Planet{{ID: 1, Name: "Namek"}}})

	item, err := loader.ByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Namek", item.GetName())

	item, err = loader.ByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, item)
}

func TestCharacterSearchRanksCloserNamesFirst(t *testing.T) {
	client := &fakeClient{searchResults: []*domain.Character{
		{ID: 30, Name: "Goku Black"},
		{ID: 5, Name: "Kid Goku"},
		{ID: 1, Name: "Goku"},
	}}
	loader := NewCharacters(client)

	results, err := loader.Search(context.Background(), "goku")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Goku", results[0].GetName())
	assert.Equal(t, "Goku Black", results[1].GetName())
	assert.Equal(t, "Kid Goku", results[2].GetName())
}

func TestCharacterSearchFailure(t *testing.T) {
	loader := NewCharacters(&fakeClient{err: errBoom})

	results, err := loader.Search(context.Background(), "goku")
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, results)
}

func TestForCharacter(t *testing.T) {
	loader := NewTransformations(&fakeClient{transformations: []*domain.Transformation{
		{ID: 1, Name: "Goku SSJ"},
		{ID: 2, Name: "Vegeta SSJ"},
		{ID: 3, Name: "GOKU Ultra Instinct"},
	}})

	forms, err := loader.ForCharacter(context.Background(), "Goku")
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, 1, forms[0].ID)
	assert.Equal(t, 3, forms[1].ID)
}

func TestFilter(t *testing.T) {
	items := []domain.Item{
		&domain.Planet{ID: 1, Name: "Namek", Description: "Home of the Namekians"},
		&domain.Planet{ID: 2, Name: "Earth", Description: "Where Goku grew up"},
		&domain.Transformation{ID: 3, Name: "Goku SSJ"},
	}

	assert.Len(t, Filter(items, ""), 3)
	assert.Equal(t, []domain.Item{items[0]}, Filter(items, "NAMEK"))
	assert.Equal(t, []domain.Item{items[1], items[2]}, Filter(items, "goku"), "planet description matches")
	assert.Empty(t, Filter(items, "frieza"))
}

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry(&fakeClient{})

	assert.Equal(t, domain.TabPlanets, reg.For(domain.TabPlanets).Tab())
	assert.Equal(t, domain.TabTransformations, reg.ForItemType(domain.ItemTransformation).Tab())
	_, ok := reg.For(domain.TabCharacters).(Searcher)
	assert.True(t, ok)
}
