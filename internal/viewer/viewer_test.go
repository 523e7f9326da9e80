package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/zenkai/internal/domain"
)

type fakeChars struct {
	char *domain.Character
	err  error
}

func (f fakeChars) ByID(_ context.Context, id int) (domain.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.char, nil
}

type fakeForms struct {
	forms []*domain.Transformation
	err   error
	asked string
}

func (f *fakeForms) ForCharacter(_ context.Context, name string) ([]*domain.Transformation, error) {
	f.asked = name
	return f.forms, f.err
}

var goku = &domain.Character{ID: 1, Name: "Goku", Ki: "60.000.000", Image: "goku.png"}

func gokuForms() []*domain.Transformation {
	return []*domain.Transformation{
		{ID: 1, Name: "Goku SSJ", Ki: "3 Billion"},
		{ID: 2, Name: "Goku SSJ2", Ki: "6 Billion"},
		{ID: 3, Name: "Goku SSJ3", Ki: "24 Billion"},
	}
}

func TestLoadPrependsOriginalForm(t *testing.T) {
	forms := &fakeForms{forms: gokuForms()}

	seq, err := Load(context.Background(), fakeChars{char: goku}, forms, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, "Goku", forms.asked)
	assert.Equal(t, 4, seq.Len())
	assert.Equal(t, "Goku (Original)", seq.Current().Name)
	assert.Equal(t, "60.000.000", seq.Current().Ki)
	assert.Equal(t, "goku.png", seq.Current().Image)
}

func TestLoadCharacterFailure(t *testing.T) {
	_, err := Load(context.Background(), fakeChars{err: domain.ErrNotFound}, &fakeForms{}, 1, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadTransformationsFailureKeepsOriginal(t *testing.T) {
	seq, err := Load(context.Background(), fakeChars{char: goku}, &fakeForms{err: errors.New("offline")}, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, seq.Len())
	assert.Equal(t, "Goku (Original)", seq.Current().Name)
}

func TestStepIsBounded(t *testing.T) {
	seq := New(goku, gokuForms())

	assert.False(t, seq.Prev())
	assert.True(t, seq.Next())
	assert.True(t, seq.Next())
	assert.True(t, seq.Next())
	assert.False(t, seq.Next())
	assert.Equal(t, "Goku SSJ3", seq.Current().Name)

	assert.True(t, seq.Prev())
	assert.Equal(t, 2, seq.Index())
}

func TestAutoplayStopsAtLastFrame(t *testing.T) {
	seq := New(goku, gokuForms())

	require.True(t, seq.Toggle())
	assert.True(t, seq.Tick())
	assert.True(t, seq.Tick())
	assert.False(t, seq.Tick(), "reaching the last frame stops playback")
	assert.True(t, seq.AtEnd())
	assert.False(t, seq.Playing())
	assert.False(t, seq.Tick())
}

func TestAutoplayFromLastFrameRestarts(t *testing.T) {
	seq := New(goku, gokuForms())
	for seq.Next() {
	}

	require.True(t, seq.Toggle())
	assert.True(t, seq.AtStart())
}

func TestToggleStops(t *testing.T) {
	seq := New(goku, gokuForms())

	require.True(t, seq.Toggle())
	assert.False(t, seq.Toggle())
	assert.False(t, seq.Tick())
	assert.Equal(t, 0, seq.Index())
}

func TestSingleFrameNeverPlays(t *testing.T) {
	seq := New(goku, nil)

	assert.False(t, seq.Toggle())
	assert.True(t, seq.AtStart())
	assert.True(t, seq.AtEnd())
}
