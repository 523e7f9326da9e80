// Package viewer steps through a character's transformation sequence.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/zenkai/internal/domain"
)

// CharacterSource resolves a character by id
type CharacterSource interface {
	ByID(ctx context.Context, id int) (domain.Item, error)
}

// FormSource lists the transformations belonging to a character
type FormSource interface {
	ForCharacter(ctx context.Context, name string) ([]*domain.Transformation, error)
}

// Sequence is a character's original form followed by its transformations.
// It is not safe for concurrent use.
type Sequence struct {
	Character *domain.Character
	frames    []*domain.Transformation
	index     int
	playing   bool
}

// Load builds the sequence for a character. A character that cannot be
// fetched is an error; transformations that cannot be fetched leave a
// sequence holding only the original form.
func Load(ctx context.Context, chars CharacterSource, forms FormSource, id int, logger *slog.Logger) (*Sequence, error) {
	if logger == nil {
		logger = slog.Default()
	}

	item, err := chars.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load character %d: %w", id, err)
	}
	char, ok := item.(*domain.Character)
	if !ok || char == nil {
		return nil, fmt.Errorf("load character %d: %w", id, domain.ErrNotFound)
	}

	transformations, err := forms.ForCharacter(ctx, char.Name)
	if err != nil {
		logger.Warn("showing original form only", "character", char.Name, "error", err)
		transformations = nil
	}

	return New(char, transformations), nil
}

// New builds a sequence from already loaded data
func New(char *domain.Character, transformations []*domain.Transformation) *Sequence {
	frames := make([]*domain.Transformation, 0, len(transformations)+1)
	frames = append(frames, domain.OriginalForm(char))
	frames = append(frames, transformations...)
	return &Sequence{Character: char, frames: frames}
}

// Current returns the frame on display
func (s *Sequence) Current() *domain.Transformation {
	return s.frames[s.index]
}

// Index returns the zero-based position of the current frame
func (s *Sequence) Index() int { return s.index }

// Len returns the number of frames
func (s *Sequence) Len() int { return len(s.frames) }

// Frames returns every frame in order
func (s *Sequence) Frames() []*domain.Transformation { return s.frames }

// AtStart reports whether the first frame is showing
func (s *Sequence) AtStart() bool { return s.index == 0 }

// AtEnd reports whether the last frame is showing
func (s *Sequence) AtEnd() bool { return s.index == len(s.frames)-1 }

// Playing reports whether autoplay is running
func (s *Sequence) Playing() bool { return s.playing }

// Next advances one frame. It does not wrap.
func (s *Sequence) Next() bool {
	if s.AtEnd() {
		return false
	}
	s.index++
	return true
}

// Prev goes back one frame. It does not wrap.
func (s *Sequence) Prev() bool {
	if s.AtStart() {
		return false
	}
	s.index--
	return true
}

// Toggle starts autoplay, or stops it when running. Starting on the last
// frame rewinds to the first. Returns whether autoplay is now running.
func (s *Sequence) Toggle() bool {
	if s.playing {
		s.playing = false
		return false
	}
	if len(s.frames) < 2 {
		return false
	}
	if s.AtEnd() {
		s.index = 0
	}
	s.playing = true
	return true
}

// Stop halts autoplay
func (s *Sequence) Stop() { s.playing = false }

// Tick advances autoplay by one frame, stopping on the last frame. It
// returns whether autoplay should keep ticking.
func (s *Sequence) Tick() bool {
	if !s.playing {
		return false
	}
	s.Next()
	if s.AtEnd() {
		s.playing = false
	}
	return s.playing
}
