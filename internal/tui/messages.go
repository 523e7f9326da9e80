package tui

import "github.com/mmcdole/zenkai/internal/viewer"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// searchSettledMsg fires once typing has paused for the debounce interval
type searchSettledMsg struct {
	seq  int
	term string
}

// viewerLoadedMsg carries a transformation sequence ready to show
type viewerLoadedMsg struct {
	seq *viewer.Sequence
}

// clearErrorMsg hides an error after it has been shown long enough
type clearErrorMsg struct {
	gen int
}
