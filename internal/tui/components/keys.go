package components

import "github.com/charmbracelet/bubbles/key"

// ViewerKeyMap defines key bindings for the transformation viewer
type ViewerKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Play  key.Binding
	Close key.Binding
}

// DefaultViewerKeyMap returns the default viewer key bindings
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "backspace", "t"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Close}
}
