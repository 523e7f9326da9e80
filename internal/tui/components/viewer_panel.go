package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/zenkai/internal/tui/styles"
	"github.com/mmcdole/zenkai/internal/viewer"
)

// ViewerTickMsg advances autoplay. Ticks from an earlier run carry a stale
// Gen and are ignored.
type ViewerTickMsg struct {
	Gen int
}

// ViewerPanel shows a transformation sequence one frame at a time
type ViewerPanel struct {
	seq      *viewer.Sequence
	interval time.Duration
	gen      int
	keys     ViewerKeyMap
	width    int
}

// NewViewerPanel creates a closed panel that autoplays every interval
func NewViewerPanel(interval time.Duration) ViewerPanel {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return ViewerPanel{interval: interval, keys: DefaultViewerKeyMap()}
}

// Open shows seq from its first frame
func (p *ViewerPanel) Open(seq *viewer.Sequence) {
	p.seq = seq
	p.gen++
}

// Close hides the panel and stops autoplay
func (p *ViewerPanel) Close() {
	if p.seq != nil {
		p.seq.Stop()
	}
	p.seq = nil
	p.gen++
}

// IsOpen returns whether a sequence is on display
func (p ViewerPanel) IsOpen() bool {
	return p.seq != nil
}

// Sequence returns the sequence on display, or nil
func (p ViewerPanel) Sequence() *viewer.Sequence {
	return p.seq
}

// Keys returns the panel's bindings
func (p ViewerPanel) Keys() ViewerKeyMap {
	return p.keys
}

// SetWidth sets the rendering width
func (p *ViewerPanel) SetWidth(w int) {
	p.width = w
}

// Update handles keys and autoplay ticks, returns (panel, cmd, closed)
func (p ViewerPanel) Update(msg tea.Msg) (ViewerPanel, tea.Cmd, bool) {
	if p.seq == nil {
		return p, nil, false
	}

	switch msg := msg.(type) {
	case ViewerTickMsg:
		if msg.Gen != p.gen {
			return p, nil, false
		}
		if p.seq.Tick() {
			return p, p.tick(), false
		}
		return p, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Close):
			p.Close()
			return p, nil, true
		case key.Matches(msg, p.keys.Prev):
			p.stop()
			p.seq.Prev()
		case key.Matches(msg, p.keys.Next):
			p.stop()
			p.seq.Next()
		case key.Matches(msg, p.keys.Play):
			p.gen++
			if p.seq.Toggle() {
				return p, p.tick(), false
			}
		}
	}
	return p, nil, false
}

// stop halts autoplay and invalidates outstanding ticks
func (p *ViewerPanel) stop() {
	if p.seq.Playing() {
		p.seq.Stop()
		p.gen++
	}
}

func (p ViewerPanel) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return ViewerTickMsg{Gen: gen}
	})
}

// View renders the current frame with its position in the sequence
func (p ViewerPanel) View() string {
	if p.seq == nil {
		return ""
	}

	frame := p.seq.Current()
	title := styles.TitleStyle.Render(frame.Name)

	state := styles.DimBadgeStyle.Render("paused")
	if p.seq.Playing() {
		state = styles.BadgeStyle.Render("playing")
	}

	var lines []string
	lines = append(lines, title+"  "+state, "")
	if frame.Ki != "" {
		lines = append(lines, styles.LabelStyle.Render("Ki")+"  "+frame.Ki)
	}
	if frame.Image != "" {
		lines = append(lines, styles.LabelStyle.Render("Image")+"  "+styles.DimStyle.Render(frame.Image))
	}

	barWidth := 30
	if p.width > 0 {
		barWidth = min(barWidth, max(p.width-12, 3))
	}
	lines = append(lines, "",
		styles.RenderKiBar(p.seq.Index()+1, p.seq.Len(), barWidth)+
			styles.DimStyle.Render(fmt.Sprintf("  %d/%d", p.seq.Index()+1, p.seq.Len())))

	names := make([]string, p.seq.Len())
	for i, f := range p.seq.Frames() {
		if i == p.seq.Index() {
			names[i] = styles.AccentStyle.Render("▸ " + f.Name)
		} else {
			names[i] = styles.DimStyle.Render("  " + f.Name)
		}
	}
	lines = append(lines, "", strings.Join(names, "\n"))

	return styles.ViewerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
