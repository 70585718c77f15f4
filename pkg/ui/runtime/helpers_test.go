package runtime

import (
	"strconv"
	"strings"

	"github.com/odvcencio/tuikit/pkg/ui/terminal"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

// nopCanvas discards drawing.
type nopCanvas struct{}

func (nopCanvas) Draw(float64, float64, string) {}

// fakeSurface is a single-goroutine Surface that replays queued events and
// returns nil once they run out.
type fakeSurface struct {
	w, h     float64
	draws    []string
	clears   int
	flushes  int
	syncs    int
	raw      bool
	released bool
	events   []terminal.Event
}

func newFakeSurface(w, h float64, events ...terminal.Event) *fakeSurface {
	return &fakeSurface{w: w, h: h, events: events}
}

func (s *fakeSurface) Draw(_, _ float64, text string) { s.draws = append(s.draws, text) }
func (s *fakeSurface) Clear()                         { s.clears++; s.draws = nil }
func (s *fakeSurface) Flush()                         { s.flushes++ }
func (s *fakeSurface) Sync()                          { s.syncs++ }
func (s *fakeSurface) Size() (float64, float64)       { return s.w, s.h }
func (s *fakeSurface) EnableRaw() error               { s.raw = true; return nil }
func (s *fakeSurface) DisableRaw()                    { s.raw = false; s.released = true }
func (s *fakeSurface) Interrupt() error {
	s.events = append(s.events, terminal.InterruptEvent{})
	return nil
}

func (s *fakeSurface) ReadEvent() terminal.Event {
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func (s *fakeSurface) drew(text string) bool {
	for _, d := range s.draws {
		if strings.Contains(d, text) {
			return true
		}
	}
	return false
}

func leftPress(x, y int) terminal.MouseEvent {
	return terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress}
}

func escKey() terminal.KeyEvent {
	return terminal.KeyEvent{Key: terminal.KeyEscape}
}

// increment adds one to the trailing number of a text widget.
func increment(w widget.Widget) widget.Widget {
	t := w.(widget.Text)
	text := t.Text()
	i := strings.LastIndex(text, " ")
	n, _ := strconv.Atoi(text[i+1:])
	t.SetText(text[:i+1] + strconv.Itoa(n+1))
	return w
}

func setText(s string) widget.Callback {
	return func(w widget.Widget) widget.Widget {
		w.(widget.Text).SetText(s)
		return w
	}
}

// counter builds the classic counter: a label and a button that bumps it.
// Rendered at 40x10, the button's text row is 4.
func counter() (*widget.Container, *widget.Label, *widget.Button) {
	label := widget.NewLabel("Counter: 0").SetID(1).Align(widget.AlignCenter).Wrap()
	button := widget.NewButton("Click me!").SetRelatedID(1).OnClick(increment)
	return widget.VBox(label, button), label, button
}
