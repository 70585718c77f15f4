// Package surface adapts a backend into the drawing surface used by widgets:
// fractional coordinates in, whole cells out.
package surface

import (
	"math"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Surface draws text into a terminal backend.
type Surface struct {
	backend backend.Backend
}

// New wraps a backend.
func New(b backend.Backend) *Surface {
	return &Surface{backend: b}
}

// Backend returns the wrapped backend.
func (s *Surface) Backend() backend.Backend {
	return s.backend
}

// Draw writes text one rune per cell starting at (x, y). Coordinates are
// floored. A negative column is clamped to 0; a row above the screen is dropped.
func (s *Surface) Draw(x, y float64, text string) {
	col := int(math.Floor(x))
	row := int(math.Floor(y))
	if row < 0 {
		return
	}
	if col < 0 {
		col = 0
	}
	for _, r := range text {
		s.backend.SetContent(col, row, r)
		col++
	}
}

// Clear blanks the whole screen.
func (s *Surface) Clear() {
	s.backend.Clear()
}

// Flush makes everything drawn since the last flush visible.
func (s *Surface) Flush() {
	s.backend.Show()
}

// Sync forces the next Flush to repaint every cell, for use after the
// terminal has been resized.
func (s *Surface) Sync() {
	s.backend.Sync()
}

// Size returns the terminal size in cells.
func (s *Surface) Size() (width, height float64) {
	w, h := s.backend.Size()
	return float64(w), float64(h)
}

// EnableRaw takes over the terminal: raw input, mouse reporting, hidden cursor.
func (s *Surface) EnableRaw() error {
	if err := s.backend.Init(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackendInit, "failed to initialize terminal").
			WithRemediation("run tuikit from an interactive terminal")
	}
	s.backend.HideCursor()
	return nil
}

// DisableRaw restores the terminal.
func (s *Surface) DisableRaw() {
	s.backend.Fini()
}

// ReadEvent blocks for the next input event. It returns nil once the
// backend has shut down.
func (s *Surface) ReadEvent() terminal.Event {
	return s.backend.PollEvent()
}

// Interrupt wakes a blocked ReadEvent with an InterruptEvent.
func (s *Surface) Interrupt() error {
	return s.backend.PostEvent(terminal.InterruptEvent{})
}
