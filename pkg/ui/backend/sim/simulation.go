// Package sim provides a simulation backend for testing.
package sim

import (
	"fmt"
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/backend/tcell"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

const queueSize = 256

// Backend is a testable backend using tcell's simulation screen for cells
// and an in-memory queue for input. Events are delivered in injection order.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen

	mu            sync.Mutex
	width, height int
	events        chan terminal.Event
	closed        bool
	initialized   bool
	finalized     bool
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("UTF-8")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
		events:  make(chan terminal.Event, queueSize),
	}
}

// Init initializes the simulation screen at the configured size.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// The simulation screen resets to 80x25 on Init.
	s.screen.SetSize(s.width, s.height)
	s.initialized = true
	return nil
}

// Fini finalizes the screen and closes the event queue. PollEvent returns
// nil once the remaining events are drained.
func (s *Backend) Fini() {
	s.Backend.Fini()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized = true
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Initialized reports whether Init has succeeded.
func (s *Backend) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Finalized reports whether Fini has been called.
func (s *Backend) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// Size returns the simulated terminal dimensions.
func (s *Backend) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// PollEvent blocks until an injected event is available.
func (s *Backend) PollEvent() terminal.Event {
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

// PostEvent appends an event to the queue without blocking.
func (s *Backend) PostEvent(ev terminal.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("simulation backend finalized")
	}
	select {
	case s.events <- ev:
		return nil
	default:
		return fmt.Errorf("event queue full (%d events)", queueSize)
	}
}

// Resize changes the simulation screen size without posting an event.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.screen.SetSize(width, height)
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune injects a regular character keypress.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString injects a string as a sequence of key events.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectMouse injects an arbitrary mouse event.
func (s *Backend) InjectMouse(ev terminal.MouseEvent) {
	s.PostEvent(ev)
}

// InjectClick injects a left button press followed by its release.
func (s *Backend) InjectClick(x, y int) {
	s.InjectMouse(terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress})
	s.InjectMouse(terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MouseRelease})
}

// InjectResize resizes the screen and posts the matching resize event.
func (s *Backend) InjectResize(width, height int) {
	s.Resize(width, height)
	s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	s.mu.Lock()
	w, h := s.width, s.height
	s.mu.Unlock()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureLine returns a single screen row.
func (s *Backend) CaptureLine(y int) string {
	s.mu.Lock()
	w := s.width
	s.mu.Unlock()
	return s.CaptureRegion(0, y, w, 1)
}

// CaptureCell returns the rune drawn at a single cell, ' ' when blank.
func (s *Backend) CaptureCell(x, y int) rune {
	s.mu.Lock()
	defer s.mu.Unlock()

	mainc, _, _, _ := s.screen.GetContent(x, y)
	if mainc == 0 {
		mainc = ' '
	}
	return mainc
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, comb, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// FindText searches for text on the screen and returns its cell position.
func (s *Backend) FindText(text string) (x, y int) {
	lines := strings.Split(s.Capture(), "\n")

	for row, line := range lines {
		if idx := strings.Index(line, text); idx >= 0 {
			// Byte offset to cell column; box-drawing runes are multi-byte.
			return len([]rune(line[:idx])), row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, y := s.FindText(text)
	return x >= 0 && y >= 0
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
