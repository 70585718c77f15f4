// Package backend defines the terminal backend interface for the widget runtime.
// This abstraction allows swapping between tcell (real terminals) and
// simulation backends (testing), enabling screen-capture tests.
package backend

import "github.com/odvcencio/tuikit/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
// Implementations handle terminal I/O, input events, and screen rendering.
type Backend interface {
	// Init enters raw mode and the alternate screen and enables mouse reporting.
	Init() error

	// Fini restores the terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at (x, y). Out-of-range cells are ignored.
	SetContent(x, y int, r rune)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen buffer.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Sync forces a full redraw on next Show().
	Sync()
}
