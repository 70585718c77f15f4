// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen

	// Buttons held at the previous mouse event, used to tell presses from drags.
	held tcell.ButtonMask
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse(tcell.MouseButtonEvents)
	return nil
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, r rune) {
	b.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent blocks until an event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := b.convertEvent(ev); out != nil {
			return out
		}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	tev := reverseConvertEvent(ev)
	if tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// convertEvent converts a tcell event to terminal.Event.
func (b *Backend) convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return terminal.KeyEvent{
			Key:   convertKey(e.Key()),
			Rune:  e.Rune(),
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		buttons := e.Buttons()
		out := terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: convertMouseButton(buttons, b.held),
			Action: convertMouseAction(buttons, b.held),
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
		b.held = buttons &^ wheelMask
		return out
	case *tcell.EventInterrupt:
		return terminal.InterruptEvent{}
	default:
		return nil
	}
}

// convertKey converts tcell.Key to terminal.Key.
func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyInsert:
		return terminal.KeyInsert
	case tcell.KeyDelete:
		return terminal.KeyDelete
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyCtrlC:
		return terminal.KeyCtrlC
	case tcell.KeyCtrlD:
		return terminal.KeyCtrlD
	case tcell.KeyCtrlQ:
		return terminal.KeyCtrlQ
	case tcell.KeyCtrlZ:
		return terminal.KeyCtrlZ
	default:
		return terminal.KeyNone
	}
}

// changedButtons returns the buttons an event is about: wheel motion, then
// buttons newly pressed, then buttons just released, and otherwise the held
// buttons of a drag.
func changedButtons(buttons, held tcell.ButtonMask) tcell.ButtonMask {
	if wheel := buttons & wheelMask; wheel != 0 {
		return wheel
	}
	if pressed := buttons &^ held; pressed != 0 {
		return pressed
	}
	if released := held &^ buttons; released != 0 {
		return released
	}
	return buttons
}

// convertMouseButton converts a tcell button mask to terminal.MouseButton,
// reporting the button that changed rather than every button held.
func convertMouseButton(buttons, held tcell.ButtonMask) terminal.MouseButton {
	changed := changedButtons(buttons, held)
	switch {
	case changed&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case changed&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case changed&tcell.Button1 != 0:
		return terminal.MouseLeft
	case changed&tcell.Button2 != 0:
		return terminal.MouseRight
	case changed&tcell.Button3 != 0:
		return terminal.MouseMiddle
	default:
		return terminal.MouseNone
	}
}

// convertMouseAction determines the mouse action from the current and previous button state.
// tcell repeats the held mask while dragging, so an unchanged mask is a move.
func convertMouseAction(buttons, held tcell.ButtonMask) terminal.MouseAction {
	switch {
	case buttons&wheelMask != 0:
		return terminal.MousePress
	case buttons&^held != 0:
		return terminal.MousePress
	case held&^buttons != 0:
		return terminal.MouseRelease
	default:
		return terminal.MouseMove
	}
}

// reverseConvertEvent converts terminal.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.InterruptEvent:
		return tcell.NewEventInterrupt(nil)
	default:
		return nil
	}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
