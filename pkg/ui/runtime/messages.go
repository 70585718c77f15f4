package runtime

import (
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Message represents an input event flowing into the dispatcher.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// Event returns the key as a terminal event, for matching bindings.
func (m KeyMsg) Event() terminal.KeyEvent {
	return terminal.KeyEvent{Key: m.Key, Rune: m.Rune, Alt: m.Alt, Ctrl: m.Ctrl, Shift: m.Shift}
}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// IsLeftPress reports whether the message is a left button press.
func (m MouseMsg) IsLeftPress() bool {
	return m.Button == terminal.MouseLeft && m.Action == terminal.MousePress
}

// InterruptMsg wakes the loop so it can shut down.
type InterruptMsg struct{}

func (InterruptMsg) isMessage() {}

// MessageFromEvent converts a terminal event. It returns nil for events the
// dispatcher does not handle.
func MessageFromEvent(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{
			Key:   e.Key,
			Rune:  e.Rune,
			Alt:   e.Alt,
			Ctrl:  e.Ctrl,
			Shift: e.Shift,
		}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{
			X:      e.X,
			Y:      e.Y,
			Button: e.Button,
			Action: e.Action,
			Alt:    e.Alt,
			Ctrl:   e.Ctrl,
			Shift:  e.Shift,
		}
	case terminal.InterruptEvent:
		return InterruptMsg{}
	default:
		return nil
	}
}
