package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Binding matches a single key press, including its modifiers.
type Binding struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

var namedKeys = map[string]Binding{
	"esc":    {Key: KeyEscape},
	"escape": {Key: KeyEscape},
	"enter":  {Key: KeyEnter},
	"tab":    {Key: KeyTab},
	"ctrl+c": {Key: KeyCtrlC, Ctrl: true},
	"ctrl+d": {Key: KeyCtrlD, Ctrl: true},
	"ctrl+q": {Key: KeyCtrlQ, Ctrl: true},
	"ctrl+z": {Key: KeyCtrlZ, Ctrl: true},
}

// ParseBinding parses names like "esc", "ctrl+c" or a single character like
// "q". Names are case-insensitive; single characters keep their case.
func ParseBinding(s string) (Binding, error) {
	trimmed := strings.TrimSpace(s)
	if b, ok := namedKeys[strings.ToLower(trimmed)]; ok {
		return b, nil
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return Binding{Key: KeyRune, Rune: r}, nil
	}
	return Binding{}, fmt.Errorf("unknown key %q", s)
}

// Matches reports whether ev is exactly this binding.
func (b Binding) Matches(ev KeyEvent) bool {
	if ev.Key != b.Key || ev.Alt != b.Alt || ev.Ctrl != b.Ctrl || ev.Shift != b.Shift {
		return false
	}
	return b.Key != KeyRune || ev.Rune == b.Rune
}

// String renders the binding the way ParseBinding accepts it.
func (b Binding) String() string {
	for _, name := range []string{"esc", "enter", "tab", "ctrl+c", "ctrl+d", "ctrl+q", "ctrl+z"} {
		if namedKeys[name] == b {
			return name
		}
	}
	if b.Key == KeyRune {
		return string(b.Rune)
	}
	return fmt.Sprintf("key(%d)", b.Key)
}
