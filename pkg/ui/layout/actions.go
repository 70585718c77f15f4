package layout

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

// ActionFunc turns an on_click spec into a button callback.
type ActionFunc func(spec Action) (widget.Callback, error)

// Actions maps action names to callback factories.
type Actions struct {
	funcs map[string]ActionFunc
}

// NewActions returns an empty action set.
func NewActions() *Actions {
	return &Actions{funcs: make(map[string]ActionFunc)}
}

// DefaultActions returns the built-in actions: increment, decrement,
// set_text, toggle_wrap and cycle_align.
func DefaultActions() *Actions {
	a := NewActions()
	a.Register("increment", func(Action) (widget.Callback, error) { return addToText(1), nil })
	a.Register("decrement", func(Action) (widget.Callback, error) { return addToText(-1), nil })
	a.Register("set_text", func(spec Action) (widget.Callback, error) {
		return onText(func(t widget.Text) { t.SetText(spec.Text) }), nil
	})
	a.Register("toggle_wrap", func(Action) (widget.Callback, error) {
		return onText(func(t widget.Text) { t.SetWrapped(!t.Wrapped()) }), nil
	})
	a.Register("cycle_align", func(Action) (widget.Callback, error) {
		return onText(func(t widget.Text) { t.SetAlignment(t.Alignment().Next()) }), nil
	})
	return a
}

// Register adds or replaces an action.
func (a *Actions) Register(name string, fn ActionFunc) {
	a.funcs[name] = fn
}

// Names returns the registered action names, sorted.
func (a *Actions) Names() []string {
	names := make([]string, 0, len(a.funcs))
	for name := range a.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Callback resolves spec into a callback.
func (a *Actions) Callback(spec Action) (widget.Callback, error) {
	fn, ok := a.funcs[spec.Action]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodeLayoutInvalid, "unknown action %q", spec.Action).
			WithContext("valid", a.Names())
	}
	cb, err := fn(spec)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeLayoutInvalid, fmt.Sprintf("invalid %s action", spec.Action))
	}
	return cb, nil
}

// onText applies fn to text widgets and leaves containers untouched.
func onText(fn func(widget.Text)) widget.Callback {
	return func(w widget.Widget) widget.Widget {
		if t, ok := w.(widget.Text); ok {
			fn(t)
		}
		return w
	}
}

var trailingInt = regexp.MustCompile(`-?\d+$`)

// addToText adds delta to the integer at the end of the text. Text without a
// trailing integer is left as is.
func addToText(delta int) widget.Callback {
	return onText(func(t widget.Text) {
		text := t.Text()
		loc := trailingInt.FindStringIndex(text)
		if loc == nil {
			return
		}
		n, err := strconv.Atoi(text[loc[0]:])
		if err != nil {
			return
		}
		t.SetText(text[:loc[0]] + strconv.Itoa(n+delta))
	})
}
