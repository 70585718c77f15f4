// Package widget defines the widget tree: layout containers and leaf
// controls that render themselves into a character grid.
//
// Rendering is immediate mode. Every frame the whole tree is laid out and
// drawn again, and each widget remembers the rect it was last drawn into so
// clicks can be matched against it.
package widget

import (
	"fmt"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

// Canvas is where widgets draw. Coordinates are fractional cells.
//
//go:generate mockgen -destination=mock_canvas_test.go -package=widget github.com/odvcencio/tuikit/pkg/ui/widget Canvas
type Canvas interface {
	Draw(x, y float64, text string)
}

// Kind identifies the concrete widget variant.
type Kind int

const (
	KindEmpty Kind = iota
	KindVertical
	KindHorizontal
	KindLabel
	KindButton
)

// String returns the kind name used in logs and layout documents.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindVertical:
		return "vbox"
	case KindHorizontal:
		return "hbox"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsContainer reports whether the kind lays out children.
func (k Kind) IsContainer() bool {
	return k == KindVertical || k == KindHorizontal
}

// Widget is one node of the tree. The set of implementations is closed:
// *Container, *Label, *Button and Empty.
type Widget interface {
	// Kind reports the concrete variant.
	Kind() Kind

	// ID returns the widget's identifier, if it has one.
	ID() (int, bool)

	// Shape returns the rect the widget was last rendered into.
	Shape() Rect

	// Render lays the widget out in r and draws it.
	Render(c Canvas, r Rect)

	widget()
}

// Callback transforms the widget a button targets. The returned widget
// replaces the target in its slot.
type Callback func(Widget) Widget

// Empty fills a slot whose widget has been taken out. It is never valid to
// render or query one.
type Empty struct{}

func (Empty) widget() {}

// Kind returns KindEmpty.
func (Empty) Kind() Kind { return KindEmpty }

// ID panics.
func (Empty) ID() (int, bool) { panic(emptySlot("queried")) }

// Shape panics.
func (Empty) Shape() Rect { panic(emptySlot("queried")) }

// Render panics.
func (Empty) Render(Canvas, Rect) { panic(emptySlot("rendered")) }

func emptySlot(op string) *apperrors.Error {
	return apperrors.Newf(apperrors.ErrCodeEmptySlot, "empty slot %s", op).
		WithRemediation("put the widget back with Container.Put before the next render")
}

// IsEmpty reports whether w is the tombstone.
func IsEmpty(w Widget) bool {
	_, ok := w.(Empty)
	return ok
}
