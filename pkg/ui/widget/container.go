package widget

import (
	"math"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

// Orientation is the axis a container stacks its children along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// rowStride is the number of rows between consecutive children of a
// vertical container: a bordered leaf uses three.
const rowStride = 3

// Container lays out an ordered list of slots. Each slot holds a widget, or
// Empty while the widget is taken out.
type Container struct {
	orientation Orientation
	slots       []Widget
	id          int
	hasID       bool
	wrap        bool
	shape       Rect
}

// VBox creates a vertical container owning children.
func VBox(children ...Widget) *Container {
	return newContainer(Vertical, children)
}

// HBox creates a horizontal container owning children.
func HBox(children ...Widget) *Container {
	return newContainer(Horizontal, children)
}

func newContainer(o Orientation, children []Widget) *Container {
	slots := make([]Widget, len(children))
	for i, child := range children {
		slots[i] = checkWidget(child, i)
	}
	return &Container{orientation: o, slots: slots}
}

func checkWidget(w Widget, i int) Widget {
	if w == nil {
		panic(apperrors.Newf(apperrors.ErrCodeInvalidInput, "nil widget for slot %d", i))
	}
	return w
}

func (*Container) widget() {}

// Kind returns KindVertical or KindHorizontal.
func (c *Container) Kind() Kind {
	if c.orientation == Horizontal {
		return KindHorizontal
	}
	return KindVertical
}

// Orientation returns the stacking axis.
func (c *Container) Orientation() Orientation { return c.orientation }

// ID returns the container identifier.
func (c *Container) ID() (int, bool) { return c.id, c.hasID }

// Shape returns the rect of the last render.
func (c *Container) Shape() Rect { return c.shape }

// SetID sets the container identifier.
func (c *Container) SetID(id int) *Container {
	c.id, c.hasID = id, true
	return c
}

// Wrap records the wrap flag. Containers never draw a border.
func (c *Container) Wrap() *Container {
	c.wrap = true
	return c
}

// Wrapped reports the stored wrap flag.
func (c *Container) Wrapped() bool { return c.wrap }

// Len returns the number of slots.
func (c *Container) Len() int { return len(c.slots) }

// At returns the widget in slot i without removing it.
func (c *Container) At(i int) Widget { return c.slots[i] }

// Take moves the widget out of slot i, leaving Empty behind.
func (c *Container) Take(i int) Widget {
	w := c.slots[i]
	c.slots[i] = Empty{}
	return w
}

// Put moves w into slot i, replacing whatever is there.
func (c *Container) Put(i int, w Widget) {
	c.slots[i] = checkWidget(w, i)
}

// Render divides r evenly among the children and renders each one.
// Leaf children are pushed down one row to leave room for a border;
// container children are not.
func (c *Container) Render(cv Canvas, r Rect) {
	c.shape = r
	for i := range c.slots {
		c.slots[i].Render(cv, c.childRect(r, i))
	}
}

func (c *Container) childRect(r Rect, i int) Rect {
	n := float64(len(c.slots))
	pad := padding(c.slots[i])
	fi := float64(i)
	if c.orientation == Horizontal {
		w := r.W / n
		return Rect{X: math.Floor(r.X + w*fi), Y: r.Y + pad, W: w, H: r.H}
	}
	return Rect{X: r.X, Y: math.Floor(r.Y + rowStride*fi + pad), W: r.W, H: r.H / n}
}

func padding(w Widget) float64 {
	if w.Kind().IsContainer() {
		return 0
	}
	return 1
}
