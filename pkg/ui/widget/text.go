package widget

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Alignment positions text within a leaf's rect.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("alignment(%d)", int(a))
	}
}

// Next returns the following alignment, wrapping from right back to left.
func (a Alignment) Next() Alignment {
	return (a + 1) % 3
}

// ParseAlignment converts "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q (valid: left, center, right)", s)
	}
}

// Text is implemented by the leaf widgets that display a line of text.
type Text interface {
	Widget
	Text() string
	SetText(string)
	Alignment() Alignment
	SetAlignment(Alignment)
	Wrapped() bool
	SetWrapped(bool)
}

// leaf holds the state shared by Label and Button.
type leaf struct {
	text  string
	align Alignment
	wrap  bool
	id    int
	hasID bool
	shape Rect
}

// Text returns the displayed text.
func (l *leaf) Text() string { return l.text }

// SetText replaces the displayed text.
func (l *leaf) SetText(text string) { l.text = text }

// Alignment returns the text alignment.
func (l *leaf) Alignment() Alignment { return l.align }

// SetAlignment sets the text alignment.
func (l *leaf) SetAlignment(a Alignment) { l.align = a }

// Wrapped reports whether a border is drawn around the text.
func (l *leaf) Wrapped() bool { return l.wrap }

// SetWrapped turns the border on or off.
func (l *leaf) SetWrapped(wrap bool) { l.wrap = wrap }

// ID returns the widget identifier.
func (l *leaf) ID() (int, bool) { return l.id, l.hasID }

// Shape returns the rect of the last render.
func (l *leaf) Shape() Rect { return l.shape }

func (l *leaf) render(c Canvas, r Rect) {
	l.shape = r
	if l.wrap {
		drawBordered(c, r, l.text, l.align)
		return
	}
	drawText(c, r, l.text, l.align)
}

// textWidth is the number of cells text occupies: one per rune.
func textWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text))
}

// textAnchor returns the column text starts at within r.
func textAnchor(r Rect, text string, align Alignment) float64 {
	n := textWidth(text)
	switch align {
	case AlignCenter:
		return r.X + 1 + (r.W*0.5 - n*0.5)
	case AlignRight:
		return r.X - 1 + (r.W - n)
	default:
		return r.X + 1
	}
}

// drawText draws text on row r.Y at its alignment anchor. Nothing is clipped.
func drawText(c Canvas, r Rect, text string, align Alignment) {
	c.Draw(textAnchor(r, text, align), r.Y, text)
}

// drawBordered draws text framed by a one-cell box: rules on the rows above
// and below, bars at the first and last column.
func drawBordered(c Canvas, r Rect, text string, align Alignment) {
	rule := strings.Repeat("─", max(0, int(r.W)-2))
	c.Draw(r.X, r.Y-1, "┌"+rule+"┐")
	c.Draw(r.X, r.Y, "│")
	drawText(c, r, text, align)
	c.Draw(r.X+r.W-1, r.Y, "│")
	c.Draw(r.X, r.Y+1, "└"+rule+"┘")
}
