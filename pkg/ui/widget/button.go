package widget

// Button is a clickable leaf. When clicked, its callback is applied to the
// widget whose id equals the button's related id.
//
// Buttons are centered and bordered by default.
type Button struct {
	leaf
	rid      int
	hasRID   bool
	callback Callback
}

// NewButton creates a button.
func NewButton(text string) *Button {
	return &Button{leaf: leaf{text: text, align: AlignCenter, wrap: true}}
}

func (*Button) widget() {}

// Kind returns KindButton.
func (*Button) Kind() Kind { return KindButton }

// Render draws the button into r.
func (b *Button) Render(c Canvas, r Rect) { b.render(c, r) }

// RelatedID returns the id of the widget this button acts on.
func (b *Button) RelatedID() (int, bool) { return b.rid, b.hasRID }

// Callback returns the click handler, or nil.
func (b *Button) Callback() Callback { return b.callback }

// SetID sets the button's own identifier.
func (b *Button) SetID(id int) *Button {
	b.id, b.hasID = id, true
	return b
}

// SetRelatedID names the widget the callback acts on. It may be the
// button's own id.
func (b *Button) SetRelatedID(rid int) *Button {
	b.rid, b.hasRID = rid, true
	return b
}

// OnClick sets the click handler.
func (b *Button) OnClick(cb Callback) *Button {
	b.callback = cb
	return b
}

// Align sets the text alignment.
func (b *Button) Align(a Alignment) *Button {
	b.align = a
	return b
}

// Wrap draws a border around the button.
func (b *Button) Wrap() *Button {
	b.wrap = true
	return b
}

// NoWrap removes the border.
func (b *Button) NoWrap() *Button {
	b.wrap = false
	return b
}
