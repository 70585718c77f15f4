package widget

// Label displays a line of text. Labels are left aligned and unbordered
// unless told otherwise.
type Label struct {
	leaf
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	return &Label{leaf: leaf{text: text, align: AlignLeft}}
}

func (*Label) widget() {}

// Kind returns KindLabel.
func (*Label) Kind() Kind { return KindLabel }

// Render draws the label into r.
func (l *Label) Render(c Canvas, r Rect) { l.render(c, r) }

// SetID sets the identifier buttons use to target this label.
func (l *Label) SetID(id int) *Label {
	l.id, l.hasID = id, true
	return l
}

// Align sets the text alignment.
func (l *Label) Align(a Alignment) *Label {
	l.align = a
	return l
}

// Wrap draws a border around the label.
func (l *Label) Wrap() *Label {
	l.wrap = true
	return l
}

// NoWrap removes the border.
func (l *Label) NoWrap() *Label {
	l.wrap = false
	return l
}
