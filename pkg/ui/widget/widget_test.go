package widget

import (
	"testing"

	"go.uber.org/mock/gomock"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

type drawCall struct {
	x, y float64
	text string
}

// recordingCanvas keeps every draw in order.
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) Draw(x, y float64, text string) {
	c.calls = append(c.calls, drawCall{x, y, text})
}

func expectPanicCode(t *testing.T, code apperrors.ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(*apperrors.Error)
		if !ok {
			t.Fatalf("panic value = %T (%v), want *errors.Error", r, r)
		}
		if err.Code != code {
			t.Fatalf("panic code = %s, want %s", err.Code, code)
		}
	}()
	fn()
}

func TestRectHitRow(t *testing.T) {
	r := NewRect(2.5, 4.9, 5, 3)
	tests := []struct {
		col, row int
		want     bool
	}{
		{2, 4, true},
		{6, 4, true},
		{7, 4, false},
		{1, 4, false},
		{3, 5, false},
		{3, 3, false},
	}
	for _, tt := range tests {
		if got := r.HitRow(tt.col, tt.row); got != tt.want {
			t.Errorf("HitRow(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}

	if (Rect{}).HitRow(0, 0) {
		t.Error("a never-rendered widget must not be hit")
	}
}

func TestUnwrappedAlignment(t *testing.T) {
	r := NewRect(0, 0, 20, 3)
	tests := []struct {
		align Alignment
		x     float64
	}{
		{AlignLeft, 1},
		{AlignCenter, 9.5},
		{AlignRight, 16},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			canvas := NewMockCanvas(ctrl)
			canvas.EXPECT().Draw(tt.x, 0.0, "abc").Times(1)

			NewLabel("abc").Align(tt.align).Render(canvas, r)
		})
	}
}

func TestUnwrappedButtonUsesAlignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	canvas := NewMockCanvas(ctrl)
	canvas.EXPECT().Draw(1.0, 2.0, "go")

	b := NewButton("go").NoWrap().Align(AlignLeft)
	r := NewRect(0, 2, 10, 1)
	b.Render(canvas, r)

	if b.Shape() != r {
		t.Errorf("Shape = %+v, want %+v", b.Shape(), r)
	}
}

func TestWrappedRenderOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	canvas := NewMockCanvas(ctrl)

	r := NewRect(2, 5, 6, 1)
	gomock.InOrder(
		canvas.EXPECT().Draw(2.0, 4.0, "┌────┐"),
		canvas.EXPECT().Draw(2.0, 5.0, "│"),
		canvas.EXPECT().Draw(3.0, 5.0, "ok"),
		canvas.EXPECT().Draw(7.0, 5.0, "│"),
		canvas.EXPECT().Draw(2.0, 6.0, "└────┘"),
	)

	l := NewLabel("ok").Wrap()
	l.Render(canvas, r)

	if l.Shape() != r {
		t.Errorf("Shape = %+v, want %+v", l.Shape(), r)
	}
}

func TestWrappedNarrowRect(t *testing.T) {
	canvas := &recordingCanvas{}
	NewButton("x").Render(canvas, NewRect(0, 1, 1.5, 1))

	if canvas.calls[0].text != "┌┐" || canvas.calls[4].text != "└┘" {
		t.Errorf("narrow rules = %q / %q", canvas.calls[0].text, canvas.calls[4].text)
	}
}

func TestDefaults(t *testing.T) {
	l := NewLabel("l")
	if l.Alignment() != AlignLeft || l.Wrapped() {
		t.Errorf("label defaults: align=%v wrap=%v", l.Alignment(), l.Wrapped())
	}
	if _, ok := l.ID(); ok {
		t.Error("label should have no id by default")
	}

	b := NewButton("b")
	if b.Alignment() != AlignCenter || !b.Wrapped() {
		t.Errorf("button defaults: align=%v wrap=%v", b.Alignment(), b.Wrapped())
	}
	if _, ok := b.RelatedID(); ok {
		t.Error("button should have no rid by default")
	}
	if b.Callback() != nil {
		t.Error("button should have no callback by default")
	}
}

func TestBuilderChaining(t *testing.T) {
	b := NewButton("b").SetID(3).SetRelatedID(7).OnClick(func(w Widget) Widget { return w })

	if id, ok := b.ID(); !ok || id != 3 {
		t.Errorf("ID = %d, %v", id, ok)
	}
	if rid, ok := b.RelatedID(); !ok || rid != 7 {
		t.Errorf("RelatedID = %d, %v", rid, ok)
	}
	if b.Callback() == nil {
		t.Error("callback not stored")
	}

	c := VBox(NewLabel("a")).SetID(0)
	if id, ok := c.ID(); !ok || id != 0 {
		t.Errorf("container ID = %d, %v; id 0 is a valid id", id, ok)
	}
}

func TestVerticalLayout(t *testing.T) {
	label := NewLabel("top")
	inner := HBox(NewLabel("a"), NewLabel("b"))
	button := NewButton("bottom")
	root := VBox(label, inner, button)

	root.Render(&recordingCanvas{}, NewRect(0, 0.5, 30, 12))

	tests := []struct {
		name string
		w    Widget
		want Rect
	}{
		{"leaf padded", label, Rect{X: 0, Y: 1, W: 30, H: 4}},
		{"container unpadded", inner, Rect{X: 0, Y: 3, W: 30, H: 4}},
		{"third child", button, Rect{X: 0, Y: 7, W: 30, H: 4}},
	}
	for _, tt := range tests {
		if got := tt.w.Shape(); got != tt.want {
			t.Errorf("%s: Shape = %+v, want %+v", tt.name, got, tt.want)
		}
	}
	if root.Shape() != NewRect(0, 0.5, 30, 12) {
		t.Errorf("root Shape = %+v", root.Shape())
	}
}

func TestHorizontalLayout(t *testing.T) {
	a, b, c := NewLabel("a"), NewLabel("b"), VBox()
	root := HBox(a, b, c)

	root.Render(&recordingCanvas{}, NewRect(0, 2, 10, 5))

	w := 10.0 / 3
	want := []Rect{
		{X: 0, Y: 3, W: w, H: 5},
		{X: 3, Y: 3, W: w, H: 5},
		{X: 6, Y: 2, W: w, H: 5},
	}
	sum := 0.0
	for i, child := range []Widget{a, b, c} {
		if got := child.Shape(); got != want[i] {
			t.Errorf("child %d: Shape = %+v, want %+v", i, got, want[i])
		}
		sum += child.Shape().W
	}
	if sum < 9.999 || sum > 10.001 {
		t.Errorf("child widths sum to %v, want 10", sum)
	}
}

func TestEmptyContainerDrawsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	canvas := NewMockCanvas(ctrl)

	VBox().Render(canvas, NewRect(0, 0, 10, 10))
	HBox().Render(canvas, NewRect(0, 0, 10, 10))
}

func TestTakeAndPut(t *testing.T) {
	label := NewLabel("x")
	c := VBox(label)

	taken := c.Take(0)
	if taken != Widget(label) {
		t.Fatal("Take should return the widget in the slot")
	}
	if !IsEmpty(c.At(0)) {
		t.Fatal("Take should leave Empty behind")
	}

	expectPanicCode(t, apperrors.ErrCodeEmptySlot, func() {
		c.Render(&recordingCanvas{}, NewRect(0, 0, 10, 5))
	})

	c.Put(0, taken)
	if c.At(0) != Widget(label) {
		t.Error("Put should restore the widget")
	}
	c.Render(&recordingCanvas{}, NewRect(0, 0, 10, 5))
}

func TestEmptyPanics(t *testing.T) {
	expectPanicCode(t, apperrors.ErrCodeEmptySlot, func() { Empty{}.ID() })
	expectPanicCode(t, apperrors.ErrCodeEmptySlot, func() { Empty{}.Shape() })
	expectPanicCode(t, apperrors.ErrCodeEmptySlot, func() { MinSize(Empty{}) })

	if (Empty{}).Kind() != KindEmpty {
		t.Error("Kind on Empty must not panic")
	}
}

func TestNilChildPanics(t *testing.T) {
	expectPanicCode(t, apperrors.ErrCodeInvalidInput, func() { VBox(nil) })
	expectPanicCode(t, apperrors.ErrCodeInvalidInput, func() { VBox(NewLabel("a")).Put(0, nil) })
}

func TestMinSize(t *testing.T) {
	tests := []struct {
		name       string
		w          Widget
		cols, rows int
	}{
		{"plain label", NewLabel("abc"), 5, 1},
		{"wrapped centered button", NewButton("abc"), 6, 2},
		{"empty container", VBox(), 0, 0},
		{
			"counter",
			VBox(
				NewLabel("Counter: 0").Align(AlignCenter).Wrap(),
				NewButton("Click me!"),
			),
			13, 6,
		},
		{
			"row of buttons",
			HBox(NewButton("a"), NewButton("bbb")),
			12, 3,
		},
		{
			"grid",
			VBox(
				HBox(NewButton("1"), NewButton("2")),
				HBox(NewButton("3"), NewButton("4")),
			),
			8, 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := MinSize(tt.w)
			if cols != tt.cols || rows != tt.rows {
				t.Errorf("MinSize = (%d, %d), want (%d, %d)", cols, rows, tt.cols, tt.rows)
			}
		})
	}
}

func TestAlignment(t *testing.T) {
	for _, s := range []string{"left", "Center", " right "} {
		a, err := ParseAlignment(s)
		if err != nil {
			t.Fatalf("ParseAlignment(%q) error = %v", s, err)
		}
		if a.Next().Next().Next() != a {
			t.Errorf("Next should cycle through three alignments")
		}
	}
	if _, err := ParseAlignment("justify"); err == nil {
		t.Error("ParseAlignment(justify) should fail")
	}
	if AlignRight.Next() != AlignLeft {
		t.Error("right should cycle back to left")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		w    Widget
		kind Kind
		name string
	}{
		{VBox(), KindVertical, "vbox"},
		{HBox(), KindHorizontal, "hbox"},
		{NewLabel(""), KindLabel, "label"},
		{NewButton(""), KindButton, "button"},
		{Empty{}, KindEmpty, "empty"},
	}
	for _, tt := range tests {
		if tt.w.Kind() != tt.kind || tt.kind.String() != tt.name {
			t.Errorf("%T: Kind = %v", tt.w, tt.w.Kind())
		}
	}
	if !KindVertical.IsContainer() || KindButton.IsContainer() {
		t.Error("IsContainer mismatch")
	}
}
