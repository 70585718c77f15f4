package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/ui/backend/sim"
	"github.com/odvcencio/tuikit/pkg/ui/surface"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

func newApp(t *testing.T, s Surface, root *widget.Container) *App {
	t.Helper()
	app, err := NewApp(AppConfig{Surface: s, Root: root})
	require.NoError(t, err)
	return app
}

func TestApp_CounterScenario(t *testing.T) {
	root, label, button := counter()
	s := newFakeSurface(40, 10, leftPress(5, 4), escKey())
	app := newApp(t, s, root)

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "Counter: 1", label.Text())
	assert.Equal(t, "Click me!", button.Text())
	assert.Equal(t, StateTerminated, app.State())
	assert.True(t, s.released, "terminal restored")
}

func TestApp_CounterOnSimulatedTerminal(t *testing.T) {
	root, label, _ := counter()
	be := sim.New(40, 10)
	be.InjectClick(5, 4)
	be.InjectClick(5, 4)
	be.InjectKey(terminal.KeyEscape, 0)

	app := newApp(t, surface.New(be), root)
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "Counter: 2", label.Text(), "releases do not trigger")
	assert.True(t, be.Finalized())
	assert.Equal(t, StateTerminated, app.State())
}

func TestApp_RendersTreeOnSimulatedTerminal(t *testing.T) {
	root, _, _ := counter()
	be := sim.New(40, 10)
	app := newApp(t, surface.New(be), root)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	require.Eventually(t, func() bool { return be.ContainsText("Counter: 0") }, time.Second, 5*time.Millisecond)
	x, y := be.FindText("Click me!")
	assert.Equal(t, 4, y)
	assert.Equal(t, 16, x)

	be.InjectClick(5, 4)
	require.Eventually(t, func() bool { return be.ContainsText("Counter: 1") }, time.Second, 5*time.Millisecond)

	be.InjectKey(terminal.KeyEscape, 0)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after cancel key")
	}
}

func TestApp_ResizeOnlyClears(t *testing.T) {
	root, label, _ := counter()
	s := newFakeSurface(40, 10, terminal.ResizeEvent{Width: 50, Height: 12}, escKey())
	app := newApp(t, s, root)

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "Counter: 0", label.Text())
	id, ok := label.ID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, 2, app.Frames())
	assert.Equal(t, 1, s.syncs, "resize repaints every cell")
}

func TestApp_ContextCancel(t *testing.T) {
	root, _, _ := counter()
	be := sim.New(40, 10)
	app := newApp(t, surface.New(be), root)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return app.Frames() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after context cancellation")
	}
	assert.Equal(t, StateTerminated, app.State())
	assert.True(t, be.Finalized())
}

func TestApp_RunTwice(t *testing.T) {
	root, _, _ := counter()
	app := newApp(t, newFakeSurface(40, 10, escKey()), root)

	require.NoError(t, app.Run(context.Background()))
	err := app.Run(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInternal))
}

func TestApp_TooSmallShowsNotice(t *testing.T) {
	root, label, _ := counter()
	s := newFakeSurface(12, 10, leftPress(5, 4))
	app := newApp(t, s, root)

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "Counter: 0", label.Text(), "clicks are ignored while the notice is shown")
	assert.Equal(t, StateTerminated, app.State())

	cols, rows := app.MinSize()
	assert.Equal(t, 13, cols)
	assert.Equal(t, 6, rows)
}

func TestApp_NoticeText(t *testing.T) {
	root, _, _ := counter()
	s := newFakeSurface(12, 10)
	app := newApp(t, s, root)

	app.RenderFrame()

	assert.True(t, s.drew(NoticeText(12, 10, 13, 6)))
	assert.True(t, s.drew("press esc to quit"))
	assert.False(t, s.drew("Counter"))
}

func TestApp_IgnorePolicyRendersAnyway(t *testing.T) {
	root, label, _ := counter()
	s := newFakeSurface(12, 10, leftPress(5, 4), escKey())
	app, err := NewApp(AppConfig{Surface: s, Root: root, SizePolicy: SizePolicyIgnore})
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "Counter: 1", label.Text())
}

func TestApp_ConfiguredMinimum(t *testing.T) {
	root, _, _ := counter()
	app, err := NewApp(AppConfig{Surface: newFakeSurface(40, 10), Root: root, MinWidth: 80})
	require.NoError(t, err)

	cols, rows := app.MinSize()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 6, rows, "unset dimension falls back to the tree")
}

func TestApp_HandleMessage(t *testing.T) {
	label := widget.NewLabel("n 0").SetID(1)
	root := widget.VBox(
		label,
		widget.HBox(widget.NewButton("nested").SetRelatedID(1).OnClick(increment)),
		widget.NewButton("top").SetRelatedID(1).OnClick(increment),
	)
	s := newFakeSurface(40, 20)
	app := newApp(t, s, root)

	assert.False(t, app.HandleMessage(MouseMsg{X: 5, Y: 7, Button: terminal.MouseLeft}).Handled,
		"clicks before the first frame are ignored")

	app.RenderFrame()

	tests := []struct {
		name    string
		msg     Message
		handled bool
		want    []Command
	}{
		{"top-level click clears", MouseMsg{X: 5, Y: 7, Button: terminal.MouseLeft}, true, []Command{Clear{}}},
		{"nested click flushes", MouseMsg{X: 5, Y: 4, Button: terminal.MouseLeft}, true, []Command{Flush{}}},
		{"miss", MouseMsg{X: 5, Y: 0, Button: terminal.MouseLeft}, false, nil},
		{"release", MouseMsg{X: 5, Y: 7, Button: terminal.MouseLeft, Action: terminal.MouseRelease}, false, nil},
		{"right button", MouseMsg{X: 5, Y: 7, Button: terminal.MouseRight}, false, nil},
		{"resize", ResizeMsg{Width: 1, Height: 1}, true, []Command{Clear{}, Sync{}}},
		{"cancel key", KeyMsg{Key: terminal.KeyEscape}, true, []Command{Quit{}}},
		{"cancel key with modifier", KeyMsg{Key: terminal.KeyEscape, Alt: true}, false, nil},
		{"other key", KeyMsg{Key: terminal.KeyRune, Rune: 'q'}, false, nil},
		{"interrupt", InterruptMsg{}, true, []Command{Quit{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := app.HandleMessage(tt.msg)
			assert.Equal(t, tt.handled, result.Handled)
			if tt.want != nil {
				assert.Equal(t, tt.want, result.Commands)
			} else {
				assert.Empty(t, result.Commands)
			}
		})
	}

	assert.Equal(t, "n 2", label.Text())
}

func TestApp_CustomCancelKey(t *testing.T) {
	root, _, _ := counter()
	binding, err := terminal.ParseBinding("q")
	require.NoError(t, err)

	app, err := NewApp(AppConfig{Surface: newFakeSurface(40, 10), Root: root, CancelKey: binding})
	require.NoError(t, err)

	assert.True(t, app.HandleMessage(KeyMsg{Key: terminal.KeyRune, Rune: 'q'}).HasCommand(Quit{}))
	assert.False(t, app.HandleMessage(KeyMsg{Key: terminal.KeyEscape}).Handled)
}

func TestApp_PanicRestoresTerminal(t *testing.T) {
	root := widget.VBox(
		widget.NewLabel("x").SetID(1),
		widget.NewButton("bad").SetRelatedID(1).OnClick(func(widget.Widget) widget.Widget { return nil }),
	)
	s := newFakeSurface(40, 10, leftPress(5, 4))
	app := newApp(t, s, root)

	requirePanicCode(t, apperrors.ErrCodeInvalidCallback, func() {
		app.Run(context.Background())
	})
	assert.True(t, s.released)
	assert.Equal(t, StateTerminated, app.State())
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(AppConfig{Root: widget.VBox()})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	_, err = NewApp(AppConfig{Surface: newFakeSurface(1, 1)})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	_, err = NewApp(AppConfig{Surface: newFakeSurface(1, 1), Root: widget.VBox(), SizePolicy: "shrink"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	root := widget.VBox(widget.NewButton("b").OnClick(setText("x")))
	_, err = NewApp(AppConfig{Surface: newFakeSurface(1, 1), Root: root})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMissingRelatedID))
}

func TestParseSizePolicy(t *testing.T) {
	for in, want := range map[string]SizePolicy{"": SizePolicyNotice, "Notice": SizePolicyNotice, "ignore": SizePolicyIgnore} {
		got, err := ParseSizePolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSizePolicy("clip")
	assert.Error(t, err)
}

func TestMessageFromEvent(t *testing.T) {
	assert.Equal(t, KeyMsg{Key: terminal.KeyRune, Rune: 'a', Ctrl: true},
		MessageFromEvent(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a', Ctrl: true}))
	assert.Equal(t, ResizeMsg{Width: 3, Height: 4}, MessageFromEvent(terminal.ResizeEvent{Width: 3, Height: 4}))
	assert.Equal(t, MouseMsg{X: 1, Y: 2, Button: terminal.MouseLeft}, MessageFromEvent(leftPress(1, 2)))
	assert.Equal(t, InterruptMsg{}, MessageFromEvent(terminal.InterruptEvent{}))
	assert.Nil(t, MessageFromEvent(nil))
}
