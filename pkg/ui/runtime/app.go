// Package runtime runs a widget tree against a terminal: it renders the
// whole tree every frame, blocks for one input event, and dispatches it.
package runtime

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

// Surface is the terminal capability the loop drives.
type Surface interface {
	widget.Canvas
	Clear()
	Flush()
	Sync()
	Size() (width, height float64)
	EnableRaw() error
	DisableRaw()
	ReadEvent() terminal.Event
	Interrupt() error
}

// State is the lifecycle of an App.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SizePolicy decides what happens when the terminal is smaller than the
// tree needs.
type SizePolicy string

const (
	// SizePolicyNotice replaces the tree with a one-line notice and ignores
	// clicks until the terminal is large enough.
	SizePolicyNotice SizePolicy = "notice"
	// SizePolicyIgnore renders the tree anyway and lets children overlap.
	SizePolicyIgnore SizePolicy = "ignore"
)

// ParseSizePolicy validates a policy name.
func ParseSizePolicy(s string) (SizePolicy, error) {
	switch p := SizePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case SizePolicyNotice, SizePolicyIgnore:
		return p, nil
	case "":
		return SizePolicyNotice, nil
	default:
		return "", fmt.Errorf("unknown size policy %q (valid: notice, ignore)", s)
	}
}

// AppConfig configures a runtime App.
type AppConfig struct {
	Surface Surface
	Root    *widget.Container

	// CancelKey ends the loop. The zero value means Esc.
	CancelKey terminal.Binding

	SizePolicy SizePolicy

	// MinWidth and MinHeight override the size computed from the tree when
	// non-zero.
	MinWidth  int
	MinHeight int

	Logger *logging.Logger
}

// App runs a widget tree against a terminal surface.
type App struct {
	surface   Surface
	tree      *Tree
	cancelKey terminal.Binding
	policy    SizePolicy
	minWidth  int
	minHeight int
	logger    *logging.Logger

	mu        sync.Mutex
	state     State
	clickable bool
	frames    int
}

// NewApp creates a new App from config. It refuses trees with buttons
// that would panic when clicked.
func NewApp(cfg AppConfig) (*App, error) {
	if cfg.Surface == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "surface is required")
	}
	if cfg.Root == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "root container is required")
	}

	policy := cfg.SizePolicy
	if policy == "" {
		policy = SizePolicyNotice
	}
	if _, err := ParseSizePolicy(string(policy)); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid app config")
	}

	cancelKey := cfg.CancelKey
	if cancelKey == (terminal.Binding{}) {
		cancelKey = terminal.Binding{Key: terminal.KeyEscape}
	}

	tree := NewTree(cfg.Root)
	tree.SetLogger(cfg.Logger)

	problems := tree.Problems()
	for _, p := range problems {
		if p.Severity == SeverityWarning {
			cfg.Logger.Warn(logging.CategoryApp, "tree_problem", p.Message, map[string]any{"path": p.Path})
		}
	}
	if err := Fatal(problems); err != nil {
		return nil, err
	}

	return &App{
		surface:   cfg.Surface,
		tree:      tree,
		cancelKey: cancelKey,
		policy:    policy,
		minWidth:  cfg.MinWidth,
		minHeight: cfg.MinHeight,
		logger:    cfg.Logger,
	}, nil
}

// Tree returns the widget tree.
func (a *App) Tree() *Tree {
	return a.tree
}

// State returns the current lifecycle state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Frames returns the number of frames rendered so far.
func (a *App) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

func (a *App) setState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
}

// Run takes over the terminal and loops until the cancel key is pressed or
// ctx is cancelled. The terminal is restored before Run returns, and before a
// contract violation in the tree is re-panicked.
func (a *App) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.mu.Lock()
	if a.state != StateIdle {
		a.mu.Unlock()
		return apperrors.Newf(apperrors.ErrCodeInternal, "app already %s", a.state)
	}
	a.mu.Unlock()

	if err := a.surface.EnableRaw(); err != nil {
		return err
	}
	a.setState(StateRunning)
	a.surface.Clear()
	a.logger.Info(logging.CategoryApp, "start", "", map[string]any{
		"cancel_key":  a.cancelKey.String(),
		"size_policy": string(a.policy),
		"ids":         a.tree.IDs(),
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			a.surface.Interrupt()
		case <-stop:
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			a.shutdown()
			perr := apperrors.FromPanic(r)
			a.logger.Error(logging.CategoryApp, "panic", perr.Error(), map[string]any{"code": string(perr.Code)})
			panic(r)
		}
	}()

	for {
		a.RenderFrame()

		ev := a.surface.ReadEvent()
		if ev == nil {
			a.shutdown()
			return ctx.Err()
		}
		msg := MessageFromEvent(ev)
		if msg == nil {
			continue
		}

		result := a.HandleMessage(msg)
		for _, cmd := range result.Commands {
			switch cmd.(type) {
			case Clear:
				a.surface.Clear()
			case Flush:
				a.surface.Flush()
			case Sync:
				a.surface.Sync()
			case Quit:
				a.shutdown()
				return ctx.Err()
			}
		}
	}
}

func (a *App) shutdown() {
	a.surface.Clear()
	a.surface.Flush()
	a.surface.DisableRaw()
	a.setState(StateTerminated)
	a.logger.Info(logging.CategoryApp, "stop", "", map[string]any{"frames": a.Frames()})
}

// HandleMessage dispatches one message against the tree and returns the
// surface effects the loop should apply.
func (a *App) HandleMessage(msg Message) HandleResult {
	switch m := msg.(type) {
	case ResizeMsg:
		a.logger.Debug(logging.CategoryDispatch, "resize", "", map[string]any{"width": m.Width, "height": m.Height})
		return WithCommands(Clear{}, Sync{})
	case MouseMsg:
		return a.handleMouse(m)
	case KeyMsg:
		if a.cancelKey.Matches(m.Event()) {
			return WithCommand(Quit{})
		}
		return Unhandled()
	case InterruptMsg:
		return WithCommand(Quit{})
	default:
		return Unhandled()
	}
}

func (a *App) handleMouse(m MouseMsg) HandleResult {
	if !m.IsLeftPress() {
		return Unhandled()
	}
	a.mu.Lock()
	clickable := a.clickable
	a.mu.Unlock()
	if !clickable {
		a.logger.Debug(logging.CategoryDispatch, "click_ignored", "tree not on screen", map[string]any{"col": m.X, "row": m.Y})
		return Unhandled()
	}

	hits := a.tree.Click(m.X, m.Y)
	if len(hits) == 0 {
		return Unhandled()
	}

	result := Handled()
	for _, hit := range hits {
		a.logger.Info(logging.CategoryDispatch, "click", hit.Text, map[string]any{
			"col":    m.X,
			"row":    m.Y,
			"path":   hit.Path,
			"nested": hit.Nested,
		})
		if hit.Nested {
			result.Commands = append(result.Commands, Flush{})
		} else {
			result.Commands = append(result.Commands, Clear{})
		}
	}
	return result
}

// MinSize returns the terminal size below which the size policy applies.
func (a *App) MinSize() (cols, rows int) {
	cols, rows = a.minWidth, a.minHeight
	if cols == 0 || rows == 0 {
		c, r := widget.MinSize(a.tree.Root())
		if cols == 0 {
			cols = c
		}
		if rows == 0 {
			rows = r
		}
	}
	return cols, rows
}

// RenderFrame draws one frame covering the whole terminal and flushes it.
func (a *App) RenderFrame() {
	w, h := a.surface.Size()
	minCols, minRows := a.MinSize()

	tooSmall := int(w) < minCols || int(h) < minRows
	clickable := true
	if tooSmall && a.policy == SizePolicyNotice {
		a.surface.Clear()
		a.drawNotice(int(w), int(h), minCols, minRows)
		clickable = false
	} else {
		if tooSmall {
			a.logger.Debug(logging.CategoryRender, "overlap", "terminal below minimum size", map[string]any{
				"width": int(w), "height": int(h), "min_width": minCols, "min_height": minRows,
			})
		}
		a.tree.Root().Render(a.surface, widget.NewRect(0, 0, w, h))
	}
	a.surface.Flush()

	a.mu.Lock()
	a.clickable = clickable
	a.frames++
	a.mu.Unlock()
}

// NoticeText is the first line shown when the terminal is too small.
func NoticeText(width, height, minCols, minRows int) string {
	return fmt.Sprintf("terminal too small: %dx%d, need %dx%d", width, height, minCols, minRows)
}

func (a *App) drawNotice(width, height, minCols, minRows int) {
	a.surface.Draw(0, 0, NoticeText(width, height, minCols, minRows))
	if height >= 2 {
		a.surface.Draw(0, 1, "press "+a.cancelKey.String()+" to quit")
	}
}
