package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

// slotRef addresses one slot of one container.
type slotRef struct {
	parent *widget.Container
	index  int
}

// Tree owns a widget tree and resolves button targets through an id
// registry instead of searching the tree on every click.
type Tree struct {
	root     *widget.Container
	registry map[int]slotRef
	stale    bool
	logger   *logging.Logger
}

// NewTree indexes every identified widget under root. The root itself is
// not addressable. When an id is used more than once, the first widget in
// depth-first order wins.
func NewTree(root *widget.Container) *Tree {
	t := &Tree{root: root}
	t.rebuild()
	return t
}

// SetLogger sets the logger used for dispatch events.
func (t *Tree) SetLogger(logger *logging.Logger) {
	t.logger = logger
}

// Root returns the root container.
func (t *Tree) Root() *widget.Container {
	return t.root
}

// Find returns the widget registered under id.
func (t *Tree) Find(id int) (widget.Widget, bool) {
	ref, ok := t.registry[id]
	if !ok {
		return nil, false
	}
	return ref.parent.At(ref.index), true
}

// IDs returns the registered ids in ascending order.
func (t *Tree) IDs() []int {
	ids := make([]int, 0, len(t.registry))
	for id := range t.registry {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (t *Tree) rebuild() {
	t.registry = make(map[int]slotRef)
	t.walk(func(ref slotRef, w widget.Widget, _ string) {
		id, ok := w.ID()
		if !ok {
			return
		}
		if _, dup := t.registry[id]; dup {
			return
		}
		t.registry[id] = ref
	})
	t.stale = false
}

// walk visits every occupied slot in depth-first, insertion order.
func (t *Tree) walk(fn func(ref slotRef, w widget.Widget, path string)) {
	var visit func(c *widget.Container, path string)
	visit = func(c *widget.Container, path string) {
		for i := 0; i < c.Len(); i++ {
			w := c.At(i)
			if widget.IsEmpty(w) {
				continue
			}
			p := path + "/" + strconv.Itoa(i)
			fn(slotRef{parent: c, index: i}, w, p)
			if child, ok := w.(*widget.Container); ok {
				visit(child, p)
			}
		}
	}
	visit(t.root, "root")
}

// Hit records one button triggered by a click.
type Hit struct {
	Text   string
	Path   string
	Nested bool
}

// Click applies a left click at (col, row). Buttons directly under the root
// are checked first at each slot, then any container in that slot is searched
// recursively. Every button whose last rendered row contains the click is
// triggered once.
func (t *Tree) Click(col, row int) []Hit {
	var hits []Hit
	for i := 0; i < t.root.Len(); i++ {
		path := "root/" + strconv.Itoa(i)
		if hit, ok := t.press(t.root, i, col, row); ok {
			hit.Path = path
			hits = append(hits, hit)
		}
		if c, ok := t.root.At(i).(*widget.Container); ok {
			hits = append(hits, t.clickNested(c, path, col, row)...)
		}
	}
	return hits
}

func (t *Tree) clickNested(c *widget.Container, path string, col, row int) []Hit {
	var hits []Hit
	for i := 0; i < c.Len(); i++ {
		p := path + "/" + strconv.Itoa(i)
		if hit, ok := t.press(c, i, col, row); ok {
			hit.Path = p
			hit.Nested = true
			hits = append(hits, hit)
		}
		if child, ok := c.At(i).(*widget.Container); ok {
			hits = append(hits, t.clickNested(child, p, col, row)...)
		}
	}
	return hits
}

// press triggers the button in slot i if the click lands on it.
func (t *Tree) press(c *widget.Container, i, col, row int) (Hit, bool) {
	b, ok := c.At(i).(*widget.Button)
	if !ok || !b.Shape().HitRow(col, row) {
		return Hit{}, false
	}

	if rid, ok := b.RelatedID(); ok && b.Callback() != nil {
		t.sync(rid)
	}
	clicked := c.Take(i)
	c.Put(i, t.trigger(clicked, slotRef{parent: c, index: i}))
	if t.stale {
		t.rebuild()
	}
	return Hit{Text: b.Text()}, true
}

// sync rebuilds the registry unless the entry for id still points at a
// widget carrying id. Callbacks may rearrange a container's slots in place.
// It runs before the clicked button leaves its slot so that a self-targeting
// button is still found by the walk.
func (t *Tree) sync(id int) {
	if ref, ok := t.registry[id]; ok && ref.index < ref.parent.Len() {
		if w := ref.parent.At(ref.index); !widget.IsEmpty(w) {
			if got, ok := w.ID(); ok && got == id {
				return
			}
		}
	}
	t.rebuild()
}

// trigger runs the clicked button's callback against its target and returns
// the widget that goes back into the clicked slot.
func (t *Tree) trigger(clicked widget.Widget, at slotRef) widget.Widget {
	b, ok := clicked.(*widget.Button)
	if !ok || b.Callback() == nil {
		return clicked
	}

	rid, ok := b.RelatedID()
	if !ok {
		panic(apperrors.Newf(apperrors.ErrCodeMissingRelatedID, "button %q has a callback but no related id", b.Text()).
			WithRemediation("call SetRelatedID on the button, or set rid in the layout"))
	}

	ref, ok := t.registry[rid]
	if !ok {
		t.logger.Debug(logging.CategoryDispatch, "unresolved_rid", "no widget with the related id", map[string]any{
			"rid":    rid,
			"button": b.Text(),
		})
		return clicked
	}

	if ref == at {
		return t.apply(b.Callback(), clicked, rid)
	}

	target := ref.parent.Take(ref.index)
	ref.parent.Put(ref.index, t.apply(b.Callback(), target, rid))
	return clicked
}

// apply runs cb and marks the registry stale when the slot's identity
// changes, or when the target is a container whose slots cb may have changed.
func (t *Tree) apply(cb widget.Callback, target widget.Widget, rid int) widget.Widget {
	out := cb(target)
	if out == nil {
		panic(apperrors.Newf(apperrors.ErrCodeInvalidCallback, "callback for related id %d returned nil", rid).
			WithRemediation("return the widget passed to the callback, or a replacement"))
	}

	oldID, oldOK := target.ID()
	newID, newOK := out.ID()
	_, container := target.(*widget.Container)
	if container || out != target || oldID != newID || oldOK != newOK {
		t.stale = true
	}

	t.logger.Debug(logging.CategoryDispatch, "callback", "", map[string]any{
		"rid":      rid,
		"kind":     out.Kind().String(),
		"replaced": out != target,
	})
	return out
}

// Severity grades a problem found by Problems.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
)

// Problem describes a wiring mistake in the tree.
type Problem struct {
	Severity Severity
	Path     string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Path, p.Message)
}

// Problems reports buttons that cannot work as wired. A callback without a
// related id is fatal because clicking it panics. Related ids that resolve
// nowhere and duplicate ids are warnings.
func (t *Tree) Problems() []Problem {
	var problems []Problem
	seen := make(map[int]string)

	t.walk(func(_ slotRef, w widget.Widget, path string) {
		if id, ok := w.ID(); ok {
			if first, dup := seen[id]; dup {
				problems = append(problems, Problem{
					Severity: SeverityWarning,
					Path:     path,
					Message:  fmt.Sprintf("id %d is already used at %s; the first one is targeted", id, first),
				})
			} else {
				seen[id] = path
			}
		}

		b, ok := w.(*widget.Button)
		if !ok || b.Callback() == nil {
			return
		}
		rid, ok := b.RelatedID()
		switch {
		case !ok:
			problems = append(problems, Problem{
				Severity: SeverityFatal,
				Path:     path,
				Message:  fmt.Sprintf("button %q has a callback but no related id", b.Text()),
			})
		case !t.resolves(rid):
			problems = append(problems, Problem{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("button %q targets id %d, which no widget has", b.Text(), rid),
			})
		}
	})
	return problems
}

func (t *Tree) resolves(id int) bool {
	_, ok := t.registry[id]
	return ok
}

// Fatal returns the fatal problems joined into one error, or nil.
func Fatal(problems []Problem) error {
	var msgs []string
	for _, p := range problems {
		if p.Severity == SeverityFatal {
			msgs = append(msgs, p.Path+": "+p.Message)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return apperrors.New(apperrors.ErrCodeMissingRelatedID, strings.Join(msgs, "; ")).
		WithRemediation("give every button with a callback a related id")
}
