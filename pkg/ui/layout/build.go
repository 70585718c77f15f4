package layout

import (
	"fmt"
	"os"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

// Builder turns documents into widget trees.
type Builder struct {
	Actions *Actions
	Logger  *logging.Logger
}

// NewBuilder returns a builder using the default actions.
func NewBuilder(logger *logging.Logger) *Builder {
	return &Builder{Actions: DefaultActions(), Logger: logger}
}

// Load reads, parses and builds the layout at path.
func (b *Builder) Load(path string) (*widget.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeLayoutParse, "failed to read layout").
			WithContext("path", path)
	}
	root, err := b.Compile(data)
	if err != nil {
		return nil, err
	}
	b.Logger.Info(logging.CategoryLayout, "loaded", path, nil)
	return root, nil
}

// Compile parses and builds a layout document.
func (b *Builder) Compile(data []byte) (*widget.Container, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

// Build converts a document. The root must be a container.
func (b *Builder) Build(doc *Document) (*widget.Container, error) {
	if kinds := doc.Root.kinds(); len(kinds) == 1 && kinds[0] != "vbox" && kinds[0] != "hbox" {
		return nil, invalid(&doc.Root, "root must be a vbox or hbox, not a %s", kinds[0])
	}
	w, err := b.build(&doc.Root)
	if err != nil {
		return nil, err
	}
	return w.(*widget.Container), nil
}

func (b *Builder) build(n *Node) (widget.Widget, error) {
	kinds := n.kinds()
	if len(kinds) != 1 {
		return nil, invalid(n, "widget must set exactly one of vbox, hbox, label or button, got %d", len(kinds))
	}
	switch kinds[0] {
	case "vbox", "hbox":
		return b.buildContainer(n)
	case "label":
		return b.buildLabel(n)
	case "button":
		return b.buildButton(n)
	default:
		return nil, invalid(n, "unknown widget kind %q", kinds[0])
	}
}

func (b *Builder) buildContainer(n *Node) (widget.Widget, error) {
	specs, horizontal := n.VBox, n.HBox != nil
	if horizontal {
		specs = n.HBox
	}

	children := make([]widget.Widget, 0, len(specs))
	for i := range specs {
		child, err := b.build(&specs[i])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	c := widget.VBox(children...)
	if horizontal {
		c = widget.HBox(children...)
	}
	if n.ID != nil {
		c.SetID(*n.ID)
	}
	if n.Wrap {
		c.Wrap()
	}
	return c, nil
}

func (b *Builder) buildLabel(n *Node) (widget.Widget, error) {
	spec := n.Label
	if spec.RID != nil || spec.OnClick != nil {
		return nil, invalid(n, "label %q cannot have rid or on_click; use a button", spec.Text)
	}
	align, err := parseAlign(n, spec, widget.AlignLeft)
	if err != nil {
		return nil, err
	}

	l := widget.NewLabel(spec.Text).Align(align)
	if spec.ID != nil {
		l.SetID(*spec.ID)
	}
	if spec.Wrap != nil && *spec.Wrap {
		l.Wrap()
	}
	return l, nil
}

func (b *Builder) buildButton(n *Node) (widget.Widget, error) {
	spec := n.Button
	align, err := parseAlign(n, spec, widget.AlignCenter)
	if err != nil {
		return nil, err
	}

	btn := widget.NewButton(spec.Text).Align(align)
	if spec.ID != nil {
		btn.SetID(*spec.ID)
	}
	if spec.RID != nil {
		btn.SetRelatedID(*spec.RID)
	}
	if spec.Wrap != nil && !*spec.Wrap {
		btn.NoWrap()
	}
	if spec.OnClick != nil {
		if spec.RID == nil {
			return nil, invalid(n, "button %q has on_click but no rid", spec.Text)
		}
		cb, err := b.actions().Callback(*spec.OnClick)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeLayoutInvalid, fmt.Sprintf("button %q", spec.Text)).
				WithContext("line", n.line)
		}
		btn.OnClick(cb)
	}
	return btn, nil
}

func (b *Builder) actions() *Actions {
	if b.Actions == nil {
		b.Actions = DefaultActions()
	}
	return b.Actions
}

func parseAlign(n *Node, spec *Leaf, def widget.Alignment) (widget.Alignment, error) {
	if spec.Align == "" {
		return def, nil
	}
	align, err := widget.ParseAlignment(spec.Align)
	if err != nil {
		return def, apperrors.Wrap(err, apperrors.ErrCodeLayoutInvalid, "invalid alignment").
			WithContext("line", n.line)
	}
	return align, nil
}

func invalid(n *Node, format string, args ...any) *apperrors.Error {
	return apperrors.Newf(apperrors.ErrCodeLayoutInvalid, format, args...).WithContext("line", n.line)
}
