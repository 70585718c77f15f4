// Package layout builds widget trees from YAML documents.
//
//	root:
//	  vbox:
//	    - label: {text: "Counter: 0", id: 1337, align: center, wrap: true}
//	    - button: {text: "Click me!", rid: 1337, on_click: {action: increment}}
package layout

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

// Document is a parsed layout file.
type Document struct {
	Root Node `yaml:"root"`
}

// Node is one widget: exactly one of VBox, HBox, Label or Button is set.
// An empty container needs a non-nil slice, e.g. VBox: []Node{}.
type Node struct {
	VBox   []Node
	HBox   []Node
	Label  *Leaf
	Button *Leaf

	// ID and Wrap apply to containers; leaves carry their own.
	ID   *int
	Wrap bool

	line int
}

// Leaf describes a label or button.
type Leaf struct {
	Text    string  `yaml:"text"`
	ID      *int    `yaml:"id"`
	RID     *int    `yaml:"rid"`
	Align   string  `yaml:"align"`
	Wrap    *bool   `yaml:"wrap"`
	OnClick *Action `yaml:"on_click"`
}

// Action names a registered callback and its arguments.
type Action struct {
	Action string `yaml:"action"`
	Text   string `yaml:"text"`
}

var (
	kindKeys   = []string{"vbox", "hbox", "label", "button"}
	nodeKeys   = append([]string{"id", "wrap"}, kindKeys...)
	leafKeys   = []string{"text", "id", "rid", "align", "wrap", "on_click"}
	actionKeys = []string{"action", "text"}
)

// Kind returns the node's widget kind, or "" unless exactly one kind is set.
func (n *Node) Kind() string {
	kinds := n.kinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func (n *Node) kinds() []string {
	var kinds []string
	if n.VBox != nil {
		kinds = append(kinds, "vbox")
	}
	if n.HBox != nil {
		kinds = append(kinds, "hbox")
	}
	if n.Label != nil {
		kinds = append(kinds, "label")
	}
	if n.Button != nil {
		kinds = append(kinds, "button")
	}
	return kinds
}

// Line returns the source line of the node.
func (n *Node) Line() int { return n.line }

// UnmarshalYAML decodes a node, rejecting unknown keys and nodes that name
// zero or several widget kinds.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: widget must be a mapping with one of %s", value.Line, strings.Join(kindKeys, ", "))
	}
	if err := checkKeys(value, nodeKeys); err != nil {
		return err
	}

	n.line = value.Line
	var kind string
	for i := 0; i < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		var err error
		switch key {
		case "vbox", "hbox", "label", "button":
			if kind != "" {
				return fmt.Errorf("line %d: widget has both %s and %s", value.Content[i].Line, kind, key)
			}
			kind = key
			err = n.decodeKind(key, val)
		case "id":
			err = val.Decode(&n.ID)
		case "wrap":
			err = val.Decode(&n.Wrap)
		}
		if err != nil {
			return err
		}
	}

	if kind == "" {
		return fmt.Errorf("line %d: widget must have one of %s", value.Line, strings.Join(kindKeys, ", "))
	}
	if kind == "label" || kind == "button" {
		if n.ID != nil || n.Wrap {
			return fmt.Errorf("line %d: put id and wrap inside the %s", value.Line, kind)
		}
	}
	return nil
}

func (n *Node) decodeKind(kind string, val *yaml.Node) error {
	switch kind {
	case "vbox":
		n.VBox = []Node{}
		if err := val.Decode(&n.VBox); err != nil {
			return err
		}
		if n.VBox == nil {
			n.VBox = []Node{}
		}
		return nil
	case "hbox":
		n.HBox = []Node{}
		if err := val.Decode(&n.HBox); err != nil {
			return err
		}
		if n.HBox == nil {
			n.HBox = []Node{}
		}
		return nil
	case "label":
		n.Label = &Leaf{}
		return n.Label.decode(val)
	default:
		n.Button = &Leaf{}
		return n.Button.decode(val)
	}
}

func (l *Leaf) decode(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		// Shorthand: `label: Hello`.
		l.Text = value.Value
		return nil
	}
	if err := checkKeys(value, leafKeys); err != nil {
		return err
	}
	if on := mappingValue(value, "on_click"); on != nil {
		if err := checkKeys(on, actionKeys); err != nil {
			return err
		}
	}
	return value.Decode(l)
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func checkKeys(m *yaml.Node, allowed []string) error {
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", m.Line)
	}
	for i := 0; i < len(m.Content); i += 2 {
		key := m.Content[i]
		if !contains(allowed, key.Value) {
			sorted := append([]string(nil), allowed...)
			sort.Strings(sorted)
			return fmt.Errorf("line %d: field %s not found (valid: %s)", key.Line, key.Value, strings.Join(sorted, ", "))
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Parse decodes a layout document.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a layout document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, apperrors.New(apperrors.ErrCodeLayoutParse, "layout document is empty")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeLayoutParse, "failed to parse layout")
	}
	if len(doc.Root.kinds()) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeLayoutParse, "layout document has no root").
			WithRemediation("start the document with `root:` followed by a vbox or hbox")
	}
	return &doc, nil
}
