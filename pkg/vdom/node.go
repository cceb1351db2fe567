package vdom

import "fmt"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, or a component placeholder
	KindText                // Plain value inserted verbatim
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// TagKind distinguishes element names from component factories.
type TagKind uint8

const (
	TagNone TagKind = iota
	TagElement
	TagComponent
)

// Tag is either an element name or a component factory.
// The zero Tag is invalid.
type Tag struct {
	kind    TagKind
	name    string
	factory Factory
}

// ElementTag returns a tag for a plain element such as "div".
func ElementTag(name string) Tag {
	if name == "" {
		return Tag{}
	}
	return Tag{kind: TagElement, name: name}
}

// ComponentTag returns a tag that is resolved by invoking f.
func ComponentTag(f Factory) Tag {
	if f == nil {
		return Tag{}
	}
	return Tag{kind: TagComponent, factory: f}
}

// Kind returns the tag variant.
func (t Tag) Kind() TagKind { return t.kind }

// Name returns the element name, or "" for component tags.
func (t Tag) Name() string { return t.name }

// Factory returns the component factory, or nil for element tags.
func (t Tag) Factory() Factory { return t.factory }

// IsZero reports whether the tag is unset.
func (t Tag) IsZero() bool { return t.kind == TagNone }

// IsComponent reports whether the tag refers to a component factory.
func (t Tag) IsComponent() bool { return t.kind == TagComponent }

// Equal reports whether two tags name the same element or the same factory.
func (t Tag) Equal(o Tag) bool {
	if t.kind != o.kind {
		return false
	}
	if t.kind == TagComponent {
		return t.factory == o.factory
	}
	return t.name == o.name
}

// String returns the element name or a description of the factory.
func (t Tag) String() string {
	switch t.kind {
	case TagElement:
		return t.name
	case TagComponent:
		if n, ok := t.factory.(interface{ DisplayName() string }); ok {
			return "<" + n.DisplayName() + ">"
		}
		return fmt.Sprintf("<%T>", t.factory)
	default:
		return ""
	}
}

// Factory produces an element subtree from external attributes and children.
// Implementations must be comparable (pointer types) so that Match can
// compare component tags by identity.
type Factory interface {
	Create(attrs Attrs, children Children) (*Node, error)
}

// Attrs holds element attributes.
type Attrs map[string]any

// Event is passed to handlers when the host fires a DOM event.
type Event struct {
	Type    string            // "click", "keyup", ...
	Address string            // data-id of the element that received the event
	Value   string            // Current value of the element, if any
	Key     string            // Key name for keyboard events
	Data    map[string]string // Host-specific extras
}

// Handler reacts to an event.
type Handler func(e *Event)

// Shape describes how many children an element holds.
type Shape uint8

const (
	ShapeNone   Shape = iota // children absent
	ShapeSingle              // exactly one child, stored in Nodes[0]
	ShapeList                // ordered sequence, possibly empty
)

// Children is the child slot of an element.
type Children struct {
	Shape Shape
	Nodes []*Node
}

// NoChildren returns an absent child slot.
func NoChildren() Children { return Children{} }

// SingleChild returns a slot holding exactly n.
func SingleChild(n *Node) Children {
	if n == nil {
		return Children{}
	}
	return Children{Shape: ShapeSingle, Nodes: []*Node{n}}
}

// ChildList returns a sequence slot.
func ChildList(nodes ...*Node) Children {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return Children{Shape: ShapeList, Nodes: out}
}

// Len returns the number of children.
func (c Children) Len() int { return len(c.Nodes) }

// IsAbsent reports whether there are no children at all (not even an empty list).
func (c Children) IsAbsent() bool { return c.Shape == ShapeNone }

// Single returns the only child of a ShapeSingle slot.
func (c Children) Single() *Node {
	if c.Shape != ShapeSingle || len(c.Nodes) == 0 {
		return nil
	}
	return c.Nodes[0]
}

// Node is a virtual DOM node.
type Node struct {
	Kind     Kind
	Tag      Tag
	Attrs    Attrs
	Events   map[string]Handler
	Children Children
	Text     string // KindText only
	Dirty    bool   // markup not yet reflected in the host
	Address  string // dotted structural path, "" until assigned

	wrapped map[string]bool
}

// IsElement reports whether n is a non-nil element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// HasEvents reports whether n declares any event handlers.
func (n *Node) HasEvents() bool {
	return n != nil && len(n.Events) > 0
}

// clone returns a shallow copy of n with its own Attrs and child slice.
// Grandchildren are shared.
func (n *Node) clone() *Node {
	cp := *n
	if n.Attrs != nil {
		cp.Attrs = make(Attrs, len(n.Attrs))
		for k, v := range n.Attrs {
			cp.Attrs[k] = v
		}
	}
	if n.Children.Nodes != nil {
		cp.Children.Nodes = append([]*Node(nil), n.Children.Nodes...)
	}
	return &cp
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children.Nodes {
		Walk(child, fn)
	}
}

// WrapEvents replaces every handler in the subtree that has not been wrapped
// before with wrap(handler). Handlers already wrapped keep their first owner.
func WrapEvents(root *Node, wrap func(Handler) Handler) {
	Walk(root, func(n *Node) bool {
		if n.Kind != KindElement {
			return false
		}
		for name, h := range n.Events {
			if n.wrapped[name] {
				continue
			}
			if n.wrapped == nil {
				n.wrapped = make(map[string]bool, len(n.Events))
			}
			n.Events[name] = wrap(h)
			n.wrapped[name] = true
		}
		return true
	})
}
