package vdom

import (
	"strings"
	"unicode"

	"github.com/vango-dev/vdomkit/internal/errors"
)

// ClassOptions describes a component class.
type ClassOptions struct {
	// InitState returns the initial state of a new instance. It runs once
	// per instance. A class with InitState is stateful: its factory hands
	// new instances to the Binder instead of rendering them directly.
	InitState func() any

	// Render produces the element tree of an instance.
	Render func(c *Component) *Node
}

// Binder takes over rendering of stateful components so that their event
// handlers can trigger re-renders.
type Binder interface {
	Bind(c *Component) (*Node, error)
}

// Class is a component factory created by CreateClass.
type Class struct {
	displayName string
	className   string
	opts        ClassOptions
	binder      Binder
}

// CreateClass returns a factory for components named displayName. The
// dash-cased display name ("CustomButton" → "custom-button") is added as a
// class to every produced root. binder may be nil, in which case stateful
// instances are rendered directly.
func CreateClass(displayName string, opts ClassOptions, binder Binder) (*Class, error) {
	if displayName == "" {
		return nil, errors.New("V002")
	}
	if opts.Render == nil {
		return nil, errors.New("V006").WithDetailf("class %q", displayName)
	}
	return &Class{
		displayName: displayName,
		className:   DashCase(displayName),
		opts:        opts,
		binder:      binder,
	}, nil
}

// DisplayName returns the name the class was created with.
func (c *Class) DisplayName() string { return c.displayName }

// ClassName returns the CSS class attached to produced roots.
func (c *Class) ClassName() string { return c.className }

// Stateful reports whether instances carry state.
func (c *Class) Stateful() bool { return c.opts.InitState != nil }

// New creates an instance with initialized state without rendering it.
func (c *Class) New(attrs Attrs, children Children) *Component {
	comp := &Component{
		class:    c,
		attrs:    attrs,
		children: children,
	}
	if c.opts.InitState != nil {
		comp.State = c.opts.InitState()
	}
	return comp
}

// Create implements Factory.
func (c *Class) Create(attrs Attrs, children Children) (*Node, error) {
	comp := c.New(attrs, children)
	if comp.Stateful() && c.binder != nil {
		return c.binder.Bind(comp)
	}
	return comp.Render()
}

// Component is a live instance of a Class.
type Component struct {
	// State is the value returned by InitState, shared by every render
	// of this instance.
	State any

	class    *Class
	attrs    Attrs
	children Children
}

// Class returns the class the instance belongs to.
func (c *Component) Class() *Class { return c.class }

// Stateful reports whether the instance's class declares state.
func (c *Component) Stateful() bool { return c.class.Stateful() }

// Render runs the class's render function and decorates the produced root
// with the class name and the external attributes and children.
func (c *Component) Render() (*Node, error) {
	root := c.class.opts.Render(c)
	if root == nil || root.Kind != KindElement {
		return nil, errors.New("V006").WithDetailf("class %q rendered no element", c.class.displayName)
	}
	return decorate(root, c.class.className, c.attrs, c.children), nil
}

// decorate returns a copy of root carrying the component class, the
// external attributes and the external children. root is not modified.
func decorate(root *Node, className string, attrs Attrs, children Children) *Node {
	out := root.clone()
	if out.Attrs == nil {
		out.Attrs = make(Attrs)
	}

	if existing := AttrString(out.Attrs["className"]); existing != "" {
		out.Attrs["className"] = existing + " " + className
	} else {
		out.Attrs["className"] = className
	}

	for key, value := range attrs {
		if key == "className" {
			out.Attrs[key] = AttrString(out.Attrs[key]) + " " + AttrString(value)
			continue
		}
		out.Attrs[key] = value
	}

	appendChildren(out, children)
	return out
}

// appendChildren attaches extra beneath the deepest chain of single-element
// children below n. Nodes on that chain are copied before being changed.
func appendChildren(n *Node, extra Children) {
	if extra.Shape == ShapeNone {
		return
	}

	target := n
	for {
		only := soleElement(target.Children)
		if only == nil {
			break
		}
		cp := only.clone()
		target.Children.Nodes[0] = cp
		target = cp
	}

	if target.Children.Shape == ShapeNone {
		target.Children = Children{
			Shape: extra.Shape,
			Nodes: append([]*Node(nil), extra.Nodes...),
		}
		return
	}

	nodes := make([]*Node, 0, len(target.Children.Nodes)+len(extra.Nodes))
	nodes = append(nodes, target.Children.Nodes...)
	nodes = append(nodes, extra.Nodes...)
	target.Children = Children{Shape: ShapeList, Nodes: nodes}
}

func soleElement(c Children) *Node {
	if len(c.Nodes) != 1 || c.Nodes[0].Kind != KindElement {
		return nil
	}
	return c.Nodes[0]
}

// DashCase converts a display name such as "CustomButton" or "customButton"
// into "custom-button". Runs of capitals are kept together ("HTMLView" →
// "html-view").
func DashCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' || r == ' ' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
