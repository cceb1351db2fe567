package vdom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/vdomkit/internal/errors"
)

// CreateElement builds an element node. attrs may be nil; children may be
// nil, a *Node, a []*Node, a []any, a Children value or a plain value
// (string, number, bool, fmt.Stringer) that becomes a text child.
//
// Keys of the form "onXxx" holding a handler are moved into Events under
// "xxx". A "data-id" attribute pre-sets the node's address.
func CreateElement(tag Tag, attrs Attrs, children any) (*Node, error) {
	if tag.IsZero() {
		return nil, errors.New("V001").WithDetail("CreateElement was called without a tag")
	}

	node := &Node{
		Kind:  KindElement,
		Tag:   tag,
		Dirty: true,
	}

	if attrs != nil {
		node.Attrs = make(Attrs, len(attrs))
		for key, value := range attrs {
			if name, h, ok := eventAttr(key, value); ok {
				if node.Events == nil {
					node.Events = make(map[string]Handler)
				}
				node.Events[name] = h
				continue
			}
			if key == AddressAttr {
				node.Address = attrString(value)
				continue
			}
			node.Attrs[key] = value
		}
	}

	kids, err := toChildren(children)
	if err != nil {
		return nil, err
	}
	node.Children = kids

	return node, nil
}

// El is CreateElement for literal tag names. Children are given variadically:
// none means absent, one is a single child (a slice still counts as a list),
// more than one is a list. El panics on invalid input.
func El(name string, attrs Attrs, children ...any) *Node {
	return must(CreateElement(ElementTag(name), attrs, variadic(children)))
}

// Comp creates a placeholder element whose tag is a component factory.
// The factory runs when the tree is addressed or serialized.
func Comp(f Factory, attrs Attrs, children ...any) *Node {
	return must(CreateElement(ComponentTag(f), attrs, variadic(children)))
}

// Text creates a text node holding the string form of v.
func Text(v any) *Node {
	return &Node{Kind: KindText, Text: textOf(v), Dirty: true}
}

func must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

func variadic(children []any) any {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return children
	}
}

// toChildren normalizes the accepted child forms into a Children slot.
func toChildren(v any) (Children, error) {
	switch c := v.(type) {
	case nil:
		return Children{}, nil
	case Children:
		return c, nil
	case *Node:
		return SingleChild(c), nil
	case []*Node:
		return ChildList(c...), nil
	case []any:
		nodes := make([]*Node, 0, len(c))
		for i, item := range c {
			n, err := toNode(item)
			if err != nil {
				return Children{}, errors.New("V005").WithDetailf("child %d: %v", i, err)
			}
			if n != nil {
				nodes = append(nodes, n)
			}
		}
		return Children{Shape: ShapeList, Nodes: nodes}, nil
	default:
		n, err := toNode(c)
		if err != nil {
			return Children{}, errors.New("V005").WithDetail(err.Error())
		}
		return SingleChild(n), nil
	}
}

func toNode(v any) (*Node, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case *Node:
		return c, nil
	case string, fmt.Stringer, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Text(c), nil
	default:
		return nil, fmt.Errorf("unsupported child type %T", v)
	}
}

// eventAttr reports whether key/value declare an event handler.
func eventAttr(key string, value any) (string, Handler, bool) {
	if len(key) <= 2 || !strings.EqualFold(key[:2], "on") {
		return "", nil, false
	}
	var h Handler
	switch fn := value.(type) {
	case Handler:
		h = fn
	case func(*Event):
		h = fn
	case func():
		if fn == nil {
			return "", nil, false
		}
		h = func(*Event) { fn() }
	default:
		return "", nil, false
	}
	if h == nil {
		return "", nil, false
	}
	return strings.ToLower(key[2:]), h, true
}

func textOf(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func attrString(v any) string {
	if v == nil {
		return ""
	}
	return textOf(v)
}

// AttrString converts an attribute value to its markup form.
func AttrString(v any) string {
	return attrString(v)
}

// IsValidation reports whether err is a validation error raised for a
// malformed call (missing tag, display name or mount target).
func IsValidation(err error) bool {
	return errors.HasCategory(err, errors.CategoryValidation)
}
