package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Hook binds an event handler to the element at Address.
type Hook struct {
	Address string
	Event   string
	Handler vdom.Handler
}

// ToHTML serializes node and its descendants. Component placeholders are
// resolved on the way and serialized elements are marked clean.
func ToHTML(node *vdom.Node) (string, error) {
	var b strings.Builder
	if err := WriteHTML(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

// InnerHTML serializes only the children of node.
func InnerHTML(node *vdom.Node) (string, error) {
	var b strings.Builder
	if err := WriteChildren(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteHTML streams the serialization of node to w.
func WriteHTML(w io.Writer, node *vdom.Node) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindText:
		node.Dirty = false
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindElement:
		return writeElement(w, node)
	default:
		return fmt.Errorf("render: unknown node kind %v", node.Kind)
	}
}

// WriteChildren streams the serialization of node's children to w.
func WriteChildren(w io.Writer, node *vdom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Children.Nodes {
		if err := WriteHTML(w, child); err != nil {
			return err
		}
	}
	return nil
}

func writeElement(w io.Writer, node *vdom.Node) error {
	if err := vdom.Resolve(node); err != nil {
		return err
	}
	tag := node.Tag.Name()

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := writeAttributes(w, node); err != nil {
		return err
	}

	if node.Children.IsAbsent() {
		node.Dirty = false
		_, err := io.WriteString(w, " />")
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if err := WriteChildren(w, node); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}

	node.Dirty = false
	return nil
}

// writeAttributes writes the attributes of node in key order, the address
// included.
func writeAttributes(w io.Writer, node *vdom.Node) error {
	values := make(map[string]string, len(node.Attrs)+1)
	bare := make(map[string]bool)
	for key, value := range node.Attrs {
		if key == vdom.AddressAttr || value == nil {
			continue
		}

		switch key {
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		}

		if b, ok := value.(bool); ok {
			if b {
				values[key] = ""
				bare[key] = true
			}
			continue
		}
		values[key] = vdom.AttrString(value)
	}
	if node.Address != "" {
		values[vdom.AddressAttr] = node.Address
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if bare[key] {
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// ToHooks collects the event handlers of every addressed element of the
// tree, keyed by address. Each address keeps all of its events, ordered by
// event name.
func ToHooks(node *vdom.Node) map[string][]Hook {
	hooks := make(map[string][]Hook)
	for _, h := range collectHooks(node) {
		hooks[h.Address] = append(hooks[h.Address], h)
	}
	return hooks
}

// collectHooks lists the hooks of the tree in pre-order.
func collectHooks(node *vdom.Node) []Hook {
	var hooks []Hook
	vdom.Walk(node, func(n *vdom.Node) bool {
		if n.Kind != vdom.KindElement {
			return false
		}
		if n.Address == "" || len(n.Events) == 0 {
			return true
		}

		names := make([]string, 0, len(n.Events))
		for name := range n.Events {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			hooks = append(hooks, Hook{Address: n.Address, Event: name, Handler: n.Events[name]})
		}
		return true
	})
	return hooks
}

// childHooks lists the hooks below node, excluding node's own.
func childHooks(node *vdom.Node) []Hook {
	var hooks []Hook
	for _, child := range node.Children.Nodes {
		hooks = append(hooks, collectHooks(child)...)
	}
	return hooks
}
