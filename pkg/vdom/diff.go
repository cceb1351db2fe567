package vdom

import "reflect"

// Match reports whether next can be merged into old: the tags are equal and
// every attribute of old except the address is present in next with an
// equal value. Attributes that only next carries do not prevent a match.
// When old has an attribute map, even an empty one, next must have one too;
// addressed nodes always do.
func Match(old, next *Node) bool {
	if !old.IsElement() || !next.IsElement() {
		return false
	}
	if !old.Tag.Equal(next.Tag) {
		return false
	}
	if old.Attrs != nil && next.Attrs == nil {
		return false
	}
	for key, value := range old.Attrs {
		if key == AddressAttr {
			continue
		}
		nextValue, ok := next.Attrs[key]
		if !ok || !attrsEqual(value, nextValue) {
			return false
		}
	}
	return true
}

// Merge copies the child data of next onto old and marks the nodes whose
// markup changed as dirty.
//
//   - next has no children: nothing happens.
//   - next has a single text child: old's text is overwritten, and old marked
//     dirty, only when the value differs.
//   - both hold lists of equal length: children are merged index by index.
//     Differing text items are overwritten and an item whose kind changed is
//     replaced; either marks old dirty.
//   - both hold a single element: the merge recurses once.
//
// Any other combination (list lengths differ, single versus list, text
// versus element) replaces old's children with next's and marks old dirty.
func Merge(old, next *Node) {
	if old == nil || next == nil {
		return
	}

	nc := next.Children
	oc := old.Children

	switch nc.Shape {
	case ShapeNone:
		return

	case ShapeSingle:
		child := nc.Single()
		if child == nil {
			replaceChildren(old, nc)
			return
		}
		current := oc.Single()
		if current == nil || current.Kind != child.Kind {
			replaceChildren(old, nc)
			return
		}
		if child.Kind == KindText {
			if current.Text != child.Text {
				current.Text = child.Text
				old.Dirty = true
			}
			return
		}
		Merge(current, child)

	case ShapeList:
		if oc.Shape != ShapeList || len(oc.Nodes) != len(nc.Nodes) {
			replaceChildren(old, nc)
			return
		}
		for i, child := range nc.Nodes {
			current := oc.Nodes[i]
			switch {
			case current.Kind != child.Kind:
				oc.Nodes[i] = child
				old.Dirty = true
			case child.Kind == KindText:
				if current.Text != child.Text {
					current.Text = child.Text
					old.Dirty = true
				}
			default:
				Merge(current, child)
			}
		}
	}
}

func replaceChildren(old *Node, next Children) {
	old.Children = Children{
		Shape: next.Shape,
		Nodes: append([]*Node(nil), next.Nodes...),
	}
	old.Dirty = true
}

// Diff searches the mounted tree old for nodes that Match next and merges
// next into each of them. The search does not descend below a merge point;
// where a node does not match, its children are compared against the same
// next tree. Diff returns the number of merge points.
func Diff(old, next *Node) int {
	if !old.IsElement() || next == nil {
		return 0
	}
	if Match(old, next) {
		Merge(old, next)
		return 1
	}
	merged := 0
	for _, child := range old.Children.Nodes {
		merged += Diff(child, next)
	}
	return merged
}

// attrsEqual compares two attribute values for equality.
func attrsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
