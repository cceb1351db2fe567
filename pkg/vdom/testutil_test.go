package vdom

// view is a comparable projection of a Node used in tests.
type view struct {
	Tag      string
	Attrs    map[string]any
	Events   []string
	Text     string
	Address  string
	Children []view
}

func project(n *Node) view {
	if n == nil {
		return view{}
	}
	if n.Kind == KindText {
		return view{Text: n.Text}
	}
	v := view{Tag: n.Tag.String(), Address: n.Address}
	if n.Attrs != nil {
		v.Attrs = map[string]any(n.Attrs)
	}
	for name := range n.Events {
		v.Events = append(v.Events, name)
	}
	for _, c := range n.Children.Nodes {
		v.Children = append(v.Children, project(c))
	}
	return v
}

// clean marks every node of the tree as already serialized.
func clean(root *Node) *Node {
	Walk(root, func(n *Node) bool {
		n.Dirty = false
		return true
	})
	return root
}

func mustClass(t interface{ Fatalf(string, ...any) }, name string, opts ClassOptions) *Class {
	c, err := CreateClass(name, opts, nil)
	if err != nil {
		t.Fatalf("CreateClass(%q) error = %v", name, err)
	}
	return c
}
