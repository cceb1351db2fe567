package vdom

import (
	"sort"
	"testing"
)

func addressed(t *testing.T, root *Node) *Node {
	t.Helper()
	if err := AssignAddresses(root); err != nil {
		t.Fatal(err)
	}
	return clean(root)
}

func keys(m map[string]*Node) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestDirtyKey(t *testing.T) {
	tests := map[string]string{
		".0":     RootKey,
		".0.3":   ".0",
		".0.3.1": ".0.3",
	}
	for addr, want := range tests {
		if got := DirtyKey(addr); got != want {
			t.Errorf("DirtyKey(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestFindDirtyFreshTree(t *testing.T) {
	root := El("div", nil, El("p", nil, "a"), El("p", nil, "b"))
	if err := AssignAddresses(root); err != nil {
		t.Fatal(err)
	}

	got := FindDirty(root)
	if len(got) != 1 || got[RootKey] != root {
		t.Errorf("FindDirty() keys = %v, want [root]", keys(got))
	}
}

func TestFindDirtyClean(t *testing.T) {
	root := addressed(t, El("div", nil, El("p", nil, "a")))
	if got := FindDirty(root); len(got) != 0 {
		t.Errorf("FindDirty() = %v, want empty", keys(got))
	}
}

func TestFindDirtyKeyedByParent(t *testing.T) {
	root := addressed(t, El("div", nil,
		El("p", nil, "a"),
		El("ul", nil, El("li", nil, "x"), El("li", nil, "y")),
	))
	li := root.Children.Nodes[1].Children.Nodes[1]
	li.Dirty = true

	got := FindDirty(root)
	if len(got) != 1 || got[".0.1"] != li {
		t.Errorf("FindDirty() keys = %v, want [.0.1]", keys(got))
	}
}

func TestFindDirtySuppressesDescendants(t *testing.T) {
	root := addressed(t, El("div", nil,
		El("section", nil,
			El("article", nil, El("p", nil, "deep")),
		),
		El("aside", nil, El("p", nil, "side")),
	))
	section := root.Children.Nodes[0]
	article := section.Children.Single()
	deep := article.Children.Single()
	sideP := root.Children.Nodes[1].Children.Single()

	article.Dirty = true
	deep.Dirty = true
	sideP.Dirty = true

	got := FindDirty(root)
	want := []string{".0.0", ".0.1"}
	if k := keys(got); len(k) != len(want) || k[0] != want[0] || k[1] != want[1] {
		t.Fatalf("FindDirty() keys = %v, want %v", k, want)
	}
	if got[".0.0"] != article {
		t.Error("highest dirty node should win")
	}

	for ka := range got {
		for kb := range got {
			if ka != kb && IsAncestorAddress(ka, kb) {
				t.Errorf("keys %q and %q overlap", ka, kb)
			}
		}
	}
}

func TestFindDirtySiblingsShareKey(t *testing.T) {
	root := addressed(t, El("ul", nil, El("li", nil, "a"), El("li", nil, "b")))
	root.Children.Nodes[0].Dirty = true
	root.Children.Nodes[1].Dirty = true

	got := FindDirty(root)
	if len(got) != 1 || got[".0"] != root.Children.Nodes[0] {
		t.Errorf("FindDirty() keys = %v, want [.0] with the first item", keys(got))
	}
}

func TestFindDirtyPrefixIsNotAncestor(t *testing.T) {
	children := make([]any, 12)
	for i := range children {
		children[i] = El("div", nil, El("span", nil, "x"))
	}
	root := addressed(t, El("main", nil, children...))

	root.Children.Nodes[1].Children.Single().Dirty = true  // .0.1.0, key .0.1
	root.Children.Nodes[10].Children.Single().Dirty = true // .0.10.0, key .0.10

	got := FindDirty(root)
	if k := keys(got); len(k) != 2 || k[0] != ".0.1" || k[1] != ".0.10" {
		t.Errorf("FindDirty() keys = %v, want [.0.1 .0.10]", k)
	}
}

func TestFindDirtyRootStopsWalk(t *testing.T) {
	root := addressed(t, El("div", nil, El("p", nil, "a")))
	root.Dirty = true
	root.Children.Single().Dirty = true

	got := FindDirty(root)
	if len(got) != 1 || got[RootKey] != root {
		t.Errorf("FindDirty() keys = %v, want [root]", keys(got))
	}
}

func TestFindDirtyLaterAncestorKeyWins(t *testing.T) {
	root := addressed(t, El("div", nil,
		El("p", nil, "a"),
		El("section", nil, El("b", nil, "x")),
		El("p", nil, "c"),
	))
	inner := root.Children.Nodes[1].Children.Single() // .0.1.0, key .0.1
	last := root.Children.Nodes[2]                    // .0.2, key .0
	inner.Dirty = true
	last.Dirty = true

	got := FindDirty(root)
	if len(got) != 1 || got[".0"] != last {
		t.Errorf("FindDirty() keys = %v, want [.0]", keys(got))
	}
}

func TestResolveTree(t *testing.T) {
	item := mustClass(t, "Item", ClassOptions{
		Render: func(*Component) *Node { return El("li", nil, "item") },
	})
	root := El("ul", nil, Comp(item, nil), Comp(item, nil))

	if err := ResolveTree(root); err != nil {
		t.Fatal(err)
	}
	for i, c := range root.Children.Nodes {
		if c.Tag.IsComponent() {
			t.Errorf("child %d still a placeholder", i)
		}
		if c.Address != "" {
			t.Errorf("child %d was addressed: %q", i, c.Address)
		}
	}
}
