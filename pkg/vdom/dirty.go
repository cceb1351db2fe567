package vdom

// DirtyKey returns the region key for a dirty node at addr: the address of
// its parent, or RootKey when the node is the root.
func DirtyKey(addr string) string {
	parent := ParentAddress(addr)
	if parent == "" {
		return RootKey
	}
	return parent
}

// FindDirty collects the top-level dirty regions of an addressed tree. Each
// entry maps the key of the host element to patch (see DirtyKey) to the
// highest dirty node below it. A dirty node is skipped when an entry
// already covers its address, and entries its key covers are dropped, so no
// key is an ancestor of another. A dirty root makes the whole tree a single
// region and stops the walk.
func FindDirty(root *Node) map[string]*Node {
	found := make(map[string]*Node)
	findDirty(root, found)
	return found
}

func findDirty(n *Node, found map[string]*Node) {
	if !n.IsElement() {
		return
	}

	if n.Dirty {
		if !covered(found, n.Address) {
			key := DirtyKey(n.Address)
			for other := range found {
				if IsAncestorAddress(key, other) {
					delete(found, other)
				}
			}
			found[key] = n
		}
		if n.Address == RootAddress {
			return
		}
	}

	for _, child := range n.Children.Nodes {
		findDirty(child, found)
	}
}

func covered(found map[string]*Node, addr string) bool {
	for key := range found {
		if key == RootKey || IsAncestorAddress(key, addr) {
			return true
		}
	}
	return false
}
