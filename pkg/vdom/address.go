package vdom

import (
	"strconv"
	"strings"
)

const (
	// AddressAttr is the host attribute that carries a node's address. It
	// doubles as the lookup key when patching dirty regions.
	AddressAttr = "data-id"

	// RootAddress is the address of every tree's root element.
	RootAddress = ".0"

	// RootKey is the dirty-region key that designates the mount target itself.
	RootKey = "root"
)

// AssignAddresses resolves component placeholders and gives every element of
// the tree a dotted address, depth-first and pre-order. A node that already
// has an address keeps it and its children are addressed beneath it.
// Text children are not addressed. Every element ends up with non-nil Attrs.
func AssignAddresses(root *Node) error {
	return assign(root, "", 0)
}

func assign(n *Node, parent string, index int) error {
	if n == nil || n.Kind != KindElement {
		return nil
	}

	if err := Resolve(n); err != nil {
		return err
	}

	if n.Address == "" {
		n.Address = parent + "." + strconv.Itoa(index)
	}
	if n.Attrs == nil {
		n.Attrs = make(Attrs)
	}

	for i, child := range n.Children.Nodes {
		if err := assign(child, n.Address, i); err != nil {
			return err
		}
	}
	return nil
}

// Resolve replaces a component placeholder in place with the element its
// factory produces: tag, attributes, events and children are taken over.
// Factories that produce further placeholders are resolved repeatedly.
// Element nodes with a plain tag are left untouched.
func Resolve(n *Node) error {
	for n != nil && n.Tag.IsComponent() {
		produced, err := n.Tag.Factory().Create(n.Attrs, n.Children)
		if err != nil {
			return err
		}
		n.Tag = produced.Tag
		n.Attrs = produced.Attrs
		n.Events = produced.Events
		n.wrapped = produced.wrapped
		n.Children = produced.Children
		n.Dirty = true
	}
	return nil
}

// ResolveTree resolves every component placeholder of the tree without
// assigning addresses.
func ResolveTree(root *Node) error {
	var err error
	Walk(root, func(n *Node) bool {
		if err != nil || n.Kind != KindElement {
			return false
		}
		err = Resolve(n)
		return err == nil
	})
	return err
}

// ParentAddress strips the last segment of addr: ".0.1.2" → ".0.1".
// The root's parent is "".
func ParentAddress(addr string) string {
	i := strings.LastIndexByte(addr, '.')
	if i <= 0 {
		return ""
	}
	return addr[:i]
}

// IsAncestorAddress reports whether anc is addr or one of its ancestors.
func IsAncestorAddress(anc, addr string) bool {
	if anc == "" {
		return true
	}
	return addr == anc || strings.HasPrefix(addr, anc+".")
}

// FindByAddress returns the element of the tree with the given address.
func FindByAddress(root *Node, addr string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil || n.Kind != KindElement {
			return false
		}
		if n.Address == addr {
			found = n
			return false
		}
		// Only descend into branches that can contain addr.
		return n.Address == "" || IsAncestorAddress(n.Address, addr)
	})
	return found
}
