// Package vdom provides the virtual DOM tree used by vdomkit.
//
// A tree is built from Element and Text nodes. Elements carry a Tag that is
// either a plain element name or a component factory; factories are
// resolved into element subtrees when the tree is addressed.
//
// # Building trees
//
//	tree := vdom.El("ul", vdom.Attrs{"className": "button-container"},
//	    vdom.Comp(button, nil),
//	    vdom.Comp(button, nil),
//	)
//
// CreateElement is the checked form of El and reports a validation error
// for an empty tag. Attribute keys that start with "on" and hold a handler
// (onClick, onKeyup) are moved into Events under the lower-cased event name.
//
// # Addresses
//
// AssignAddresses gives every element a dotted structural address: the
// root is ".0" and the i-th child of the element at P is P + "." + i. An
// address, once assigned, is never recomputed for that node instance, so
// addresses stay stable across renders of an unchanged shape.
//
// # Reconciliation
//
// Diff walks a mounted tree looking for nodes that Match a freshly rendered
// tree and Merges the new child data into them, marking changed nodes
// dirty. FindDirty then reports the smallest set of regions whose markup
// must be regenerated, keyed by the address of the host element to patch.
package vdom
