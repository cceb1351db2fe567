// Package vtest provides testing helpers for vdomkit components.
//
// A Harness mounts a tree into an in-memory document and drives it the way
// a user would:
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    counter := h.Class("Counter", demo.CounterOptions())
//	    h.Mount(vdom.Comp(counter, nil))
//
//	    h.Click(".0.0")
//	    h.ExpectText(".0.1", "1")
//	}
//
// Classes created through Harness.Class are bound to the harness renderer,
// so their handlers re-render and patch the document.
//
// # Render Assertions
//
// For trees that do not need a document, assert on serialized markup:
//
//	vtest.ExpectContains(t, tree, "Welcome")
//	vtest.ExpectAttribute(t, tree, "class", "btn-primary")
package vtest
