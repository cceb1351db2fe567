// Package host defines the capability a renderer needs from the document it
// patches.
//
// The renderer never touches a concrete DOM. It asks the Document to replace
// the content of a node with markup, to look nodes up by attribute and to
// attach event handlers. pkg/host/memdom provides an in-memory implementation
// backed by golang.org/x/net/html; other implementations can bridge a real
// browser or a remote client.
package host

import "github.com/vango-dev/vdomkit/pkg/vdom"

// Node is an opaque handle to a node of a host document. Only the Document
// that produced it knows its concrete type.
type Node any

// Document is the host document capability.
type Document interface {
	// SetMarkup replaces the content of n with the parsed markup. Handlers
	// attached to the replaced content are discarded. On error n is left
	// unchanged.
	SetMarkup(n Node, markup string) error

	// FindByAttribute returns the first descendant of n, in document order,
	// whose attribute attr equals value.
	FindByAttribute(n Node, attr, value string) (Node, bool)

	// HasEventHandler reports whether a handler for eventType is attached to n.
	HasEventHandler(n Node, eventType string) bool

	// AttachEventHandler attaches h to n for eventType. Attaching to a node
	// that already has a handler for eventType keeps the existing one.
	AttachEventHandler(n Node, eventType string, h vdom.Handler) error
}
