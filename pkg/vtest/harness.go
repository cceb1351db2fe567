package vtest

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Harness mounts trees into a memdom document for tests.
type Harness struct {
	t        testing.TB
	doc      *memdom.Document
	renderer *render.Renderer
	root     *html.Node
}

// Option configures a Harness.
type Option func(*harnessConfig)

type harnessConfig struct {
	rootID     string
	renderOpts []render.Option
}

// WithRootID sets the id of the mount container (default "app").
func WithRootID(id string) Option {
	return func(c *harnessConfig) {
		c.rootID = id
	}
}

// WithRenderOptions passes options to the renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *harnessConfig) {
		c.renderOpts = append(c.renderOpts, opts...)
	}
}

// New creates a harness with an empty document.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	config := harnessConfig{rootID: "app"}
	for _, opt := range opts {
		opt(&config)
	}

	doc := memdom.New()
	return &Harness{
		t:        t,
		doc:      doc,
		renderer: render.New(doc, config.renderOpts...),
		root:     doc.Container(config.rootID),
	}
}

// Doc returns the document.
func (h *Harness) Doc() *memdom.Document { return h.doc }

// Renderer returns the renderer.
func (h *Harness) Renderer() *render.Renderer { return h.renderer }

// Root returns the mount container.
func (h *Harness) Root() *html.Node { return h.root }

// Class creates a class bound to the harness renderer.
func (h *Harness) Class(name string, opts vdom.ClassOptions) *vdom.Class {
	h.t.Helper()
	c, err := h.renderer.CreateClass(name, opts)
	if err != nil {
		h.t.Fatalf("CreateClass(%q) error: %v", name, err)
	}
	return c
}

// Mount renders tree into the mount container.
func (h *Harness) Mount(tree *vdom.Node) *Harness {
	h.t.Helper()
	if err := h.renderer.Render(tree, h.root); err != nil {
		h.t.Fatalf("Render() error: %v", err)
	}
	return h
}

// Find returns the element at addr.
func (h *Harness) Find(addr string) *html.Node {
	h.t.Helper()
	n, ok := h.doc.Query(addr)
	if !ok {
		h.t.Fatalf("no element at %s, document:\n%s", addr, truncate(h.HTML(), 500))
	}
	return n
}

// Text returns the text content of the element at addr.
func (h *Harness) Text(addr string) string {
	h.t.Helper()
	return h.doc.Text(h.Find(addr))
}

// HasClass reports whether the element at addr has class.
func (h *Harness) HasClass(addr, class string) bool {
	h.t.Helper()
	return h.doc.HasClass(h.Find(addr), class)
}

// HTML returns the content of the mount container.
func (h *Harness) HTML() string {
	return h.doc.InnerHTML(h.root)
}

// Dispatch fires eventType on the element at addr.
func (h *Harness) Dispatch(addr, eventType string, e vdom.Event) {
	h.t.Helper()
	if err := h.doc.Dispatch(addr, eventType, e); err != nil {
		h.t.Fatalf("Dispatch(%s, %s) error: %v", addr, eventType, err)
	}
}

// Click fires a click on the element at addr.
func (h *Harness) Click(addr string) {
	h.t.Helper()
	h.Dispatch(addr, "click", vdom.Event{})
}

// Type sets the value of the input at addr and fires keyup with the last
// character typed.
func (h *Harness) Type(addr, value string) {
	h.t.Helper()
	h.doc.SetAttr(h.Find(addr), "value", value)

	key := ""
	if r := []rune(value); len(r) > 0 {
		key = string(r[len(r)-1])
	}
	h.Dispatch(addr, "keyup", vdom.Event{Value: value, Key: key})
}

// ExpectText asserts the text content of the element at addr.
func (h *Harness) ExpectText(addr, want string) {
	h.t.Helper()
	if got := h.Text(addr); got != want {
		h.t.Errorf("text at %s = %q, want %q", addr, got, want)
	}
}

// ExpectClass asserts that the element at addr has class.
func (h *Harness) ExpectClass(addr, class string) {
	h.t.Helper()
	if !h.HasClass(addr, class) {
		h.t.Errorf("element at %s lacks class %q: %s", addr, class, h.doc.OuterHTML(h.Find(addr)))
	}
}
