package render

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Patch describes one host element whose content a render cycle replaced.
type Patch struct {
	// Key is the dirty-region key: vdom.RootKey or the address of the
	// patched element.
	Key string

	// Target is the host element whose content was replaced.
	Target host.Node

	// Markup is the new content of Target.
	Markup string

	// Hooks are the handlers found in the new content.
	Hooks []Hook
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMiddleware appends middleware to the render cycle chain.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Renderer) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithPatchListener registers fn to be called after every applied patch.
// Listeners run synchronously inside the render cycle.
func WithPatchListener(fn func(Patch)) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.listeners = append(r.listeners, fn)
		}
	}
}

// Renderer mounts a tree into a host document and patches it on change.
//
// A Renderer is driven by one writer at a time. Starting a render while
// another one runs fails with V004; Mounted, Tree and Root are safe to call
// from any goroutine.
type Renderer struct {
	doc        host.Document
	logger     *slog.Logger
	middleware []Middleware
	listeners  []func(Patch)

	mu      sync.Mutex
	tree    *vdom.Node
	root    host.Node
	running bool
}

// New creates a Renderer that patches doc.
func New(doc host.Document, opts ...Option) *Renderer {
	r := &Renderer{
		doc:    doc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the host document the renderer patches.
func (r *Renderer) Document() host.Document { return r.doc }

// Mounted reports whether a tree has been rendered successfully.
func (r *Renderer) Mounted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree != nil
}

// Tree returns the mounted tree, or nil.
func (r *Renderer) Tree() *vdom.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree
}

// Root returns the host node the tree is mounted in, or nil.
func (r *Renderer) Root() host.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// CreateClass creates a component class whose stateful instances re-render
// through r when their event handlers run.
func (r *Renderer) CreateClass(displayName string, opts vdom.ClassOptions) (*vdom.Class, error) {
	return vdom.CreateClass(displayName, opts, r)
}

// Render mounts tree into root. Addresses are assigned, every dirty region
// is serialized into its host element and the handlers of the new content
// are attached. A fresh tree is a single region covering root. The tree is
// remembered only when the cycle succeeds.
func (r *Renderer) Render(tree *vdom.Node, root host.Node) error {
	if root == nil {
		return errors.New("V003")
	}
	if tree == nil || tree.Kind != vdom.KindElement {
		return errors.New("V001").WithDetail("Render needs an element tree")
	}

	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	c := &Cycle{Kind: CycleMount}
	err := r.run(c, func() error {
		return r.patch(c, tree, root)
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tree = tree
	r.root = root
	r.mu.Unlock()
	return nil
}

// Diff merges next into the mounted tree and patches the regions that
// changed. It does nothing while no tree is mounted.
func (r *Renderer) Diff(next *vdom.Node) error {
	r.mu.Lock()
	tree, root := r.tree, r.root
	r.mu.Unlock()
	if tree == nil || next == nil {
		return nil
	}

	if err := vdom.ResolveTree(next); err != nil {
		return err
	}

	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	c := &Cycle{Kind: CyclePatch}
	return r.run(c, func() error {
		c.Merges = vdom.Diff(tree, next)
		return r.patch(c, tree, root)
	})
}

func (r *Renderer) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return errors.New("V004")
	}
	r.running = true
	return nil
}

func (r *Renderer) end() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

func (r *Renderer) run(c *Cycle, final func() error) error {
	err := compose(c, r.middleware, final)
	if err != nil {
		return err
	}
	r.logger.Debug("render cycle",
		"kind", string(c.Kind),
		"merges", c.Merges,
		"regions", c.Regions,
		"bytes", c.Bytes,
		"hooks", c.Hooks,
	)
	return nil
}

// patch brings the host in line with the dirty regions of tree. Every
// region is serialized before the host is touched.
func (r *Renderer) patch(c *Cycle, tree *vdom.Node, root host.Node) error {
	if err := vdom.AssignAddresses(tree); err != nil {
		return err
	}

	regions := vdom.FindDirty(tree)
	keys := make([]string, 0, len(regions))
	for key := range regions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	patches := make([]Patch, 0, len(keys))
	for _, key := range keys {
		p, err := r.region(tree, root, key)
		if err != nil {
			return err
		}
		patches = append(patches, p)
	}

	for _, p := range patches {
		if err := r.doc.SetMarkup(p.Target, p.Markup); err != nil {
			return errors.New("R002").WithDetailf("region %s", p.Key).Wrap(err)
		}
		c.Regions++
		c.Bytes += len(p.Markup)

		attached, err := r.attach(p)
		c.Hooks += attached
		if err != nil {
			return err
		}

		for _, fn := range r.listeners {
			fn(p)
		}
	}
	return nil
}

// region serializes the content for key. The root region is the whole tree
// written into root. Any other region is the full child list of the element
// at that address, so siblings of the dirty node keep their markup.
func (r *Renderer) region(tree *vdom.Node, root host.Node, key string) (Patch, error) {
	if key == vdom.RootKey {
		markup, err := ToHTML(tree)
		if err != nil {
			return Patch{}, err
		}
		return Patch{Key: key, Target: root, Markup: markup, Hooks: collectHooks(tree)}, nil
	}

	parent := vdom.FindByAddress(tree, key)
	if parent == nil {
		return Patch{}, errors.New("R001").WithDetailf("no node at %s in the mounted tree", key)
	}
	target, ok := r.doc.FindByAttribute(root, vdom.AddressAttr, key)
	if !ok {
		return Patch{}, errors.New("R001").WithDetailf("no element with %s=%q", vdom.AddressAttr, key)
	}

	markup, err := InnerHTML(parent)
	if err != nil {
		return Patch{}, err
	}
	return Patch{Key: key, Target: target, Markup: markup, Hooks: childHooks(parent)}, nil
}

// attach binds the hooks of p to the new host elements, skipping event
// types that already have a handler.
func (r *Renderer) attach(p Patch) (int, error) {
	attached := 0
	for _, h := range p.Hooks {
		el, ok := r.doc.FindByAttribute(p.Target, vdom.AddressAttr, h.Address)
		if !ok {
			return attached, errors.New("R003").WithDetailf("no element with %s=%q for %s", vdom.AddressAttr, h.Address, h.Event)
		}
		if r.doc.HasEventHandler(el, h.Event) {
			continue
		}
		if err := r.doc.AttachEventHandler(el, h.Event, h.Handler); err != nil {
			return attached, errors.New("R003").WithDetailf("%s on %s", h.Event, h.Address).Wrap(err)
		}
		attached++
	}
	return attached, nil
}
