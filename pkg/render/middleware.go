package render

import "context"

// CycleKind distinguishes first renders from re-renders.
type CycleKind string

const (
	// CycleMount is a Render call.
	CycleMount CycleKind = "mount"

	// CyclePatch is a Diff call against a mounted tree.
	CyclePatch CycleKind = "patch"
)

// Cycle describes one render cycle. The counters are filled in while the
// cycle runs, so middleware reads them after calling next.
type Cycle struct {
	Kind CycleKind

	// Merges is the number of merge points Diff found. Zero for mounts.
	Merges int

	// Regions is the number of host elements patched.
	Regions int

	// Bytes is the total size of the markup written.
	Bytes int

	// Hooks is the number of event handlers newly attached.
	Hooks int

	ctx context.Context
}

// Context returns the context of the cycle.
func (c *Cycle) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// SetContext replaces the context of the cycle, e.g. to carry a span.
func (c *Cycle) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// Middleware wraps render cycles.
type Middleware interface {
	Handle(c *Cycle, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(c *Cycle, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *Cycle, next func() error) error {
	return f(c, next)
}

// Chain combines middleware into one, executed first to last.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(c *Cycle, next func() error) error {
		return compose(c, middleware, next)
	})
}

// compose runs mw in order with final at the end of the chain.
func compose(c *Cycle, mw []Middleware, final func() error) error {
	if len(mw) == 0 {
		return final()
	}

	chain := final
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(c, next)
		}
	}
	return chain()
}
