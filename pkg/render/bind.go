package render

import "github.com/vango-dev/vdomkit/pkg/vdom"

// Bind implements vdom.Binder. It renders c and wraps every handler of the
// produced subtree so that running it re-renders c and diffs the result
// into the mounted tree. Handlers that are already wrapped keep their owner.
func (r *Renderer) Bind(c *vdom.Component) (*vdom.Node, error) {
	root, err := c.Render()
	if err != nil {
		return nil, err
	}
	if err := vdom.ResolveTree(root); err != nil {
		return nil, err
	}
	r.wrap(c, root)
	return root, nil
}

func (r *Renderer) wrap(c *vdom.Component, root *vdom.Node) {
	vdom.WrapEvents(root, func(h vdom.Handler) vdom.Handler {
		return func(e *vdom.Event) {
			h(e)
			r.rerender(c)
		}
	})
}

// rerender renders c again and feeds the result into Diff. Errors cannot
// reach the caller of the handler, so they are logged.
func (r *Renderer) rerender(c *vdom.Component) {
	next, err := c.Render()
	if err == nil {
		err = vdom.ResolveTree(next)
	}
	if err == nil {
		r.wrap(c, next)
		err = r.Diff(next)
	}
	if err != nil {
		r.logger.Error("re-render failed",
			"component", c.Class().DisplayName(),
			"error", err,
		)
	}
}
