package demo

import "github.com/vango-dev/vdomkit/pkg/vdom"

// Count is the state of a counter.
type Count struct {
	N int
}

// CounterOptions describes a counter: a "+" button at .0 and the count in a
// span at .1 below the component root.
func CounterOptions() vdom.ClassOptions {
	return vdom.ClassOptions{
		InitState: func() any { return &Count{} },
		Render: func(c *vdom.Component) *vdom.Node {
			st := c.State.(*Count)
			return vdom.El("div", nil,
				vdom.El("button", vdom.Attrs{
					"className": "increment",
					"onClick":   func(*vdom.Event) { st.N++ },
				}, "+"),
				vdom.El("span", vdom.Attrs{"className": "count"}, st.N),
			)
		},
	}
}

// EchoOptions describes an input whose value is echoed into a span.
func EchoOptions() vdom.ClassOptions {
	return vdom.ClassOptions{
		InitState: func() any { return new(string) },
		Render: func(c *vdom.Component) *vdom.Node {
			text := c.State.(*string)
			return vdom.El("div", nil,
				vdom.El("input", vdom.Attrs{
					"type":    "text",
					"onKeyUp": func(e *vdom.Event) { *text = e.Value },
				}),
				vdom.El("span", vdom.Attrs{"className": "output"}, *text),
			)
		},
	}
}

// Todos is the state of a todo list.
type Todos struct {
	Draft string
	Items []string
}

// TodoOptions describes a todo list: an input at .0, an add button at .1
// and the items in a list at .2.
func TodoOptions() vdom.ClassOptions {
	return vdom.ClassOptions{
		InitState: func() any { return &Todos{} },
		Render: func(c *vdom.Component) *vdom.Node {
			st := c.State.(*Todos)

			items := make([]*vdom.Node, 0, len(st.Items))
			for _, item := range st.Items {
				items = append(items, vdom.El("li", nil, item))
			}

			return vdom.El("div", nil,
				vdom.El("input", vdom.Attrs{
					"type":    "text",
					"onKeyUp": func(e *vdom.Event) { st.Draft = e.Value },
				}),
				vdom.El("button", vdom.Attrs{
					"onClick": func(*vdom.Event) {
						if st.Draft == "" {
							return
						}
						st.Items = append(st.Items, st.Draft)
						st.Draft = ""
					},
				}, "Add"),
				vdom.El("ul", vdom.Attrs{"className": "items"}, items),
			)
		},
	}
}
