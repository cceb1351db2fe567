package demo

import (
	"sort"
	"strconv"

	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// App is a demo application.
type App struct {
	Name        string
	Description string

	// Build creates a fresh tree whose classes are bound to r.
	Build func(r *render.Renderer) (*vdom.Node, error)
}

var apps = map[string]App{
	"hello": {
		Name:        "hello",
		Description: "a single div",
		Build:       buildHello,
	},
	"buttons": {
		Name:        "buttons",
		Description: "five component buttons in a list",
		Build:       buildButtons,
	},
	"counter": {
		Name:        "counter",
		Description: "a button that increments a counter",
		Build:       single("Counter", CounterOptions()),
	},
	"echo": {
		Name:        "echo",
		Description: "an input echoed into a span on keyup",
		Build:       single("Echo", EchoOptions()),
	},
	"tree": {
		Name:        "tree",
		Description: "nested elements mixed with text",
		Build:       buildTree,
	},
	"todo": {
		Name:        "todo",
		Description: "a list that grows on click",
		Build:       single("TodoList", TodoOptions()),
	},
}

// Apps returns every demo app ordered by name.
func Apps() []App {
	out := make([]App, 0, len(apps))
	for _, app := range apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the app called name.
func Lookup(name string) (App, bool) {
	app, ok := apps[name]
	return app, ok
}

// Names returns the app names in order.
func Names() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func single(name string, opts vdom.ClassOptions) func(r *render.Renderer) (*vdom.Node, error) {
	return func(r *render.Renderer) (*vdom.Node, error) {
		class, err := r.CreateClass(name, opts)
		if err != nil {
			return nil, err
		}
		return vdom.Comp(class, nil), nil
	}
}

func buildHello(*render.Renderer) (*vdom.Node, error) {
	return vdom.CreateElement(vdom.ElementTag("div"), nil, "Hello World!")
}

func buildButtons(r *render.Renderer) (*vdom.Node, error) {
	next := 0
	button, err := r.CreateClass("CustomButton", vdom.ClassOptions{
		InitState: func() any {
			next++
			return next
		},
		Render: func(c *vdom.Component) *vdom.Node {
			return vdom.El("button", vdom.Attrs{"className": "btn btn-primary"},
				vdom.El("span", nil, "Test Button #"+strconv.Itoa(c.State.(int))),
			)
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]any, 5)
	for i := range items {
		items[i] = vdom.Comp(button, nil)
	}
	return vdom.El("ul", vdom.Attrs{"className": "button-container"}, items...), nil
}

func buildTree(*render.Renderer) (*vdom.Node, error) {
	return vdom.El("div", vdom.Attrs{"className": "start-tree"},
		"Tree Has Started",
		vdom.El("br", nil),
		vdom.El("div", nil, "This is a Child"),
		vdom.El("br", nil),
		vdom.El("div", vdom.Attrs{"className": "child"},
			vdom.El("span", vdom.Attrs{"className": "child-of-child"}, "This is a Child span of a Div"),
		),
	), nil
}
