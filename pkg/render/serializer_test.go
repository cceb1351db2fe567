package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/vdomkit/pkg/vdom"
)

func addressed(t *testing.T, n *vdom.Node) *vdom.Node {
	t.Helper()
	if err := vdom.AssignAddresses(n); err != nil {
		t.Fatalf("AssignAddresses() error = %v", err)
	}
	return n
}

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.Node
		want string
	}{
		{
			name: "text",
			node: vdom.Text("Hello, World!"),
			want: "Hello, World!",
		},
		{
			name: "text is not escaped",
			node: vdom.El("p", nil, "<b>raw</b>"),
			want: "<p><b>raw</b></p>",
		},
		{
			name: "self-closing without children",
			node: vdom.El("br", nil),
			want: "<br />",
		},
		{
			name: "empty list is not self-closing",
			node: vdom.El("ul", nil, []*vdom.Node{}),
			want: "<ul></ul>",
		},
		{
			name: "className becomes class",
			node: vdom.El("div", vdom.Attrs{"className": "card"}, "x"),
			want: `<div class="card">x</div>`,
		},
		{
			name: "sorted attributes",
			node: vdom.El("a", vdom.Attrs{"title": "t", "href": "/x", "id": "link"}, "go"),
			want: `<a href="/x" id="link" title="t">go</a>`,
		},
		{
			name: "boolean attributes",
			node: vdom.El("input", vdom.Attrs{"disabled": true, "checked": false, "type": "checkbox"}),
			want: `<input disabled type="checkbox" />`,
		},
		{
			name: "empty string value",
			node: vdom.El("option", vdom.Attrs{"value": ""}, "none"),
			want: `<option value="">none</option>`,
		},
		{
			name: "numbers",
			node: vdom.El("td", vdom.Attrs{"colspan": 2}, 3.5),
			want: `<td colspan="2">3.5</td>`,
		},
		{
			name: "handlers are not attributes",
			node: vdom.El("button", vdom.Attrs{"onClick": func(*vdom.Event) {}}, "+"),
			want: `<button>+</button>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.node)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToHTMLWritesAddresses(t *testing.T) {
	tree := addressed(t, vdom.El("div", vdom.Attrs{"className": "start-tree"},
		"Tree Has Started",
		vdom.El("br", nil),
		vdom.El("div", vdom.Attrs{"className": "child"},
			vdom.El("span", nil, "deep"),
		),
	))

	got, err := ToHTML(tree)
	if err != nil {
		t.Fatal(err)
	}
	want := `<div class="start-tree" data-id=".0">Tree Has Started<br data-id=".0.1" />` +
		`<div class="child" data-id=".0.2"><span data-id=".0.2.0">deep</span></div></div>`
	if got != want {
		t.Errorf("ToHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestToHTMLMarksClean(t *testing.T) {
	tree := addressed(t, vdom.El("div", nil, vdom.El("p", nil, "a"), vdom.El("hr", nil)))
	if _, err := ToHTML(tree); err != nil {
		t.Fatal(err)
	}
	vdom.Walk(tree, func(n *vdom.Node) bool {
		if n.Dirty {
			t.Errorf("%v at %q still dirty", n.Tag, n.Address)
		}
		return true
	})
}

func TestToHTMLResolvesComponents(t *testing.T) {
	badge, err := vdom.CreateClass("StatusBadge", vdom.ClassOptions{
		Render: func(*vdom.Component) *vdom.Node {
			return vdom.El("span", vdom.Attrs{"className": "badge"}, "ok")
		},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ToHTML(vdom.El("p", nil, vdom.Comp(badge, vdom.Attrs{"title": "state"})))
	if err != nil {
		t.Fatal(err)
	}
	if want := `<p><span class="badge status-badge" title="state">ok</span></p>`; got != want {
		t.Errorf("ToHTML() = %q, want %q", got, want)
	}
}

func TestInnerHTML(t *testing.T) {
	tree := addressed(t, vdom.El("ul", nil, vdom.El("li", nil, "a"), vdom.El("li", nil, "b")))
	got, err := InnerHTML(tree)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<li data-id=".0.0">a</li><li data-id=".0.1">b</li>`; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
}

func TestToHooksKeepsEveryEvent(t *testing.T) {
	noop := func(*vdom.Event) {}
	tree := addressed(t, vdom.El("form", nil,
		vdom.El("input", vdom.Attrs{"onKeyUp": noop, "onChange": noop, "onFocus": noop}),
		vdom.El("button", vdom.Attrs{"onClick": noop}, "send"),
		vdom.El("p", nil, "no events"),
	))

	hooks := ToHooks(tree)
	if len(hooks) != 2 {
		t.Fatalf("hooks for %d addresses, want 2", len(hooks))
	}

	var names []string
	for _, h := range hooks[".0.0"] {
		if h.Address != ".0.0" || h.Handler == nil {
			t.Errorf("bad hook %+v", h)
		}
		names = append(names, h.Event)
	}
	if got := strings.Join(names, ","); got != "change,focus,keyup" {
		t.Errorf("events of .0.0 = %s, want change,focus,keyup", got)
	}
	if len(hooks[".0.1"]) != 1 || hooks[".0.1"][0].Event != "click" {
		t.Errorf("hooks of .0.1 = %+v", hooks[".0.1"])
	}
}

func TestToHooksSkipsUnaddressed(t *testing.T) {
	n := vdom.El("button", vdom.Attrs{"onClick": func(*vdom.Event) {}})
	if hooks := ToHooks(n); len(hooks) != 0 {
		t.Errorf("ToHooks() = %v, want empty", hooks)
	}
}
