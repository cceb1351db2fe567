package render

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

func TestMiddlewareOrder(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(c *Cycle, next func() error) error {
			calls = append(calls, name+":before")
			err := next()
			calls = append(calls, name+":after")
			return err
		})
	}

	_, _, _ = mount(t, vdom.El("div", nil, "x"), WithMiddleware(mw("a"), mw("b")))

	want := "a:before,b:before,b:after,a:after"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
}

func TestMiddlewareSeesCounters(t *testing.T) {
	var cycles []Cycle
	observe := MiddlewareFunc(func(c *Cycle, next func() error) error {
		err := next()
		cycles = append(cycles, *c)
		return err
	})

	list := func(b string) *vdom.Node {
		return vdom.El("ul", vdom.Attrs{"className": "list"},
			vdom.El("li", vdom.Attrs{"onClick": func(*vdom.Event) {}}, "a"),
			vdom.El("li", nil, b),
		)
	}
	r, _, _ := mount(t, list("b"), WithMiddleware(observe))
	if err := r.Diff(list("c")); err != nil {
		t.Fatal(err)
	}

	if len(cycles) != 2 {
		t.Fatalf("observed %d cycles, want 2", len(cycles))
	}
	mountCycle, patchCycle := cycles[0], cycles[1]
	if mountCycle.Kind != CycleMount || mountCycle.Regions != 1 || mountCycle.Hooks != 1 || mountCycle.Bytes == 0 {
		t.Errorf("mount cycle = %+v", mountCycle)
	}
	if patchCycle.Kind != CyclePatch || patchCycle.Merges != 1 || patchCycle.Regions != 1 || patchCycle.Hooks != 1 {
		t.Errorf("patch cycle = %+v", patchCycle)
	}
}

func TestMiddlewareCanAbort(t *testing.T) {
	boom := stderrors.New("boom")
	deny := MiddlewareFunc(func(*Cycle, func() error) error { return boom })

	doc := memdom.New()
	root := doc.Container("app")
	r := New(doc, WithMiddleware(deny))

	if err := r.Render(vdom.El("div", nil, "x"), root); !stderrors.Is(err, boom) {
		t.Fatalf("Render() error = %v", err)
	}
	if got := doc.InnerHTML(root); got != "" {
		t.Errorf("host patched despite abort: %q", got)
	}
	if r.Mounted() {
		t.Error("aborted render must not mount")
	}
}

type ctxKey struct{}

func TestCycleContext(t *testing.T) {
	var got any
	set := MiddlewareFunc(func(c *Cycle, next func() error) error {
		c.SetContext(context.WithValue(c.Context(), ctxKey{}, "traced"))
		return next()
	})
	read := MiddlewareFunc(func(c *Cycle, next func() error) error {
		got = c.Context().Value(ctxKey{})
		return next()
	})

	_, _, _ = mount(t, vdom.El("div", nil), WithMiddleware(Chain(set, read)))
	if got != "traced" {
		t.Errorf("context value = %v", got)
	}
}
