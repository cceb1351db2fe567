package vdom

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateClassRequiresDisplayName(t *testing.T) {
	_, err := CreateClass("", ClassOptions{Render: func(*Component) *Node { return El("div", nil) }}, nil)
	if !IsValidation(err) {
		t.Errorf("missing display name should fail validation, got %v", err)
	}
}

func TestCreateClassRequiresRender(t *testing.T) {
	_, err := CreateClass("Empty", ClassOptions{}, nil)
	if !IsValidation(err) {
		t.Errorf("missing render should fail validation, got %v", err)
	}
}

func TestClassRendersWithClassName(t *testing.T) {
	button := mustClass(t, "CustomButton", ClassOptions{
		Render: func(*Component) *Node { return El("button", nil, "Test Button") },
	})

	n, err := button.Create(nil, NoChildren())
	if err != nil {
		t.Fatal(err)
	}
	if n.Attrs["className"] != "custom-button" {
		t.Errorf("className = %v, want custom-button", n.Attrs["className"])
	}
	if n.Children.Single().Text != "Test Button" {
		t.Errorf("text = %q", n.Children.Single().Text)
	}
}

func TestClassAppendsToExistingClassName(t *testing.T) {
	button := mustClass(t, "customButton", ClassOptions{
		Render: func(*Component) *Node {
			return El("button", Attrs{"className": "btn btn-primary"})
		},
	})

	n, err := button.Create(Attrs{"className": "wide", "title": "go"}, NoChildren())
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Attrs["className"]; got != "btn btn-primary custom-button wide" {
		t.Errorf("className = %q", got)
	}
	if n.Attrs["title"] != "go" {
		t.Errorf("title = %v, want go", n.Attrs["title"])
	}
}

func TestClassExternalChildren(t *testing.T) {
	container := mustClass(t, "customContainer", ClassOptions{
		Render: func(*Component) *Node { return El("div", nil) },
	})

	placeholder := Comp(container, Attrs{"className": "another-class"},
		El("p", nil, "Hello,"),
		El("p", nil, "WORLD!"),
	)
	if placeholder.Children.Len() != 2 {
		t.Fatalf("placeholder children = %d, want 2", placeholder.Children.Len())
	}
	if placeholder.Attrs["className"] != "another-class" {
		t.Errorf("placeholder className = %v", placeholder.Attrs["className"])
	}

	n, err := container.Create(placeholder.Attrs, placeholder.Children)
	if err != nil {
		t.Fatal(err)
	}
	want := view{
		Tag:   "div",
		Attrs: map[string]any{"className": "custom-container another-class"},
		Children: []view{
			{Tag: "p", Children: []view{{Text: "Hello,"}}},
			{Tag: "p", Children: []view{{Text: "WORLD!"}}},
		},
	}
	if diff := cmp.Diff(want, project(n)); diff != "" {
		t.Errorf("rendered mismatch (-want +got):\n%s", diff)
	}
}

func TestClassChildrenGoBelowSingleChain(t *testing.T) {
	inner := El("span", nil, "label")
	card := mustClass(t, "Card", ClassOptions{
		Render: func(*Component) *Node {
			return El("section", nil, El("div", nil, inner))
		},
	})

	n, err := card.Create(nil, SingleChild(El("em", nil, "extra")))
	if err != nil {
		t.Fatal(err)
	}

	want := view{
		Tag:   "section",
		Attrs: map[string]any{"className": "card"},
		Children: []view{{
			Tag: "div",
			Children: []view{{
				Tag: "span",
				Children: []view{
					{Text: "label"},
					{Tag: "em", Children: []view{{Text: "extra"}}},
				},
			}},
		}},
	}
	if diff := cmp.Diff(want, project(n)); diff != "" {
		t.Errorf("rendered mismatch (-want +got):\n%s", diff)
	}

	if inner.Children.Len() != 1 {
		t.Errorf("render output was mutated: inner has %d children", inner.Children.Len())
	}
}

func TestClassChildrenNextToBranch(t *testing.T) {
	list := mustClass(t, "List", ClassOptions{
		Render: func(*Component) *Node {
			return El("ul", nil, El("li", nil, "a"), El("li", nil, "b"))
		},
	})

	n, err := list.Create(nil, SingleChild(El("li", nil, "c")))
	if err != nil {
		t.Fatal(err)
	}
	if n.Children.Len() != 3 || n.Children.Shape != ShapeList {
		t.Fatalf("children = %d (shape %v), want list of 3", n.Children.Len(), n.Children.Shape)
	}
}

type counterState struct{ count int }

func TestStateInitializedOncePerInstance(t *testing.T) {
	inits := 0
	cls := mustClass(t, "Counter", ClassOptions{
		InitState: func() any {
			inits++
			return &counterState{}
		},
		Render: func(c *Component) *Node {
			return El("span", nil, c.State.(*counterState).count)
		},
	})

	comp := cls.New(nil, NoChildren())
	for i := 0; i < 3; i++ {
		comp.State.(*counterState).count++
		n, err := comp.Render()
		if err != nil {
			t.Fatal(err)
		}
		if got, want := n.Children.Single().Text, fmt.Sprint(i+1); got != want {
			t.Errorf("render %d text = %q, want %q", i, got, want)
		}
	}
	if inits != 1 {
		t.Errorf("InitState calls = %d, want 1", inits)
	}
}

type recordingBinder struct {
	bound []*Component
}

func (b *recordingBinder) Bind(c *Component) (*Node, error) {
	b.bound = append(b.bound, c)
	return c.Render()
}

func TestStatefulClassUsesBinder(t *testing.T) {
	binder := &recordingBinder{}
	stateful, err := CreateClass("Stateful", ClassOptions{
		InitState: func() any { return 0 },
		Render:    func(*Component) *Node { return El("div", nil) },
	}, binder)
	if err != nil {
		t.Fatal(err)
	}
	stateless, err := CreateClass("Stateless", ClassOptions{
		Render: func(*Component) *Node { return El("div", nil) },
	}, binder)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := stateful.Create(nil, NoChildren()); err != nil {
		t.Fatal(err)
	}
	if _, err := stateless.Create(nil, NoChildren()); err != nil {
		t.Fatal(err)
	}

	if len(binder.bound) != 1 || binder.bound[0].Class() != stateful {
		t.Errorf("binder saw %d components, want only the stateful one", len(binder.bound))
	}
}

func TestRenderNilRoot(t *testing.T) {
	cls := mustClass(t, "Nothing", ClassOptions{Render: func(*Component) *Node { return nil }})
	if _, err := cls.Create(nil, NoChildren()); err == nil {
		t.Error("expected error when render returns nil")
	}
}

func TestDashCase(t *testing.T) {
	tests := map[string]string{
		"CustomButton":    "custom-button",
		"customButton":    "custom-button",
		"customContainer": "custom-container",
		"MyFancyButton":   "my-fancy-button",
		"HTMLView":        "html-view",
		"button":          "button",
		"Item2Row":        "item2-row",
		"todo_item":       "todo-item",
	}
	for in, want := range tests {
		if got := DashCase(in); got != want {
			t.Errorf("DashCase(%q) = %q, want %q", in, got, want)
		}
	}
}
