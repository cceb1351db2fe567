package demo_test

import (
	"testing"

	"github.com/vango-dev/vdomkit/internal/demo"
	"github.com/vango-dev/vdomkit/pkg/vtest"
)

func mountApp(t *testing.T, name string) *vtest.Harness {
	t.Helper()
	app, ok := demo.Lookup(name)
	if !ok {
		t.Fatalf("no app %q", name)
	}
	h := vtest.New(t)
	tree, err := app.Build(h.Renderer())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return h.Mount(tree)
}

func TestAppsSorted(t *testing.T) {
	names := demo.Names()
	want := []string{"buttons", "counter", "echo", "hello", "todo", "tree"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i, app := range demo.Apps() {
		if app.Name != want[i] || names[i] != want[i] {
			t.Errorf("app %d = %q, want %q", i, app.Name, want[i])
		}
		if app.Description == "" {
			t.Errorf("%s has no description", app.Name)
		}
	}
	if _, ok := demo.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestHello(t *testing.T) {
	h := mountApp(t, "hello")
	h.ExpectText(".0", "Hello World!")
}

func TestButtons(t *testing.T) {
	h := mountApp(t, "buttons")
	h.ExpectClass(".0.2", "btn-primary")
	h.ExpectClass(".0.2", "custom-button")
	h.ExpectText(".0.3.0", "Test Button #4")
}

func TestCounter(t *testing.T) {
	h := mountApp(t, "counter")
	h.ExpectClass(".0", "counter")
	h.ExpectText(".0.1", "0")

	h.Click(".0.0")
	h.ExpectText(".0.1", "1")
	h.Click(".0.0")
	h.ExpectText(".0.1", "2")
}

func TestEcho(t *testing.T) {
	h := mountApp(t, "echo")
	h.Type(".0.0", "hello")
	h.ExpectText(".0.1", "hello")
}

func TestTree(t *testing.T) {
	h := mountApp(t, "tree")
	h.ExpectText(".0.2", "This is a Child")
	h.ExpectClass(".0.4.0", "child-of-child")
}

func TestTodo(t *testing.T) {
	h := mountApp(t, "todo")
	h.ExpectClass(".0", "todo-list")

	h.Click(".0.1") // empty draft: nothing added
	if got := h.Text(".0.2"); got != "" {
		t.Fatalf("list = %q, want empty", got)
	}

	h.Type(".0.0", "milk")
	h.Click(".0.1")
	h.Type(".0.0", "eggs")
	h.Click(".0.1")

	h.ExpectText(".0.2.0", "milk")
	h.ExpectText(".0.2.1", "eggs")
}
