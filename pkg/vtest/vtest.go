package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// RenderToString serializes a tree and returns the markup. Serializing marks
// the tree clean and resolves its component placeholders.
//
// Example:
//
//	html := vtest.RenderToString(tree)
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.Node) string {
	html, err := render.ToHTML(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.Node, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
// For class, value may be any one of the element's classes.
func ExpectAttribute(t testing.TB, node *vdom.Node, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, attr+`="`+value+`"`) {
		return
	}
	if attr == "class" && containsClass(html, value) {
		return
	}
	t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
}

func containsClass(html, class string) bool {
	for _, part := range strings.Split(html, `class="`)[1:] {
		end := strings.IndexByte(part, '"')
		if end < 0 {
			continue
		}
		for _, c := range strings.Fields(part[:end]) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
