package memdom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

var (
	// ErrForeignNode is returned for handles that are not elements of the document.
	ErrForeignNode = errors.New("memdom: node does not belong to this document")

	// ErrNotFound is returned by Dispatch when no element carries the address.
	ErrNotFound = errors.New("memdom: no element with address")

	// ErrNoHandler is returned by Dispatch when the element has no handler
	// for the event.
	ErrNoHandler = errors.New("memdom: no handler attached")
)

// Document is an in-memory HTML document. It is safe for concurrent use.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	body     *html.Node
	handlers map[*html.Node]map[string]vdom.Handler
}

var _ host.Document = (*Document)(nil)

// New returns an empty document with an <html><body> skeleton.
func New() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := element("html")
	body := element("body")
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(body)

	return &Document{
		root:     root,
		body:     body,
		handlers: make(map[*html.Node]map[string]vdom.Handler),
	}
}

// Body returns the body element.
func (d *Document) Body() *html.Node { return d.body }

// Container appends an empty <div id="id"> to the body and returns it.
// It is the usual mount target. Every call adds a new container.
func (d *Document) Container(id string) *html.Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := element("div", html.Attribute{Key: "id", Val: id})
	d.body.AppendChild(el)
	return el
}

// SetMarkup implements host.Document.
func (d *Document) SetMarkup(n host.Node, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.element(n)
	if err != nil {
		return err
	}
	nodes, err := parseFragment(markup)
	if err != nil {
		return err
	}

	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		d.forget(c)
		el.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		el.AppendChild(c)
	}
	return nil
}

// FindByAttribute implements host.Document.
func (d *Document) FindByAttribute(n host.Node, attr, value string) (host.Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.element(n)
	if err != nil {
		return nil, false
	}
	found := findAttr(el, attr, value)
	if found == nil {
		return nil, false
	}
	return found, true
}

// HasEventHandler implements host.Document.
func (d *Document) HasEventHandler(n host.Node, eventType string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := n.(*html.Node)
	if !ok {
		return false
	}
	_, ok = d.handlers[el][eventType]
	return ok
}

// AttachEventHandler implements host.Document.
func (d *Document) AttachEventHandler(n host.Node, eventType string, h vdom.Handler) error {
	if h == nil {
		return fmt.Errorf("memdom: nil handler for %q", eventType)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.element(n)
	if err != nil {
		return err
	}
	byType := d.handlers[el]
	if byType == nil {
		byType = make(map[string]vdom.Handler)
		d.handlers[el] = byType
	}
	if _, exists := byType[eventType]; !exists {
		byType[eventType] = h
	}
	return nil
}

// Dispatch delivers eventType to the element whose address is addr, the way
// a browser delivers a user event. Type and Address of e are set from the
// arguments; an empty Value is taken from the element's value attribute.
// The handler runs without the document lock held, so it may patch the
// document.
func (d *Document) Dispatch(addr, eventType string, e vdom.Event) error {
	d.mu.Lock()
	el := findAttr(d.body, vdom.AddressAttr, addr)
	if el == nil {
		d.mu.Unlock()
		return fmt.Errorf("%w %s", ErrNotFound, addr)
	}
	h := d.handlers[el][eventType]
	if h == nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s on %s", ErrNoHandler, eventType, addr)
	}
	e.Type = eventType
	e.Address = addr
	if e.Value == "" {
		e.Value, _ = attr(el, "value")
	}
	d.mu.Unlock()

	h(&e)
	return nil
}

// Query returns the element whose address is addr.
func (d *Document) Query(addr string) (*html.Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findAttr(d.body, vdom.AddressAttr, addr)
	return el, el != nil
}

// Text returns the concatenated text content of n.
func (d *Document) Text(n *html.Node) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Attr returns the value of attribute key of n.
func (d *Document) Attr(n *html.Node, key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return attr(n, key)
}

// SetAttr sets attribute key of n, the way user input changes an input's value.
func (d *Document) SetAttr(n *html.Node, key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// HasClass reports whether class is one of n's classes.
func (d *Document) HasClass(n *html.Node, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// InnerHTML renders the children of n.
func (d *Document) InnerHTML(n *html.Node) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders n itself.
func (d *Document) OuterHTML(n *html.Node) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// HandlerCount returns the number of attached handlers.
func (d *Document) HandlerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, byType := range d.handlers {
		count += len(byType)
	}
	return count
}

// element checks that n is an element of this document. Callers hold d.mu.
func (d *Document) element(n host.Node) (*html.Node, error) {
	el, ok := n.(*html.Node)
	if !ok || el == nil || el.Type != html.ElementNode {
		return nil, ErrForeignNode
	}
	for p := el; p != nil; p = p.Parent {
		if p == d.root {
			return el, nil
		}
	}
	return nil, ErrForeignNode
}

// forget drops the handlers of n and its descendants. Callers hold d.mu.
func (d *Document) forget(n *html.Node) {
	delete(d.handlers, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// findAttr searches the descendants of n in document order.
func findAttr(n *html.Node, key, value string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if v, ok := attr(c, key); ok && v == value {
			return c
		}
		if found := findAttr(c, key, value); found != nil {
			return found
		}
	}
	return nil
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// parseFragment builds the node list described by markup. Start tags open
// elements unless they are void or self-closing; an end tag closes the
// nearest open element of that name. Elements still open at the end of the
// input are closed. Comments and doctypes are dropped.
func parseFragment(markup string) ([]*html.Node, error) {
	holder := &html.Node{Type: html.DocumentNode}
	stack := []*html.Node{holder}
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("memdom: parse markup: %w", err)
			}
			return detach(holder), nil

		case html.TextToken:
			stack[len(stack)-1].AppendChild(&html.Node{
				Type: html.TextNode,
				Data: z.Token().Data,
			})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			el := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			stack[len(stack)-1].AppendChild(el)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, el)
			}

		case html.EndTagToken:
			tok := z.Token()
			if voidElements[tok.Data] {
				continue
			}
			i := len(stack) - 1
			for i > 0 && stack[i].Data != tok.Data {
				i--
			}
			if i == 0 {
				return nil, fmt.Errorf("memdom: unexpected end tag </%s>", tok.Data)
			}
			stack = stack[:i]
		}
	}
}

func detach(holder *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := holder.FirstChild; c != nil; {
		next := c.NextSibling
		holder.RemoveChild(c)
		nodes = append(nodes, c)
		c = next
	}
	return nodes
}
