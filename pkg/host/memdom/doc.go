// Package memdom is an in-memory host document built on golang.org/x/net/html.
//
// It implements host.Document so that trees can be mounted, patched and
// driven without a browser: the CLI renders demos through it, the dev server
// keeps the live document in it, and pkg/vtest uses it for tests.
//
// Markup is parsed with the x/net/html tokenizer and assembled literally.
// A self-closing tag ("<div />") produces an empty element, as the renderer
// means it, rather than an open one as the HTML5 tree builder would.
package memdom
