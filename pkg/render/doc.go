// Package render turns virtual trees into host document content.
//
// The serializer writes a tree as markup: attributes sorted, className
// written as class, the node address written as data-id and elements
// without children in self-closing form. Text is written verbatim.
//
// The Renderer mounts a tree into a host.Document and keeps it in sync:
//
//	doc := memdom.New()
//	r := render.New(doc, render.WithLogger(logger))
//	if err := r.Render(tree, doc.Container("app")); err != nil {
//	    return err
//	}
//
// Every render cycle assigns addresses, collects the dirty regions of the
// tree, serializes each region into its host element and attaches the
// event handlers found in the new content. Diff merges a freshly rendered
// tree into the mounted one so that only changed regions are patched.
//
// # Stateful components
//
// Classes created through Renderer.CreateClass route their stateful
// instances through the renderer. Every event handler of such an instance
// runs the original handler, renders the instance again and diffs the
// result into the mounted tree.
//
// # Middleware
//
// Render cycles pass through the configured Middleware chain, which is how
// pkg/middleware adds logging, Prometheus metrics and tracing.
package render
