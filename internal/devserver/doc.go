// Package devserver serves a demo app mounted in an in-memory document.
//
// The server renders the app once at startup and keeps the renderer alive.
// Events posted to /dispatch run the app's handlers, and every patch the
// renderer applies is pushed to websocket clients on /ws:
//
//	{"type":"patch","target":".0","markup":"<li data-id=\".0.0\">a</li>"}
//
// target is the data-id of the element whose content was replaced, or
// "root" for the mount container.
package devserver
