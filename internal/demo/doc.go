// Package demo holds the sample applications served by the dev server and
// rendered by the CLI. Each app builds its tree against a renderer so that
// stateful components are bound to it.
package demo
