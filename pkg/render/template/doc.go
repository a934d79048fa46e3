// Package template defines renderer-agnostic template interfaces. The
// gotemplate subpackage provides the pongo2-backed engine with the widget
// tags installed.
package template
