// Package template defines the renderer-agnostic template contract used for
// edit views, shortcode templates and the string-template helpers. The
// gotemplate subpackage provides the default pongo2-backed engine.
package template
