// Package render turns generated records into output formats. A Registry maps
// format names to Renderer implementations; json and yaml live here and the
// template-backed renderers live in render/template.
package render
