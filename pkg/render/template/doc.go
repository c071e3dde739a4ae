// Package template renders records through a template engine. The engine is
// abstracted by TemplateRenderer; pongo provides the pongo2 implementation.
// The html renderer sanitises its output.
package template
