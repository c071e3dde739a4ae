package render

// RenderOptions describe per-call settings. Renderers ignore the fields that
// do not apply to them.
type RenderOptions struct {
	// Indent is the indentation unit for structured output. Empty means two
	// spaces.
	Indent string
	// Template is inline template text.
	Template string
	// TemplateName names a template the engine loads. It wins over Template.
	TemplateName string
	// Data is merged into the template context next to the records.
	Data map[string]any
}

// IndentOrDefault returns the configured indent or two spaces.
func (o RenderOptions) IndentOrDefault() string {
	if o.Indent == "" {
		return "  "
	}
	return o.Indent
}
