// Package fractal turns domain values into plain nested structures (maps,
// slices and primitives) ready for JSON encoding. A Transformer maps a single
// value to its output fields, a Resource says whether one value or a sequence
// is being rendered, and a Manager walks the resource, honouring the scopes a
// caller asked to embed.
package fractal

// Transformer converts a single domain value into its output fields.
type Transformer interface {
	Transform(data any) (map[string]any, error)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(data any) (map[string]any, error)

// Transform calls f(data).
func (f TransformerFunc) Transform(data any) (map[string]any, error) {
	return f(data)
}

// Includer is implemented by transformers that expose related resources.
//
// Default includes are always embedded. Available includes are embedded only
// when the matching scope was requested. Include is called with the same value
// that was passed to Transform.
type Includer interface {
	AvailableIncludes() []string
	DefaultIncludes() []string
	Include(name string, data any) (Resource, error)
}
