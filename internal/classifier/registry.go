package classifier

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Registry maps boxed scalar type names to their canonical literal.
// It has no mutating methods; a Registry can be shared freely.
type Registry struct {
	values map[string]any
}

// FloatZero is the literal of floating point types. It encodes as 0.0 so
// that example payloads keep the number visibly fractional.
var FloatZero = json.Number("0.0")

// DefaultRegistry returns the built-in boxed scalar literals.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]any{
		"String":     "",
		"Boolean":    false,
		"Byte":       0,
		"Short":      0,
		"Integer":    0,
		"Long":       0,
		"Float":      FloatZero,
		"Double":     FloatZero,
		"BigDecimal": FloatZero,
	})
}

// NewRegistry copies entries into a new Registry.
func NewRegistry(entries map[string]any) Registry {
	values := make(map[string]any, len(entries))
	for k, v := range entries {
		values[k] = v
	}
	return Registry{values: values}
}

func (r Registry) Lookup(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns registered type names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
