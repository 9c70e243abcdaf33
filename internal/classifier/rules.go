package classifier

import (
	"strings"
	"time"

	"github.com/seitarof/struct2json/internal/schema"
)

// Clock returns the timestamp used for formatted temporal fields.
type Clock func() time.Time

// DefaultRules returns built-in rules in Precedence order.
func DefaultRules(p schema.Provider, reg Registry, clock Clock) []Rule {
	if clock == nil {
		clock = time.Now
	}
	return []Rule{
		&PrimitiveRule{},
		&TemporalRule{clock: clock},
		&StringRule{},
		&BoxedRule{registry: reg},
		&ArrayRule{},
		&CollectionRule{provider: p},
		&ObjectRule{provider: p},
	}
}

// PrimitiveRule: language primitives -> zero value.
type PrimitiveRule struct{}

func (r *PrimitiveRule) Name() string { return "primitive" }
func (r *PrimitiveRule) Category() Category { return CategoryPrimitive }

func (r *PrimitiveRule) Try(t schema.TypeDescriptor, _ schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindPrimitive {
		return Result{}, false
	}
	return Result{Category: CategoryPrimitive, Literal: ZeroValue(t.Name)}, true
}

var primitiveZero = map[string]any{
	"boolean": false,
	"bool":    false,
	"char":    "\u0000",
	"float":   FloatZero,
	"double":  FloatZero,
	"float32": FloatZero,
	"float64": FloatZero,
}

// ZeroValue returns the canonical zero literal of a primitive type name.
// Integral and unrecognized names yield 0.
func ZeroValue(name string) any {
	if v, ok := primitiveZero[name]; ok {
		return v
	}
	return 0
}

var temporalNames = map[string]bool{
	"Date":           true,
	"LocalDate":      true,
	"LocalDateTime":  true,
	"ZonedDateTime":  true,
	"OffsetDateTime": true,
	"Instant":        true,
	"Time":           true,
}

// formatHints lists annotation attributes carrying a date pattern, checked
// in order.
var formatHints = []struct {
	annotation string
	attr       string
}{
	{"JsonFormat", "pattern"},
	{"DateTimeFormat", "pattern"},
	{"time_format", "value"},
	{"format", "value"},
}

// TemporalRule: date-like types -> "" or the clock formatted with the
// field's pattern.
type TemporalRule struct {
	clock Clock
}

func (r *TemporalRule) Name() string { return "temporal" }
func (r *TemporalRule) Category() Category { return CategoryTemporal }

func (r *TemporalRule) Try(t schema.TypeDescriptor, field schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindDeclared || !temporalNames[t.Name] {
		return Result{}, false
	}
	res := Result{Category: CategoryTemporal, Literal: ""}
	if pattern := datePattern(field); pattern != "" {
		res.Literal = r.clock().Format(layoutFromPattern(pattern))
	}
	return res, true
}

func datePattern(field schema.FieldDescriptor) string {
	for _, hint := range formatHints {
		if raw, ok := field.Annotation(hint.annotation, hint.attr); ok {
			if p := unquote(raw); p != "" {
				return p
			}
		}
	}
	return ""
}

// StringRule: strings -> the field's own name.
type StringRule struct{}

func (r *StringRule) Name() string { return "string" }
func (r *StringRule) Category() Category { return CategoryStringLike }

func (r *StringRule) Try(t schema.TypeDescriptor, field schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindDeclared || (t.Name != "String" && t.Name != "string") {
		return Result{}, false
	}
	return Result{Category: CategoryStringLike, Literal: field.Name}, true
}

// BoxedRule: registered wrapper types -> registry literal.
type BoxedRule struct {
	registry Registry
}

func (r *BoxedRule) Name() string { return "boxed" }
func (r *BoxedRule) Category() Category { return CategoryBoxedScalar }

func (r *BoxedRule) Try(t schema.TypeDescriptor, _ schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindDeclared {
		return Result{}, false
	}
	v, ok := r.registry.Lookup(t.Name)
	if !ok {
		return Result{}, false
	}
	return Result{Category: CategoryBoxedScalar, Literal: v}, true
}

// ArrayRule: arrays -> ArrayOf(deep component).
type ArrayRule struct{}

func (r *ArrayRule) Name() string { return "array" }
func (r *ArrayRule) Category() Category { return CategoryArray }

func (r *ArrayRule) Try(t schema.TypeDescriptor, _ schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindArray {
		return Result{}, false
	}
	if t.Elem == nil {
		return Result{Category: CategoryUnknown, Literal: ""}, true
	}
	// Multi-dimensional arrays collapse to their deepest component type.
	elem := *t.Elem
	for elem.Kind == schema.KindArray && elem.Elem != nil {
		elem = *elem.Elem
	}
	return Result{Category: CategoryArray, Elem: &elem}, true
}

// CollectionRule: types with a Collection supertype -> CollectionOf(type
// parameter).
type CollectionRule struct {
	provider schema.Provider
}

func (r *CollectionRule) Name() string { return "collection" }
func (r *CollectionRule) Category() Category { return CategoryCollection }

func (r *CollectionRule) Try(t schema.TypeDescriptor, _ schema.FieldDescriptor) (Result, bool) {
	if t.Kind != schema.KindDeclared || !r.isCollection(t) {
		return Result{}, false
	}
	res := Result{Category: CategoryCollection}
	if elem, ok := r.provider.ElementType(t); ok {
		res.Elem = &elem
	}
	return res, true
}

func (r *CollectionRule) isCollection(t schema.TypeDescriptor) bool {
	for _, super := range r.provider.SuperTypes(t) {
		if strings.HasPrefix(super.Name, "Collection") {
			return true
		}
	}
	return false
}

// ObjectRule: types the provider resolves to a class -> ObjectType.
type ObjectRule struct {
	provider schema.Provider
}

func (r *ObjectRule) Name() string { return "object" }
func (r *ObjectRule) Category() Category { return CategoryObject }

func (r *ObjectRule) Try(t schema.TypeDescriptor, _ schema.FieldDescriptor) (Result, bool) {
	id, ok := r.provider.ResolveClass(t)
	if !ok {
		return Result{}, false
	}
	return Result{Category: CategoryObject, Class: id}, true
}
