package schema

import (
	"sort"
	"strings"
)

// ClassID identifies a declared class known to a Provider.
type ClassID string

// Kind is the coarse structural kind of a declared type.
type Kind int

const (
	KindDeclared Kind = iota
	KindPrimitive
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	default:
		return "declared"
	}
}

// TypeDescriptor describes the declared type of a field.
type TypeDescriptor struct {
	// Name is the presentable (simple) name, e.g. "String", "List", "int".
	Name string
	Kind Kind
	// Elem is the component type of an array.
	Elem *TypeDescriptor
	// Class is set when the provider already knows which class the type refers to.
	Class      ClassID
	TypeArgs   []TypeDescriptor
	SuperTypes []TypeDescriptor
}

// FieldDescriptor stores metadata for one data-class member.
type FieldDescriptor struct {
	Name        string
	Type        TypeDescriptor
	Static      bool
	Annotations map[string]map[string]string
}

// Annotation returns one attribute of a field annotation. Annotation names
// match either exactly or by their last dotted segment, so
// "com.fasterxml.jackson.annotation.JsonFormat" answers to "JsonFormat".
func (f FieldDescriptor) Annotation(name, attr string) (string, bool) {
	if attrs, ok := f.Annotations[name]; ok {
		v, ok := attrs[attr]
		return v, ok
	}
	var matches []string
	for key := range f.Annotations {
		if i := strings.LastIndexByte(key, '.'); i >= 0 && key[i+1:] == name {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	// Several qualified names may share a simple name; pick the smallest.
	sort.Strings(matches)
	v, ok := f.Annotations[matches[0]][attr]
	return v, ok
}

// Provider resolves class, field and type metadata for the skeleton builder.
type Provider interface {
	// Fields returns the ordered fields of a class including inherited ones.
	Fields(id ClassID) ([]FieldDescriptor, bool)
	ResolveClass(t TypeDescriptor) (ClassID, bool)
	// ElementType extracts the single type parameter of a collection-like type.
	ElementType(t TypeDescriptor) (TypeDescriptor, bool)
	SuperTypes(t TypeDescriptor) []TypeDescriptor
}
