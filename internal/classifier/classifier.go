package classifier

import (
	"github.com/seitarof/struct2json/internal/schema"
)

// Category is the synthesis class of a field type.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPrimitive
	CategoryTemporal
	CategoryStringLike
	CategoryBoxedScalar
	CategoryArray
	CategoryCollection
	CategoryObject
)

// Precedence is the order in which DefaultRules evaluate categories.
// Earlier categories shadow later ones.
var Precedence = []Category{
	CategoryPrimitive,
	CategoryTemporal,
	CategoryStringLike,
	CategoryBoxedScalar,
	CategoryArray,
	CategoryCollection,
	CategoryObject,
}

func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryTemporal:
		return "temporal"
	case CategoryStringLike:
		return "string"
	case CategoryBoxedScalar:
		return "boxed"
	case CategoryArray:
		return "array"
	case CategoryCollection:
		return "collection"
	case CategoryObject:
		return "object"
	default:
		return "unknown"
	}
}

// Scalar reports whether the category yields a literal directly.
func (c Category) Scalar() bool {
	switch c {
	case CategoryArray, CategoryCollection, CategoryObject:
		return false
	default:
		return true
	}
}

// Result is the outcome of classifying one type.
type Result struct {
	Category Category
	// Literal is set for scalar categories and Unknown.
	Literal any
	// Elem is the element type of Array and Collection results. A nil Elem
	// on a Collection means the element type could not be resolved.
	Elem *schema.TypeDescriptor
	// Class is the nested class of an Object result.
	Class schema.ClassID
}

// Classifier categorizes field types.
type Classifier interface {
	Classify(t schema.TypeDescriptor, field schema.FieldDescriptor) Result
}

// Rule tries to classify one type.
type Rule interface {
	Name() string
	Category() Category
	Try(t schema.TypeDescriptor, field schema.FieldDescriptor) (Result, bool)
}

type classifierImpl struct {
	rules []Rule
}

// New builds a classifier from a rule chain; the first matching rule wins.
func New(rules ...Rule) Classifier {
	return &classifierImpl{rules: rules}
}

func (c *classifierImpl) Classify(t schema.TypeDescriptor, field schema.FieldDescriptor) Result {
	for _, rule := range c.rules {
		if res, ok := rule.Try(t, field); ok {
			return res
		}
	}
	return Result{Category: CategoryUnknown, Literal: ""}
}
