package matcher

import (
	"strings"

	"github.com/seitarof/struct2json/internal/schema"
)

// FieldFilter decides which fields of a class appear in its skeleton.
type FieldFilter interface {
	Accept(f schema.FieldDescriptor) bool
}

type fieldFilterImpl struct {
	ignore map[string]bool
}

// NewFieldFilter returns a filter rejecting static fields and any field
// whose name matches ignoreFields case-insensitively.
func NewFieldFilter(ignoreFields []string) FieldFilter {
	return &fieldFilterImpl{ignore: toIgnoreSet(ignoreFields)}
}

func (m *fieldFilterImpl) Accept(f schema.FieldDescriptor) bool {
	if f.Static {
		return false
	}
	return !m.ignore[strings.ToLower(f.Name)]
}

func toIgnoreSet(ignoreFields []string) map[string]bool {
	set := make(map[string]bool, len(ignoreFields))
	for _, f := range ignoreFields {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		set[f] = true
	}
	return set
}
