package schema

// Class is one declared class held by a Static provider.
type Class struct {
	ID      ClassID
	Extends ClassID
	Fields  []FieldDescriptor
}

// Static is an in-memory Provider over a fixed set of classes.
// It is read-only after construction and safe for concurrent use.
type Static struct {
	classes map[ClassID]Class
}

// NewStatic builds a provider from class descriptions. A later class with
// the same ID replaces an earlier one.
func NewStatic(classes ...Class) *Static {
	s := &Static{classes: make(map[ClassID]Class, len(classes))}
	for _, c := range classes {
		s.classes[c.ID] = c
	}
	return s
}

// Has reports whether the class is known.
func (s *Static) Has(id ClassID) bool {
	_, ok := s.classes[id]
	return ok
}

// Fields returns the class's own fields followed by the fields of each
// superclass, nearest first.
func (s *Static) Fields(id ClassID) ([]FieldDescriptor, bool) {
	c, ok := s.classes[id]
	if !ok {
		return nil, false
	}

	seen := map[ClassID]bool{}
	var fields []FieldDescriptor
	for ok && !seen[c.ID] {
		seen[c.ID] = true
		fields = append(fields, c.Fields...)
		if c.Extends == "" {
			break
		}
		c, ok = s.classes[c.Extends]
	}
	return fields, true
}

func (s *Static) ResolveClass(t TypeDescriptor) (ClassID, bool) {
	if t.Kind != KindDeclared {
		return "", false
	}
	id := t.Class
	if id == "" {
		id = ClassID(t.Name)
	}
	if !s.Has(id) {
		return "", false
	}
	return id, true
}

func (s *Static) ElementType(t TypeDescriptor) (TypeDescriptor, bool) {
	if len(t.TypeArgs) != 1 {
		return TypeDescriptor{}, false
	}
	return t.TypeArgs[0], true
}

func (s *Static) SuperTypes(t TypeDescriptor) []TypeDescriptor {
	return t.SuperTypes
}
