package schema

import "strings"

var primitiveNames = map[string]bool{
	"boolean": true,
	"byte":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"char":    true,
}

// collectionFamily lists the JDK types whose supertypes include Collection.
// Collection itself is not part of the family: its own supertypes are
// Iterable and Object only.
var collectionFamily = map[string]bool{
	"List":          true,
	"ArrayList":     true,
	"LinkedList":    true,
	"Vector":        true,
	"Stack":         true,
	"Set":           true,
	"HashSet":       true,
	"LinkedHashSet": true,
	"SortedSet":     true,
	"NavigableSet":  true,
	"TreeSet":       true,
	"Queue":         true,
	"Deque":         true,
	"ArrayDeque":    true,
	"PriorityQueue": true,
}

// ParseType turns a Java-like type expression such as "int[]",
// "List<Address>" or "java.util.Map<String, Integer>" into a descriptor.
// Package qualifiers are dropped from presentable names.
func ParseType(expr string) TypeDescriptor {
	expr = strings.TrimSpace(expr)

	if strings.HasSuffix(expr, "[]") {
		elem := ParseType(strings.TrimSuffix(expr, "[]"))
		return TypeDescriptor{Name: elem.Name + "[]", Kind: KindArray, Elem: &elem}
	}
	if strings.HasSuffix(expr, "...") {
		elem := ParseType(strings.TrimSuffix(expr, "..."))
		return TypeDescriptor{Name: elem.Name + "[]", Kind: KindArray, Elem: &elem}
	}

	base, args := expr, ""
	if i := strings.IndexByte(expr, '<'); i >= 0 && strings.HasSuffix(expr, ">") {
		base, args = expr[:i], expr[i+1:len(expr)-1]
	}
	base = simpleName(base)

	if primitiveNames[base] && args == "" {
		return TypeDescriptor{Name: base, Kind: KindPrimitive}
	}

	t := TypeDescriptor{Name: base, Kind: KindDeclared}
	for _, arg := range splitTypeArgs(args) {
		t.TypeArgs = append(t.TypeArgs, ParseType(arg))
	}
	if collectionFamily[base] {
		super := TypeDescriptor{Name: "Collection", Kind: KindDeclared}
		if len(t.TypeArgs) == 1 {
			super.Name = "Collection<" + t.TypeArgs[0].Name + ">"
			super.TypeArgs = t.TypeArgs
		}
		t.SuperTypes = []TypeDescriptor{super, {Name: "Iterable", Kind: KindDeclared}, {Name: "Object", Kind: KindDeclared}}
	}
	return t
}

func simpleName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func splitTypeArgs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range raw {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(raw[start:]))
}
