package parser

import (
	"go/types"
	"sort"
	"strconv"

	"github.com/fatih/structtag"

	"github.com/seitarof/struct2json/internal/schema"
)

type fieldCandidate struct {
	field     schema.FieldDescriptor
	depth     int
	order     int
	tagged    bool
	ambiguous bool
}

// flattenFields lists the fields of st the way encoding/json sees them:
// embedded structs are inlined at their position, the shallowest field wins
// a name conflict, a tagged field wins a same-depth conflict, and remaining
// same-depth conflicts drop the name. Unexported and `json:"-"` fields are
// kept but marked Static.
func flattenFields(st *types.Struct, describe func(types.Type) schema.TypeDescriptor) []schema.FieldDescriptor {
	candidates := map[string]fieldCandidate{}
	order := 0
	collectFlattenedFields(st, 0, describe, map[*types.Struct]bool{}, candidates, &order)

	sorted := make([]fieldCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ambiguous {
			continue
		}
		sorted = append(sorted, cand)
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].order == sorted[j].order {
			return sorted[i].field.Name < sorted[j].field.Name
		}
		return sorted[i].order < sorted[j].order
	})

	fields := make([]schema.FieldDescriptor, 0, len(sorted))
	for _, cand := range sorted {
		fields = append(fields, cand.field)
	}
	return fields
}

func collectFlattenedFields(
	st *types.Struct,
	depth int,
	describe func(types.Type) schema.TypeDescriptor,
	path map[*types.Struct]bool,
	out map[string]fieldCandidate,
	order *int,
) {
	path[st] = true
	defer delete(path, st)

	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		annotations, jsonName, omitted := parseTag(st.Tag(i))

		if f.Embedded() && jsonName == "" && !omitted {
			if embedded := resolveEmbeddedStruct(f.Type()); embedded != nil {
				if !path[embedded] {
					collectFlattenedFields(embedded, depth+1, describe, path, out, order)
				}
				continue
			}
		}

		field := schema.FieldDescriptor{
			Name:        f.Name(),
			Type:        describe(f.Type()),
			Static:      omitted || !f.Exported(),
			Annotations: annotations,
		}
		if jsonName != "" {
			field.Name = jsonName
		}

		if field.Static {
			// Static fields never compete for a key.
			out["\x00"+strconv.Itoa(*order)] = fieldCandidate{field: field, depth: depth, order: *order}
			*order++
			continue
		}
		addCandidate(out, fieldCandidate{field: field, depth: depth, tagged: jsonName != ""}, order)
	}
}

func addCandidate(out map[string]fieldCandidate, cand fieldCandidate, order *int) {
	key := cand.field.Name
	cur, exists := out[key]
	if !exists || cand.depth < cur.depth {
		cand.order = *order
		out[key] = cand
		*order++
		return
	}
	if cand.depth > cur.depth {
		return
	}

	switch {
	case cur.tagged && !cand.tagged:
	case cand.tagged && !cur.tagged:
		cand.order = cur.order
		out[key] = cand
	default:
		cur.ambiguous = true
		out[key] = cur
	}
}

// parseTag turns a struct tag into annotations keyed by tag key, each with
// "name" (text before the first comma) and "value" (full text) attributes.
func parseTag(tag string) (annotations map[string]map[string]string, jsonName string, omitted bool) {
	tags, err := structtag.Parse(tag)
	if err != nil || tags == nil || tags.Len() == 0 {
		return nil, "", false
	}

	annotations = make(map[string]map[string]string, tags.Len())
	for _, t := range tags.Tags() {
		annotations[t.Key] = map[string]string{"name": t.Name, "value": t.Value()}
	}

	if j, err := tags.Get("json"); err == nil {
		if j.Name == "-" && len(j.Options) == 0 {
			return annotations, "", true
		}
		jsonName = j.Name
	}
	return annotations, jsonName, false
}

func resolveEmbeddedStruct(t types.Type) *types.Struct {
	switch v := t.(type) {
	case *types.Alias:
		return resolveEmbeddedStruct(types.Unalias(v))
	case *types.Named:
		if st, ok := v.Underlying().(*types.Struct); ok {
			return st
		}
	case *types.Pointer:
		return resolveEmbeddedStruct(v.Elem())
	}
	return nil
}
