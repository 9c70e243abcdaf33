package parser

import (
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/seitarof/struct2json/internal/classifier"
	"github.com/seitarof/struct2json/internal/schema"
	"github.com/seitarof/struct2json/internal/skeleton"
)

const testdataPkg = "github.com/seitarof/struct2json/testdata/"

func TestLoad_BasicStruct(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parserbasic", "User")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if id != testdataPkg+"parserbasic.User" {
		t.Fatalf("id = %s", id)
	}

	fields, ok := p.Fields(id)
	if !ok {
		t.Fatal("Fields() not found")
	}

	tests := []struct {
		name     string
		typeName string
		kind     schema.Kind
		static   bool
	}{
		{name: "id", typeName: "int64", kind: schema.KindPrimitive},
		{name: "name", typeName: "string", kind: schema.KindDeclared},
		{name: "active", typeName: "bool", kind: schema.KindPrimitive},
		{name: "rating", typeName: "float64", kind: schema.KindPrimitive},
		{name: "status", typeName: "string", kind: schema.KindDeclared},
		{name: "profile", typeName: "Profile", kind: schema.KindDeclared},
		{name: "ptr", typeName: "Profile", kind: schema.KindDeclared},
		{name: "tags", typeName: "[]string", kind: schema.KindArray},
		{name: "avatar", typeName: "[]byte", kind: schema.KindDeclared},
		{name: "scores", typeName: "map", kind: schema.KindDeclared},
		{name: "Password", typeName: "string", kind: schema.KindDeclared, static: true},
		{name: "-", typeName: "string", kind: schema.KindDeclared},
		{name: "created", typeName: "Time", kind: schema.KindDeclared},
		{name: "window", typeName: "[]int", kind: schema.KindArray},
		{name: "hidden", typeName: "string", kind: schema.KindDeclared, static: true},
	}
	for _, tc := range tests {
		f := fieldByName(fields, tc.name)
		if f == nil {
			t.Fatalf("field %q not found", tc.name)
		}
		if f.Type.Name != tc.typeName || f.Type.Kind != tc.kind {
			t.Fatalf("%s type = %s/%v, want %s/%v", tc.name, f.Type.Name, f.Type.Kind, tc.typeName, tc.kind)
		}
		if f.Static != tc.static {
			t.Fatalf("%s static = %v, want %v", tc.name, f.Static, tc.static)
		}
	}

	if fields[0].Name != "id" || fields[len(fields)-1].Name != "hidden" {
		t.Fatalf("fields should keep declaration order, got first=%s last=%s", fields[0].Name, fields[len(fields)-1].Name)
	}
}

func TestLoad_NestedClassResolves(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parserbasic", "User")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fields, _ := p.Fields(id)

	profile := fieldByName(fields, "profile")
	classID, ok := p.ResolveClass(profile.Type)
	if !ok || classID != testdataPkg+"parserbasic.Profile" {
		t.Fatalf("ResolveClass(profile) = %q, %v", classID, ok)
	}

	nested, ok := p.Fields(classID)
	if !ok || len(nested) != 2 {
		t.Fatalf("Profile fields = %#v", nested)
	}
	if v, _ := nested[0].Annotation("time_format", "value"); v != "2006-01-02" {
		t.Fatalf("time_format = %q", v)
	}
	if v, _ := nested[1].Annotation("json", "value"); v != "bio,omitempty" {
		t.Fatalf("json tag = %q", v)
	}
}

func TestLoad_EmbeddedPromotionAndConflict(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parserembed", "User")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fields, _ := p.Fields(id)

	var names []string
	for _, f := range fields {
		if !f.Static {
			names = append(names, f.Name)
		}
	}
	want := "ID,version,owner,Owner,Name,Email"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("fields = %s, want %s", got, want)
	}
}

func TestLoad_SelfEmbeddingTerminates(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parserembed", "Loop")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fields, _ := p.Fields(id)
	if len(fields) != 1 || fields[0].Name != "Value" {
		t.Fatalf("fields = %#v", fields)
	}
}

func TestLoad_NamedSliceAndGenericStruct(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parsernested", "Root")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fields, _ := p.Fields(id)

	named := fieldByName(fields, "Named")
	if named == nil || len(named.Type.SuperTypes) != 1 || !strings.HasPrefix(named.Type.SuperTypes[0].Name, "Collection") {
		t.Fatalf("Named should expose a Collection supertype, got %#v", named)
	}
	elem, ok := p.ElementType(named.Type)
	if !ok || elem.Name != "Child" {
		t.Fatalf("ElementType(Named) = %#v, %v", elem, ok)
	}

	page := fieldByName(fields, "Page")
	pageID, ok := p.ResolveClass(page.Type)
	if !ok {
		t.Fatalf("generic instantiation did not resolve: %#v", page.Type)
	}
	pageFields, _ := p.Fields(pageID)
	items := fieldByName(pageFields, "Items")
	if items == nil || items.Type.Kind != schema.KindArray || items.Type.Elem.Name != "Leaf" {
		t.Fatalf("Items should be []Leaf, got %#v", items)
	}
}

func TestLoad_RecursiveNamedSliceTerminates(t *testing.T) {
	p := New()

	id, err := p.Load(testdataPkg+"parsernested", "Holder")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fields, ok := p.Fields(id)
	if !ok || len(fields) != 3 {
		t.Fatalf("Holder fields = %#v", fields)
	}

	for _, name := range []string{"Trees", "Forest"} {
		f := fieldByName(fields, name)
		if f == nil || len(f.Type.TypeArgs) != 1 {
			t.Fatalf("%s should expose one element type, got %#v", name, f)
		}
		elem := f.Type.TypeArgs[0]
		if elem.Kind != schema.KindDeclared || len(elem.TypeArgs) != 0 || len(elem.SuperTypes) != 0 || elem.Class != "" {
			t.Fatalf("%s element should be opaque, got %#v", name, elem)
		}
	}

	c := classifier.New(classifier.DefaultRules(p, classifier.DefaultRegistry(), nil)...)
	doc, err := skeleton.New(p, c).Build(context.Background(), id)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"Trees":[""],"Forest":[""],"Count":0}`; string(got) != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	p := New()

	tests := []struct {
		name     string
		typeName string
		want     string
	}{
		{name: "missing type", typeName: "NotExist", want: "not found"},
		{name: "not a struct", typeName: "NotStruct", want: "not a struct"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Load(testdataPkg+"parsernested", tc.typeName)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFields_UnknownClass(t *testing.T) {
	p := New()

	if _, ok := p.Fields("example.com/none.Type"); ok {
		t.Fatal("unknown class should not resolve")
	}
	if _, ok := p.ResolveClass(schema.TypeDescriptor{Name: "string"}); ok {
		t.Fatal("type without class should not resolve")
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag         string
		wantName    string
		wantOmitted bool
	}{
		{tag: `json:"user_name,omitempty" db:"name"`, wantName: "user_name"},
		{tag: `json:",omitempty"`, wantName: ""},
		{tag: `json:"-"`, wantOmitted: true},
		{tag: `json:"-,"`, wantName: "-"},
		{tag: ``, wantName: ""},
	}
	for _, tc := range tests {
		annotations, name, omitted := parseTag(tc.tag)
		if name != tc.wantName || omitted != tc.wantOmitted {
			t.Fatalf("parseTag(%q) = %q, %v; want %q, %v", tc.tag, name, omitted, tc.wantName, tc.wantOmitted)
		}
		if strings.Contains(tc.tag, "db:") && annotations["db"]["value"] != "name" {
			t.Fatalf("db annotation = %#v", annotations["db"])
		}
	}
}

func fieldByName(fields []schema.FieldDescriptor, name string) *schema.FieldDescriptor {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}
