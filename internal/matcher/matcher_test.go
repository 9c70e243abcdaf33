package matcher

import (
	"testing"

	"github.com/seitarof/struct2json/internal/schema"
)

func TestFieldFilter_RejectsStatic(t *testing.T) {
	f := NewFieldFilter(nil)

	if f.Accept(schema.FieldDescriptor{Name: "COUNT", Static: true}) {
		t.Fatal("static field should be rejected")
	}
	if !f.Accept(schema.FieldDescriptor{Name: "id"}) {
		t.Fatal("instance field should be accepted")
	}
}

func TestFieldFilter_CaseInsensitiveIgnore(t *testing.T) {
	f := NewFieldFilter([]string{" password ", "", "SECRET"})

	tests := []struct {
		name string
		want bool
	}{
		{name: "Password", want: false},
		{name: "secret", want: false},
		{name: "userName", want: true},
	}
	for _, tc := range tests {
		if got := f.Accept(schema.FieldDescriptor{Name: tc.name}); got != tc.want {
			t.Fatalf("Accept(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
