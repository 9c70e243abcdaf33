package parser

import "testing"

func BenchmarkLoadAndFields_User(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := New()
		id, err := p.Load("github.com/seitarof/struct2json/testdata/parserbasic", "User")
		if err != nil {
			b.Fatal(err)
		}
		if fields, ok := p.Fields(id); !ok || len(fields) == 0 {
			b.Fatal("empty field list")
		}
	}
}
