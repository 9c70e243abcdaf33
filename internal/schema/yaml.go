package schema

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Classes map[string]yamlClass `yaml:"classes"`
}

type yamlClass struct {
	Extends string      `yaml:"extends"`
	Fields  []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name        string                       `yaml:"name"`
	Type        string                       `yaml:"type"`
	Static      bool                         `yaml:"static"`
	Annotations map[string]map[string]string `yaml:"annotations"`
}

// LoadYAMLFile reads class descriptions from a YAML file.
func LoadYAMLFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema %q: %w", path, err)
	}
	defer f.Close()

	s, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", path, err)
	}
	return s, nil
}

// LoadYAML decodes class descriptions of the form
//
//	classes:
//	  User:
//	    extends: Base
//	    fields:
//	      - {name: id, type: long}
//	      - {name: tags, type: List<String>}
//	      - name: createdAt
//	        type: Date
//	        annotations:
//	          JsonFormat: {pattern: "yyyy-MM-dd"}
func LoadYAML(r io.Reader) (*Static, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	names := make([]string, 0, len(doc.Classes))
	for name := range doc.Classes {
		names = append(names, name)
	}
	sort.Strings(names)

	classes := make([]Class, 0, len(names))
	for _, name := range names {
		yc := doc.Classes[name]
		c := Class{ID: ClassID(name), Extends: ClassID(strings.TrimSpace(yc.Extends))}
		for i, yf := range yc.Fields {
			if strings.TrimSpace(yf.Name) == "" {
				return nil, fmt.Errorf("class %q: field #%d has no name", name, i)
			}
			if strings.TrimSpace(yf.Type) == "" {
				return nil, fmt.Errorf("class %q: field %q has no type", name, yf.Name)
			}
			c.Fields = append(c.Fields, FieldDescriptor{
				Name:        yf.Name,
				Type:        ParseType(yf.Type),
				Static:      yf.Static,
				Annotations: yf.Annotations,
			})
		}
		classes = append(classes, c)
	}

	s := NewStatic(classes...)
	for _, c := range classes {
		if c.Extends != "" && !s.Has(c.Extends) {
			return nil, fmt.Errorf("class %q extends unknown class %q", c.ID, c.Extends)
		}
	}
	return s, nil
}
