package skeleton

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Document is an ordered mapping from field name to example value. Values
// are literals, nested *Document, single-element []any sequences, or nil
// for a truncated cycle.
type Document struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{pairs: orderedmap.New[string, any]()}
}

// Set stores v under key. Setting an existing key overwrites the value but
// keeps the key's original position.
func (d *Document) Set(key string, v any) {
	d.pairs.Set(key, v)
}

func (d *Document) Get(key string) (any, bool) {
	return d.pairs.Get(key)
}

func (d *Document) Len() int {
	return d.pairs.Len()
}

// Keys returns keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.pairs.Len())
	for pair := d.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Plain converts the document into plain Go values, with nested documents
// as map[string]any. Key order is lost.
func (d *Document) Plain() map[string]any {
	out := make(map[string]any, d.pairs.Len())
	for pair := d.pairs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = plain(pair.Value)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case *Document:
		return x.Plain()
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the document as a JSON object in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.pairs.MarshalJSON()
}

// MarshalYAML encodes the document as a YAML mapping in insertion order.
func (d *Document) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := d.pairs.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", pair.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
