package serverless

import (
	"fmt"
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers the order in which keys
// appear in the YAML source. The zero value and a nil pointer are empty maps.
type OrderedMap[V any] struct {
	m *sequencedmap.Map[string, V]
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: sequencedmap.New[string, V]()}
}

// Set inserts or replaces key.
func (o *OrderedMap[V]) Set(key string, value V) {
	if o.m == nil {
		o.m = sequencedmap.New[string, V]()
	}
	o.m.Set(key, value)
}

// Get returns the value stored under key.
func (o *OrderedMap[V]) Get(key string) (V, bool) {
	if o == nil || o.m == nil {
		var zero V
		return zero, false
	}
	return o.m.Get(key)
}

// Len returns the number of entries.
func (o *OrderedMap[V]) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// All yields entries in source order.
func (o *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if o == nil || o.m == nil {
			return
		}
		for k, v := range o.m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	o.m = sequencedmap.New[string, V]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.m.Set(key, v)
	}
	return nil
}
