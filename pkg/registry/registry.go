// Package registry provides the write-once name registry used to deduplicate
// named type declarations during one generation run.
package registry

import (
	"fmt"
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// DuplicateKeyError is returned when a key is registered twice.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate registry key %q", e.Key)
}

// Registry maps lookup keys to registered values. Each key may be registered
// once. It is not safe for concurrent writers.
type Registry[V any] struct {
	entries *sequencedmap.Map[string, V]
}

// New creates an empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{entries: sequencedmap.New[string, V]()}
}

// Register stores value under key. It fails if key is already present and
// leaves the existing entry untouched.
func (r *Registry[V]) Register(key string, value V) error {
	if r.Has(key) {
		return &DuplicateKeyError{Key: key}
	}
	r.entries.Set(key, value)
	return nil
}

// Get returns the value stored under key.
func (r *Registry[V]) Get(key string) (V, bool) {
	return r.entries.Get(key)
}

// Has reports whether key is registered.
func (r *Registry[V]) Has(key string) bool {
	_, ok := r.entries.Get(key)
	return ok
}

// Len returns the number of registered entries.
func (r *Registry[V]) Len() int {
	return r.entries.Len()
}

// Values yields every registered value in insertion order.
func (r *Registry[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range r.entries.All() {
			if !yield(v) {
				return
			}
		}
	}
}
