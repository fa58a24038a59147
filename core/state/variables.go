// Package state provides the per-invocation mutable containers: the scoped
// variable store, the skill list, the tag set, and the priority value.
//
// Every container is exclusively owned by one invocation, so none of them
// carry locks. Accessors that return structured data return deep copies;
// internal state is never reachable through a returned value.
package state

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// VariableStore holds the invocation's named variables. Keys are unique;
// insertion order is irrelevant.
type VariableStore struct {
	values map[string]any
}

// NewVariableStore creates a store seeded with the classified variables.
// The seed is deep-copied so later envelope mutation cannot leak in.
func NewVariableStore(seed map[string]any) *VariableStore {
	values := typeutil.DeepCopyMap(seed)
	if values == nil {
		values = map[string]any{}
	}
	return &VariableStore{values: values}
}

// Get returns the variable value, or nil and false when absent.
func (s *VariableStore) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set stores a variable value under name.
func (s *VariableStore) Set(name string, value any) {
	s.values[name] = value
}

// Delete removes a variable. Returns false when the name was absent.
func (s *VariableStore) Delete(name string) bool {
	if _, ok := s.values[name]; !ok {
		return false
	}
	delete(s.values, name)
	return true
}

// Snapshot returns a deep copy of the variable map.
func (s *VariableStore) Snapshot() map[string]any {
	return typeutil.DeepCopyMap(s.values)
}

// Stringified returns the wire form of the variable map: every value
// independently coerced to a string, object values JSON-encoded first.
// A value that cannot be converted yields the empty string for that key
// only; conversion never aborts the whole map.
func (s *VariableStore) Stringified() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = typeutil.Stringify(v)
	}
	return out
}
