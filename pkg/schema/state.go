package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	json "github.com/goccy/go-json"
)

// State is an ordered setting id → value mapping. Iteration and JSON
// encoding follow insertion order. A State is not safe for concurrent
// mutation.
type State struct {
	keys   []string
	values map[string]any
}

// NewState returns an empty State.
func NewState() *State {
	return &State{values: map[string]any{}}
}

// Set stores value under key, appending key on first use.
func (s *State) Set(key string, value any) {
	if s.values == nil {
		s.values = map[string]any{}
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key.
func (s *State) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (s *State) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Len returns the number of entries.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Clone returns an independent copy. Values are copied shallowly.
func (s *State) Clone() *State {
	if s == nil {
		return NewState()
	}
	return &State{keys: slices.Clone(s.keys), values: maps.Clone(s.values)}
}

// Map returns the entries as a plain map.
func (s *State) Map() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return maps.Clone(s.values)
}

// Merge overlays values. Existing keys keep their position; new keys are
// appended in sorted order so the result is deterministic.
func (s *State) Merge(values map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		s.Set(key, values[key])
	}
}

// MarshalJSON encodes the state as an object in insertion order.
func (s *State) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[key])
		if err != nil {
			return nil, fmt.Errorf("schema: encode state %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping key order.
func (s *State) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("schema: state must be a JSON object")
	}

	*s = State{values: map[string]any{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("schema: state key must be a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("schema: decode state %q: %w", key, err)
		}
		s.Set(key, value)
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
