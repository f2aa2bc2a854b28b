// Ordered string metadata attached to a file entry.
//
// Metadata keeps keys in insertion order because the header block is
// written and read back in that order. Values are always strings at this
// boundary: SetValue formats numbers and booleans the way they appear in
// the header, so a value read back is indistinguishable from one that was
// stored as its string form.
package libstore

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// Metadata is an ordered mapping of attribute names to string values.
// The zero value is empty and ready to use. Setting a key that already
// exists replaces its value without moving it.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata builds Metadata from alternating key, value arguments.
// Values go through SetValue. A trailing key without a value is ignored.
func NewMetadata(kv ...any) *Metadata {
	m := &Metadata{}
	for i := 0; i+1 < len(kv); i += 2 {
		m.SetValue(fmt.Sprint(kv[i]), kv[i+1])
	}
	return m
}

// Set stores value under key.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetValue stores the string form of v under key.
func (m *Metadata) SetValue(key string, v any) {
	m.Set(key, stringify(v))
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, keeping the order of the remaining keys.
func (m *Metadata) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Len returns the number of attributes. A nil Metadata is empty.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the attribute names in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All yields key, value pairs in insertion order.
func (m *Metadata) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy. Cloning nil yields an empty Metadata.
func (m *Metadata) Clone() *Metadata {
	c := &Metadata{}
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// Equal reports whether both hold the same pairs in the same order.
func (m *Metadata) Equal(o *Metadata) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if o.keys[i] != k || o.values[k] != m.values[k] {
			return false
		}
	}
	return true
}

// Map returns the pairs as an unordered map.
func (m *Metadata) Map() map[string]string {
	out := make(map[string]string, m.Len())
	for k, v := range m.All() {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the pairs as a JSON object in key order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.appendJSON(&buf, "", ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendJSON writes the object, optionally with one extra trailing pair.
// The extra pair is skipped when extraKey is empty.
func (m *Metadata) appendJSON(buf *bytes.Buffer, extraKey, extraValue string) error {
	buf.WriteByte('{')
	first := true
	pair := func(k, v string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}
	for k, v := range m.All() {
		if k == extraKey {
			v = extraValue
		}
		if err := pair(k, v); err != nil {
			return err
		}
	}
	if _, ok := m.Get(extraKey); extraKey != "" && !ok {
		if err := pair(extraKey, extraValue); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes a flat JSON object, keeping key order. Scalar
// values of any JSON type are accepted and stored in their string form;
// nested objects and arrays are rejected.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = Metadata{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected object, got %v", tok)
	}

	out := Metadata{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("metadata: expected key, got %v", tok)
		}
		val, err := dec.Token()
		if err != nil {
			return err
		}
		if _, ok := val.(json.Delim); ok {
			return fmt.Errorf("metadata: value for %q must be a scalar", key)
		}
		out.SetValue(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// stringify renders v the way it is written into a header line.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
