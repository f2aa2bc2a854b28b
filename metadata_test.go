package libstore

import (
	"slices"
	"testing"

	json "github.com/goccy/go-json"
)

func TestMetadataOrder(t *testing.T) {
	var m Metadata
	m.Set("b", "1")
	m.Set("a", "2")
	m.Set("c", "3")
	m.Set("a", "4")

	if got, want := m.Keys(), []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	if v, _ := m.Get("a"); v != "4" {
		t.Errorf("Get(a) = %q, want 4", v)
	}

	m.Delete("a")
	if got, want := m.Keys(), []string{"b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Keys after Delete = %v, want %v", got, want)
	}
}

func TestMetadataNil(t *testing.T) {
	var m *Metadata
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
	if _, ok := m.Get("x"); ok {
		t.Error("Get on nil returned ok")
	}
	for range m.All() {
		t.Error("All on nil yielded")
	}
	if c := m.Clone(); c == nil || c.Len() != 0 {
		t.Errorf("Clone of nil = %v", c)
	}
}

// TestMetadataStringify covers the values a host may hand over that are
// not strings. They are stored in their text form and read back as such.
func TestMetadataStringify(t *testing.T) {
	m := NewMetadata("count", 4, "active", true, "off", false, "ratio", 0.5, "big", 1e6, "none", nil, "s", "str")
	want := map[string]string{
		"count":  "4",
		"active": "true",
		"off":    "false",
		"ratio":  "0.5",
		"big":    "1000000",
		"none":   "null",
		"s":      "str",
	}
	for k, v := range want {
		if got, _ := m.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestMetadataJSON(t *testing.T) {
	m := NewMetadata("z", "last", "a", "first\nline")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"z":"last","a":"first\nline"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Metadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Unmarshal = %v, want %v", back.Map(), m.Map())
	}
}

func TestMetadataUnmarshalScalars(t *testing.T) {
	var m Metadata
	if err := json.Unmarshal([]byte(`{"n":4,"b":true,"f":1.5,"x":null}`), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, want := m.Keys(), []string{"n", "b", "f", "x"}; !slices.Equal(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	want := map[string]string{"n": "4", "b": "true", "f": "1.5", "x": "null"}
	for k, v := range want {
		if got, _ := m.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestMetadataUnmarshalRejectsNested(t *testing.T) {
	var m Metadata
	if err := json.Unmarshal([]byte(`{"a":{"b":1}}`), &m); err == nil {
		t.Error("expected error for nested object")
	}
	if err := json.Unmarshal([]byte(`["a"]`), &m); err == nil {
		t.Error("expected error for array")
	}
}
