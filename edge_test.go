// Boundary conditions for the codec and resolver.
//
// These cover inputs normal use rarely produces: values that look like
// headers, bodies that start with comment lines, headers longer than the
// read buffer, and files with no trailing newline after their last header.
package libstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestBodyLooksLikeHeader shows the limit of the format: a body whose
// first line has header shape is read back as metadata.
func TestBodyLooksLikeHeader(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "doc", nil, "// note: not metadata\nreal body")

	entry, _ := s.GetEntry("functions", "doc")
	if entry.Body != "real body" {
		t.Errorf("Body = %q, want %q", entry.Body, "real body")
	}
}

// TestBodyCommentWithoutKey keeps a comment that is not a header line.
func TestBodyCommentWithoutKey(t *testing.T) {
	s := openTestStore(t)
	body := "// just a comment\ncode()"
	s.SaveEntry("functions", "doc", NewMetadata("k", "v"), body)

	entry, _ := s.GetEntry("functions", "doc")
	if entry.Body != body {
		t.Errorf("Body = %q, want %q", entry.Body, body)
	}
}

// TestValueWithHeaderSyntax stores a value containing a newline followed
// by header-shaped text. Escaping keeps it inside one header line.
func TestValueWithHeaderSyntax(t *testing.T) {
	s := openTestStore(t)
	value := "x\n// injected: yes\n\\n"
	s.SaveEntry("functions", "doc", NewMetadata("v", value), "body")

	entry, _ := s.GetEntry("functions", "")
	meta := entry.Listing.Files()[0].Meta
	if meta.Len() != 1 {
		t.Fatalf("keys = %v, want [v]", meta.Keys())
	}
	if got, _ := meta.Get("v"); got != value {
		t.Errorf("v = %q, want %q", got, value)
	}
}

// TestHeaderLongerThanBuffer reads a header that spans many chunks.
func TestHeaderLongerThanBuffer(t *testing.T) {
	s, _ := New(Config{Path: t.TempDir(), ReadBuffer: 16})
	long := strings.Repeat("abc", 200)
	s.SaveEntry("functions", "doc", NewMetadata("a", long, "b", "short"), "body")

	entry, _ := s.GetEntry("functions", "")
	meta := entry.Listing.Files()[0].Meta
	if got, _ := meta.Get("a"); got != long {
		t.Errorf("a has %d bytes, want %d", len(got), len(long))
	}
	if got, _ := meta.Get("b"); got != "short" {
		t.Errorf("b = %q", got)
	}
}

// TestHeaderOnlyFile covers a file ending in an unterminated header-shaped
// line. The header decoder only counts complete lines, so the last one is
// not metadata, while the body extractor still strips it.
func TestHeaderOnlyFile(t *testing.T) {
	s := openTestStore(t)
	ns := filepath.Join(s.Root(), "functions")
	os.MkdirAll(ns, 0755)
	os.WriteFile(filepath.Join(ns, "doc"), []byte("// a: 1\n// b: 2"), 0644)

	entry, _ := s.GetEntry("functions", "doc")
	if entry.Body != "" {
		t.Errorf("Body = %q, want empty", entry.Body)
	}
	dir, _ := s.GetEntry("functions", "")
	meta := dir.Listing.Files()[0].Meta
	if meta.Len() != 1 {
		t.Errorf("keys = %v, want [a]", meta.Keys())
	}
}

// TestBlankLinesAfterHeader keeps leading blank lines of the body.
func TestBlankLinesAfterHeader(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "doc", NewMetadata("k", "v"), "\n\nbody")

	entry, _ := s.GetEntry("functions", "doc")
	if entry.Body != "\n\nbody" {
		t.Errorf("Body = %q, want %q", entry.Body, "\n\nbody")
	}
}

// TestEmptyBody stores only metadata.
func TestEmptyBody(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "doc", NewMetadata("k", "v"), "")

	entry, err := s.GetEntry("functions", "doc")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.Body != "" {
		t.Errorf("Body = %q, want empty", entry.Body)
	}
}

// TestUnicodePaths stores entries under non-ASCII names.
func TestUnicodePaths(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "données/naïve", NewMetadata("name", "値"), "ok")

	entry, err := s.GetEntry("functions", "données/naïve")
	if err != nil || entry.Body != "ok" {
		t.Errorf("GetEntry = %+v, %v", entry, err)
	}
	dir, _ := s.GetEntry("functions", "données")
	if got, _ := dir.Listing.Files()[0].Meta.Get("name"); got != "値" {
		t.Errorf("meta = %q", got)
	}
}
