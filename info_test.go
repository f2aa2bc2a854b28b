package libstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInfoFile(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "dir/doc", NewMetadata("a", "b"), "body")

	info, err := s.Info("functions", "/dir/doc")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(s.Root(), "functions", "dir", "doc"))
	if info.Type != "functions" || info.Path != "dir/doc" || info.Name != "doc" {
		t.Errorf("info = %+v", info)
	}
	if info.IsDir {
		t.Error("IsDir = true for a file")
	}
	if info.Size != int64(len(raw)) {
		t.Errorf("Size = %d, want %d", info.Size, len(raw))
	}
	if info.Hash != hash(raw, AlgXXHash3) {
		t.Errorf("Hash = %q, want %q", info.Hash, hash(raw, AlgXXHash3))
	}
	if info.Modified.IsZero() {
		t.Error("Modified is zero")
	}
}

func TestInfoDirectory(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "dir/doc", nil, "body")

	info, err := s.Info("functions", "dir")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !info.IsDir || info.Size != 0 || info.Hash != "" {
		t.Errorf("info = %+v, want directory without size or hash", info)
	}

	root, err := s.Info("functions", "")
	if err != nil {
		t.Fatalf("Info(root): %v", err)
	}
	if root.Name != "functions" || root.Path != "" {
		t.Errorf("root info = %+v", root)
	}
}

func TestInfoFlowsFallback(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry(FlowsType, "f", nil, "{}")

	info, err := s.Info(FlowsType, "f")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Path != "f.json" {
		t.Errorf("Path = %q, want f.json", info.Path)
	}
}

func TestInfoNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Info(FlowsType, "missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path != "missing" {
		t.Errorf("Info: got %v, want NotFoundError for missing", err)
	}
}

func TestInfoFileWithTrailingSlash(t *testing.T) {
	s := openTestStore(t)
	s.SaveEntry("functions", "a.txt", nil, "hello")
	if _, err := s.Info("functions", "a.txt/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Info(a.txt/): got %v, want ErrNotFound", err)
	}
	if info, err := s.Info("functions", "a.txt"); err != nil || info.IsDir {
		t.Errorf("Info(a.txt) = %+v, %v", info, err)
	}
}

func TestInfoHashAlgorithm(t *testing.T) {
	dir := t.TempDir()
	a, _ := New(Config{Path: dir, HashAlgorithm: AlgFNV1a})
	b, _ := New(Config{Path: dir, HashAlgorithm: AlgBlake2b})
	a.SaveEntry("functions", "doc", nil, "body")

	ia, _ := a.Info("functions", "doc")
	ib, _ := b.Info("functions", "doc")
	if ia.Hash == ib.Hash {
		t.Errorf("algorithms produced the same hash %q", ia.Hash)
	}
}
