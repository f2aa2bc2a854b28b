package libstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteCreates(t *testing.T) {
	s := openTestStore(t)
	full := filepath.Join(s.Root(), "new")

	if err := s.write(full, []byte("data")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _ := os.ReadFile(full)
	if string(got) != "data" {
		t.Errorf("content = %q, want data", got)
	}
}

func TestWriteTruncates(t *testing.T) {
	s := openTestStore(t)
	full := filepath.Join(s.Root(), "doc")
	s.write(full, []byte("a much longer first version"))
	s.write(full, []byte("short"))

	got, _ := os.ReadFile(full)
	if string(got) != "short" {
		t.Errorf("content = %q, want short", got)
	}
}

func TestWriteSync(t *testing.T) {
	s, err := New(Config{Path: t.TempDir(), SyncWrites: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SaveEntry("functions", "doc", nil, "synced"); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	entry, _ := s.GetEntry("functions", "doc")
	if entry.Body != "synced" {
		t.Errorf("Body = %q", entry.Body)
	}
}

func TestWriteModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	s, _ := New(Config{Path: t.TempDir(), FileMode: 0600, DirMode: 0700})
	if err := s.SaveEntry("functions", "dir/doc", nil, "x"); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	st, err := os.Stat(filepath.Join(s.Root(), "functions", "dir", "doc"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Mode().Perm()&0077 != 0 {
		t.Errorf("file mode = %v, want no group or other bits", st.Mode().Perm())
	}
	dst, _ := os.Stat(filepath.Join(s.Root(), "functions", "dir"))
	if dst.Mode().Perm()&0077 != 0 {
		t.Errorf("dir mode = %v, want no group or other bits", dst.Mode().Perm())
	}
}

func TestWriteMissingParent(t *testing.T) {
	s := openTestStore(t)
	if err := s.write(filepath.Join(s.Root(), "no", "such", "dir", "f"), []byte("x")); err == nil {
		t.Error("write without parent succeeded")
	}
}
