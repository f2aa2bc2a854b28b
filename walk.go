// Recursive enumeration of a namespace.
//
// Walk visits every file below a namespace depth first, children in byte
// order. It classifies children the same way a listing does: hidden names
// are skipped and symlinks are followed. A directory reached twice
// through symlinks is visited once, keyed by its real path, so a link
// cycle cannot loop forever.
package libstore

import (
	"fmt"
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
)

// WalkEntry is a file found by Walk.
type WalkEntry struct {
	Type string // Namespace
	Path string // Slash path relative to the namespace
	Size int64

	full string
}

// Walk yields every file in namespace typ. A missing namespace yields
// nothing. Break from the range loop to stop early.
func (s *Store) Walk(typ string) iter.Seq2[WalkEntry, error] {
	return func(yield func(WalkEntry, error) bool) {
		ns, err := s.namespace(typ)
		if err != nil {
			yield(WalkEntry{}, err)
			return
		}
		if _, err := os.Stat(ns); err != nil {
			if !missing(err) {
				yield(WalkEntry{}, fmt.Errorf("walk: %w", err))
			}
			return
		}
		seen := make(map[string]bool)
		s.walkDir(typ, ns, "", seen, yield)
	}
}

// walkDir visits dir, whose slash path relative to the namespace is rel.
// It returns false once yield has asked to stop.
func (s *Store) walkDir(typ, dir, rel string, seen map[string]bool, yield func(WalkEntry, error) bool) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return yield(WalkEntry{}, fmt.Errorf("walk: %w", err))
	}
	if seen[resolved] {
		s.log.Debug("skipping revisited directory", "type", typ, "path", rel)
		return true
	}
	seen[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(WalkEntry{}, fmt.Errorf("walk: %w", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	for _, name := range names {
		if name[0] == '.' {
			continue
		}
		full := filepath.Join(dir, name)
		child := path.Join(rel, name)
		info, err := os.Stat(full)
		if err != nil {
			if missing(err) {
				continue
			}
			if !yield(WalkEntry{}, fmt.Errorf("walk: %w", err)) {
				return false
			}
			continue
		}
		switch {
		case info.IsDir():
			if !s.walkDir(typ, full, child, seen, yield) {
				return false
			}
		case info.Mode().IsRegular():
			if !yield(WalkEntry{Type: typ, Path: child, Size: info.Size(), full: full}, nil) {
				return false
			}
		}
	}
	return true
}

// Types returns the namespace directories under the storage root in byte
// order. A missing root has no namespaces.
func (s *Store) Types() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("types: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if name[0] == '.' {
			continue
		}
		info, err := os.Stat(filepath.Join(s.root, name))
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return out, nil
}
