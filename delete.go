// Entry deletion.
//
// Only files are deleted. Directories exist implicitly and are left in
// place even when a delete empties them.
package libstore

import (
	"fmt"
	"os"
	"strings"
)

// DeleteEntry removes the file at (typ, p). The flows ".json" fallback
// applies. Deleting a directory returns ErrIsDirectory.
func (s *Store) DeleteEntry(typ, p string) error {
	_, err := withFlowsFallback(typ, p, func(p string) (struct{}, error) {
		return struct{}{}, s.remove(typ, p)
	})
	return err
}

func (s *Store) remove(typ, p string) error {
	ns, full, err := s.target(typ, p)
	if err != nil {
		return err
	}
	st, err := os.Lstat(full)
	if err != nil {
		if missing(err) {
			return &NotFoundError{Type: typ, Path: p}
		}
		return fmt.Errorf("delete: %w", err)
	}
	if st.Mode()&os.ModeSymlink != 0 {
		// A link to a directory lists as a directory, so it deletes as one.
		if target, err := os.Stat(full); err == nil {
			st = target
		}
	}
	if !st.IsDir() && strings.HasSuffix(p, "/") {
		return &NotFoundError{Type: typ, Path: p}
	}
	if full == ns || st.IsDir() {
		return fmt.Errorf("%w: %s/%s", ErrIsDirectory, typ, p)
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	s.log.Debug("deleted entry", "type", typ, "path", p)
	return nil
}
