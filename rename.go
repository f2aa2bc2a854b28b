// Entry renaming.
//
// Rename moves a single file entry to a new path in the same namespace,
// creating parent directories for the destination. The metadata header
// travels with the file unchanged. Directories are not renamed, and an
// existing destination is never overwritten. In the flows namespace both
// paths follow the ".json" rules of GetEntry and SaveEntry: the source may
// omit the suffix and the destination always gets it.
package libstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenameEntry moves the file at (typ, from) to (typ, to). It returns
// ErrNotFound if from does not exist, ErrExists if to already exists and
// ErrIsDirectory if from is a directory. Renaming an entry to itself is a
// no-op.
func (s *Store) RenameEntry(typ, from, to string) error {
	if strings.HasSuffix(to, "/") || strings.TrimLeft(to, "/") == "" {
		return fmt.Errorf("%w: %q names a directory", ErrInvalidPath, to)
	}
	if typ == FlowsType && !strings.HasSuffix(to, flowsExt) {
		to += flowsExt
	}
	_, dst, err := s.target(typ, to)
	if err != nil {
		return err
	}

	_, err = withFlowsFallback(typ, from, func(p string) (struct{}, error) {
		return struct{}{}, s.rename(typ, p, dst)
	})
	if err != nil {
		return err
	}
	s.log.Debug("renamed entry", "type", typ, "from", from, "to", to)
	return nil
}

// rename moves the source address to the absolute destination dst.
func (s *Store) rename(typ, from, dst string) error {
	ns, src, err := s.target(typ, from)
	if err != nil {
		return err
	}
	st, err := stat(src, from)
	if err != nil {
		if missing(err) {
			return &NotFoundError{Type: typ, Path: from}
		}
		return fmt.Errorf("rename: %w", err)
	}
	if src == ns || st.IsDir() {
		return fmt.Errorf("%w: %s/%s", ErrIsDirectory, typ, from)
	}
	if src == dst {
		return nil
	}

	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, relTo(ns, dst))
	} else if !missing(err) {
		return fmt.Errorf("rename: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), s.config.DirMode); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
