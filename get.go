// Entry retrieval.
//
// GetEntry returns a file's body or a directory's listing. What happens
// for a path that does not exist depends on how the path was written, not
// on what might exist: an empty path or one ending in "/" names a
// directory, and a missing directory reads as an empty listing. Any other
// missing path is ErrNotFound. In the flows namespace a missing path
// without a ".json" suffix is retried with one, and if that also fails
// the error still names the path the caller asked for.
package libstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Entry is the result of GetEntry: a file body when IsDir is false, a
// directory listing otherwise.
type Entry struct {
	IsDir   bool
	Body    string
	Listing Listing
}

// GetEntry resolves typ and p to a file body or a directory listing.
func (s *Store) GetEntry(typ, p string) (*Entry, error) {
	return withFlowsFallback(typ, p, func(p string) (*Entry, error) {
		return s.resolve(typ, p)
	})
}

// withFlowsFallback runs fn on p and, for a flows path that was not found
// and has no ".json" suffix, once more on p+".json". When both fail the
// first error is returned.
func withFlowsFallback[T any](typ, p string, fn func(string) (T, error)) (T, error) {
	v, err := fn(p)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return v, err
	}
	if typ == FlowsType && !strings.HasSuffix(p, flowsExt) {
		if retry, rerr := fn(p + flowsExt); rerr == nil {
			return retry, nil
		}
	}
	return v, err
}

// resolve looks up a single address with no suffix fallback.
func (s *Store) resolve(typ, p string) (*Entry, error) {
	ns, full, err := s.target(typ, p)
	if err != nil {
		return nil, err
	}

	info, err := stat(full, p)
	if err != nil {
		if !missing(err) {
			return nil, fmt.Errorf("get: %w", err)
		}
		if p == "" || strings.HasSuffix(p, "/") {
			return &Entry{IsDir: true, Listing: Listing{}}, nil
		}
		return nil, &NotFoundError{Type: typ, Path: p}
	}

	if info.IsDir() {
		listing, err := s.list(ns, full)
		if err != nil {
			return nil, err
		}
		return &Entry{IsDir: true, Listing: listing}, nil
	}

	body, err := s.readBody(full)
	if err != nil {
		return nil, err
	}
	return &Entry{Body: body}, nil
}

// readBody reads the whole file and strips its header.
func (s *Store) readBody(full string) (string, error) {
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("get: %w", err)
	}
	return extractBody(string(data)), nil
}

// readMeta decodes only the header of the file at full.
func (s *Store) readMeta(full string) (*Metadata, error) {
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, _, err := decodeHeader(f, s.config.ReadBuffer)
	return meta, err
}

// missing reports whether err means the path does not exist, including
// the case where a parent component is a regular file.
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
