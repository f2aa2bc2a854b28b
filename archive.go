// Archive export and import.
//
// An archive is a Zstd-compressed stream of JSON lines, one Record per
// file entry, carrying the decoded metadata and body rather than the raw
// file. Import replays each record through SaveEntry, so an archive can
// move a library between stores, and flows are re-indented on the way in.
// Directories are not recorded; they reappear as parents of the files
// written beneath them, so empty directories do not survive a round trip.
package libstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// Record is one archived entry. Hash is the content hash of the source
// file under the exporting store's algorithm, kept for reference.
type Record struct {
	Type string    `json:"type"`
	Path string    `json:"path"`
	Meta *Metadata `json:"meta,omitempty"`
	Body string    `json:"body"`
	Hash string    `json:"hash,omitempty"`
}

// Export writes every file entry of the named namespaces, or of all
// namespaces when none are named, to w as a compressed archive. It
// returns the number of records written.
func (s *Store) Export(w io.Writer, types ...string) (int, error) {
	if len(types) == 0 {
		all, err := s.Types()
		if err != nil {
			return 0, err
		}
		types = all
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	n := 0
	for _, typ := range types {
		for entry, err := range s.Walk(typ) {
			if err != nil {
				enc.Close()
				return n, fmt.Errorf("export: %w", err)
			}
			rec, err := s.record(entry)
			if err != nil {
				enc.Close()
				return n, fmt.Errorf("export: %w", err)
			}
			line, err := json.Marshal(rec)
			if err != nil {
				enc.Close()
				return n, fmt.Errorf("export: %s/%s: %w", rec.Type, rec.Path, err)
			}
			if _, err := enc.Write(append(line, '\n')); err != nil {
				enc.Close()
				return n, fmt.Errorf("export: %w", err)
			}
			n++
		}
	}

	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("export: %w", err)
	}
	s.log.Debug("exported archive", "types", len(types), "records", n)
	return n, nil
}

// record reads a walked file into an archive record.
func (s *Store) record(entry WalkEntry) (*Record, error) {
	data, err := os.ReadFile(entry.full)
	if err != nil {
		return nil, err
	}
	meta, _, err := decodeHeader(bytes.NewReader(data), s.config.ReadBuffer)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		Type: entry.Type,
		Path: entry.Path,
		Body: extractBody(string(data)),
		Hash: hash(data, s.config.HashAlgorithm),
	}
	if meta.Len() > 0 {
		rec.Meta = meta
	}
	return rec, nil
}

// Import reads an archive written by Export and saves every record. It
// stops at the first record that cannot be decoded or saved and returns
// the number saved before it.
func (s *Store) Import(r io.Reader) (int, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorruptArchive, err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	n := 0
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return n, fmt.Errorf("%w: line %d: %w", ErrCorruptArchive, lineNo, err)
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var rec Record
			if uerr := json.Unmarshal(trimmed, &rec); uerr != nil {
				return n, fmt.Errorf("%w: line %d: %w", ErrCorruptArchive, lineNo, uerr)
			}
			if rec.Type == "" || rec.Path == "" {
				return n, fmt.Errorf("%w: line %d: missing type or path", ErrCorruptArchive, lineNo)
			}
			if serr := s.SaveEntry(rec.Type, rec.Path, rec.Meta, rec.Body); serr != nil {
				return n, fmt.Errorf("import: %s/%s: %w", rec.Type, rec.Path, serr)
			}
			n++
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	s.log.Debug("imported archive", "records", n)
	return n, nil
}
