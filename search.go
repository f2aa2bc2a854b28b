// Search over entry bodies and metadata.
//
// Search walks a namespace and matches a pattern against each file's body,
// and against its metadata values when SearchOptions.Metadata is set.
// Case-sensitive literal patterns (no regex metacharacters) take a fast
// path through bytes.Index. Anything else is compiled as a regular
// expression. Matching
// is case-insensitive unless CaseSensitive is set.
//
// There is no index: every search reads every file in the namespace.
// Callers consume results lazily via range and can break early to stop
// the walk.
package libstore

import (
	"bytes"
	"fmt"
	"iter"
	"os"
	"regexp"
	"strings"
)

// SearchOptions configures Search behaviour.
type SearchOptions struct {
	CaseSensitive bool
	Metadata      bool // also match metadata values
}

// Match is a single search result. Line is the 1-based body line of the
// first match, or 0 when only a metadata value matched, in which case Key
// names the attribute.
type Match struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Line int    `json:"line,omitempty"`
	Key  string `json:"key,omitempty"`
}

// Search yields the files in namespace typ whose content matches pattern.
func (s *Store) Search(typ, pattern string, opts SearchOptions) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		index, err := matcher(pattern, opts.CaseSensitive)
		if err != nil {
			yield(Match{}, err)
			return
		}

		for entry, err := range s.Walk(typ) {
			if err != nil {
				if !yield(Match{}, err) {
					return
				}
				continue
			}
			m, ok, err := s.matchFile(entry, index, opts)
			if err != nil {
				if !yield(Match{}, err) {
					return
				}
				continue
			}
			if ok && !yield(m, nil) {
				return
			}
		}
	}
}

// matcher returns a function reporting the offset of the first match in
// its argument, or -1.
func matcher(pattern string, caseSensitive bool) (func([]byte) int, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if regexp.QuoteMeta(pattern) == pattern && caseSensitive {
		needle := []byte(pattern)
		return func(content []byte) int {
			return bytes.Index(content, needle)
		}, nil
	}

	// Case folding can change byte lengths, so folded literals go through
	// the regexp engine to keep offsets in the original content.
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return func(content []byte) int {
		loc := re.FindIndex(content)
		if loc == nil {
			return -1
		}
		return loc[0]
	}, nil
}

func (s *Store) matchFile(entry WalkEntry, index func([]byte) int, opts SearchOptions) (Match, bool, error) {
	data, err := os.ReadFile(entry.full)
	if err != nil {
		return Match{}, false, fmt.Errorf("search: %w", err)
	}
	m := Match{Type: entry.Type, Path: entry.Path}

	body := extractBody(string(data))
	if i := index([]byte(body)); i >= 0 {
		m.Line = strings.Count(body[:min(i, len(body))], "\n") + 1
		return m, true, nil
	}

	if opts.Metadata {
		meta, _, err := decodeHeader(bytes.NewReader(data), s.config.ReadBuffer)
		if err != nil {
			return Match{}, false, fmt.Errorf("search: %w", err)
		}
		for k, v := range meta.All() {
			if index([]byte(v)) >= 0 {
				m.Key = k
				return m, true, nil
			}
		}
	}
	return Match{}, false, nil
}
