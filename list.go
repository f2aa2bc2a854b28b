// Directory listing.
//
// A listing holds the immediate children of one directory: every
// subdirectory name in byte order, then every file in byte order with its
// decoded header metadata. Names starting with "." are hidden. Children
// are classified by what they resolve to, so a symlink to a directory is
// listed as a directory.
package libstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	json "github.com/goccy/go-json"
)

// Item is one child in a Listing. A directory item has only a Name. A file
// item also carries the metadata decoded from its header.
type Item struct {
	Name string
	Dir  bool
	Meta *Metadata
}

// Listing is an ordered directory listing: directories first, then files.
type Listing []Item

// Dirs returns the directory names in order.
func (l Listing) Dirs() []string {
	var out []string
	for _, it := range l {
		if it.Dir {
			out = append(out, it.Name)
		}
	}
	return out
}

// Files returns the file items in order.
func (l Listing) Files() []Item {
	var out []Item
	for _, it := range l {
		if !it.Dir {
			out = append(out, it)
		}
	}
	return out
}

// MarshalJSON encodes a directory as its bare name and a file as its
// metadata object extended with "fn" holding the file name.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Dir {
		return json.Marshal(it.Name)
	}
	var buf bytes.Buffer
	if err := it.Meta.appendJSON(&buf, "fn", it.Name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (it *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*it = Item{Name: name, Dir: true}
		return nil
	}
	meta := &Metadata{}
	if err := meta.UnmarshalJSON(data); err != nil {
		return err
	}
	name, _ := meta.Get("fn")
	meta.Delete("fn")
	*it = Item{Name: name, Meta: meta}
	return nil
}

// list enumerates dir, which lies inside the namespace directory ns.
func (s *Store) list(ns, dir string) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	dirs := Listing{}
	var files Listing
	for _, name := range names {
		if name[0] == '.' {
			continue
		}
		full := filepath.Join(dir, name)
		info, err := os.Stat(full)
		if err != nil {
			if missing(err) {
				s.log.Debug("skipping dangling entry", "dir", relTo(ns, dir), "name", name)
				continue
			}
			return nil, fmt.Errorf("list: %w", err)
		}
		switch {
		case info.IsDir():
			dirs = append(dirs, Item{Name: name, Dir: true})
		case info.Mode().IsRegular():
			meta, err := s.readMeta(full)
			if err != nil {
				return nil, fmt.Errorf("list: %w", err)
			}
			files = append(files, Item{Name: name, Meta: meta})
		default:
			s.log.Debug("skipping special file", "dir", relTo(ns, dir), "name", name, "mode", info.Mode().String())
		}
	}
	return append(dirs, files...), nil
}

// relTo returns full relative to base as a slash path, for log output.
func relTo(base, full string) string {
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}
