// Entry info.
package libstore

import (
	"fmt"
	"os"
	"path"
	"time"
)

// EntryInfo describes a stored file or directory without its content.
// Hash is empty for directories.
type EntryInfo struct {
	Type     string    `json:"type"`
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	IsDir    bool      `json:"dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Hash     string    `json:"hash,omitempty"`
}

// Info returns size, modification time and content hash for an address.
// The flows ".json" fallback applies as it does for GetEntry.
func (s *Store) Info(typ, p string) (*EntryInfo, error) {
	return withFlowsFallback(typ, p, func(p string) (*EntryInfo, error) {
		return s.info(typ, p)
	})
}

func (s *Store) info(typ, p string) (*EntryInfo, error) {
	_, full, err := s.target(typ, p)
	if err != nil {
		return nil, err
	}
	st, err := stat(full, p)
	if err != nil {
		if missing(err) {
			return nil, &NotFoundError{Type: typ, Path: p}
		}
		return nil, fmt.Errorf("info: %w", err)
	}

	rel, _ := cleanPath(p)
	name := typ
	if rel != "" {
		name = path.Base(rel)
	}
	info := &EntryInfo{
		Type:     typ,
		Path:     rel,
		Name:     name,
		IsDir:    st.IsDir(),
		Size:     st.Size(),
		Modified: st.ModTime(),
	}
	if info.IsDir {
		info.Size = 0
		return info, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	info.Size = int64(len(data))
	info.Hash = hash(data, s.config.HashAlgorithm)
	return info, nil
}
