// Store type, configuration and address resolution.
//
// A Store maps an address (type, path) to <root>/<type>/<path>. The type
// is a single directory name. The path is cleaned lexically and must stay
// inside the namespace directory; anything that would climb out of it
// through ".." is rejected with ErrInvalidPath before the filesystem is
// touched. Symlinks already present in the tree are followed wherever they
// point, since they were placed there by whoever manages the library.
package libstore

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

// Kind identifies the filesystem store in a Registry.
const Kind = "library-file-store"

// FlowsType is the namespace whose entries are JSON documents. Its paths
// get an implicit ".json" suffix and its bodies are re-indented on save.
const FlowsType = "flows"

const flowsExt = ".json"

// Config holds store configuration. Path is required; every other field
// has a usable zero value.
type Config struct {
	ID            string       // Identifier assigned by the host
	Label         string       // Display label
	Path          string       // Storage root directory
	ReadBuffer    int          // Chunk size for header scans (default 4KB)
	HashAlgorithm int          // Content hash for Info and Export (default xxHash3)
	SyncWrites    bool         // Call fsync after each save
	FileMode      fs.FileMode  // Mode for new files (default 0644)
	DirMode       fs.FileMode  // Mode for new directories (default 0755)
	Logger        *slog.Logger // Diagnostics (default discards)
}

// Store is a library entry store rooted at a directory. It holds no
// mutable state and is safe for concurrent use; concurrent saves to the
// same address race at the filesystem with last-write-wins.
type Store struct {
	config Config
	root   string
	log    *slog.Logger
}

// New validates config and returns a Store. It does not touch the disk;
// call Init to create the root directory.
func New(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, &ConfigError{Field: "path", Value: config.Path}
	}
	if config.ReadBuffer == 0 {
		config.ReadBuffer = 4 * 1024
	}
	if config.ReadBuffer < 0 {
		return nil, &ConfigError{Field: "read_buffer", Value: config.ReadBuffer}
	}
	if config.HashAlgorithm == 0 {
		config.HashAlgorithm = AlgXXHash3
	}
	if !validAlgorithm(config.HashAlgorithm) {
		return nil, &ConfigError{Field: "hash_algorithm", Value: config.HashAlgorithm}
	}
	if config.FileMode == 0 {
		config.FileMode = 0644
	}
	if config.DirMode == 0 {
		config.DirMode = 0755
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	root, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &Store{
		config: config,
		root:   root,
		log:    config.Logger.With("store", config.ID),
	}, nil
}

// Init creates the storage root if it does not exist. It is idempotent.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.root, s.config.DirMode); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

// ID returns the identifier the store was configured with.
func (s *Store) ID() string { return s.config.ID }

// Label returns the display label the store was configured with.
func (s *Store) Label() string { return s.config.Label }

// Root returns the absolute storage root.
func (s *Store) Root() string { return s.root }

// namespace returns the directory for typ.
func (s *Store) namespace(typ string) (string, error) {
	if typ == "" || typ == "." || typ == ".." || strings.HasPrefix(typ, ".") ||
		strings.ContainsAny(typ, `/\`) {
		return "", fmt.Errorf("%w: type %q", ErrInvalidPath, typ)
	}
	return filepath.Join(s.root, typ), nil
}

// target resolves (typ, p) to the namespace directory and the absolute
// file or directory path. A leading slash in p is relative to the
// namespace, as is an empty p.
func (s *Store) target(typ, p string) (ns, full string, err error) {
	ns, err = s.namespace(typ)
	if err != nil {
		return "", "", err
	}
	rel, err := cleanPath(p)
	if err != nil {
		return "", "", err
	}
	if rel == "" {
		return ns, ns, nil
	}
	return ns, filepath.Join(ns, filepath.FromSlash(rel)), nil
}

// cleanPath turns a caller path into a clean relative slash path, or ""
// for the namespace root.
func cleanPath(p string) (string, error) {
	rel := strings.TrimLeft(p, "/")
	if rel == "" {
		return "", nil
	}
	rel = path.Clean(rel)
	if rel == "." {
		return "", nil
	}
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return rel, nil
}

// stat is os.Stat for an address. A path written with a trailing "/" names
// a directory, so a file found there fails with ENOTDIR the way the kernel
// fails the unnormalised path.
func stat(full, p string) (fs.FileInfo, error) {
	st, err := os.Stat(full)
	if err == nil && !st.IsDir() && strings.HasSuffix(p, "/") {
		return nil, &fs.PathError{Op: "stat", Path: full + "/", Err: syscall.ENOTDIR}
	}
	return st, err
}
