// Package libstore provides a filesystem-backed store for named, typed
// library entries such as flow definitions, function snippets and
// templates. Entries are addressed by a type (a top-level namespace
// directory) and a slash-separated path inside it.
//
// Each entry is a single plain file. Metadata is kept in the same file as
// a leading block of "// key: value" comment lines, so no sidecar file or
// database is needed, and directory browsing is derived entirely from the
// filesystem. Nothing is cached: every read goes back to disk, which keeps
// results current when the tree is edited by hand or by another process.
package libstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Callers use errors.Is to tell
// a missing entry (ErrNotFound) apart from bad input (ErrInvalidPath,
// ErrInvalidKey, ErrMalformedContent) and plain I/O failures, which are
// returned wrapped but otherwise untranslated.
var (
	ErrNotFound         = errors.New("entry not found")
	ErrConfig           = errors.New("invalid configuration")
	ErrMalformedContent = errors.New("malformed content")
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidKey       = errors.New("invalid metadata key")
	ErrInvalidPattern   = errors.New("invalid search pattern")
	ErrIsDirectory      = errors.New("entry is a directory")
	ErrExists           = errors.New("entry already exists")
	ErrCorruptArchive   = errors.New("corrupt archive")
	ErrUnknownKind      = errors.New("unknown store kind")
	ErrKindExists       = errors.New("store kind already registered")
)

// NotFoundError reports the path the caller asked for. For the flows
// namespace this is the path before any ".json" retry.
type NotFoundError struct {
	Type string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s/%s", ErrNotFound, e.Type, e.Path)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigError names the configuration field that was missing or invalid.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v", ErrConfig, e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
