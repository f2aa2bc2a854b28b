// Store registry.
//
// A host composes stores by kind rather than by importing a concrete
// type. The registry maps a kind identifier to a factory that builds a
// Source from loosely typed options, typically decoded from a config file.
// Registration is explicit: nothing is registered as a side effect of
// importing this package, and DefaultRegistry returns a fresh registry
// with the filesystem store already added.
package libstore

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Source is the interface a host uses to read and write library entries.
type Source interface {
	ID() string
	Label() string
	Init() error
	GetEntry(typ, path string) (*Entry, error)
	SaveEntry(typ, path string, meta *Metadata, body string) error
}

var _ Source = (*Store)(nil)

// Options are the loosely typed settings passed to a Factory.
type Options map[string]any

// Factory builds a Source from options.
type Factory func(Options) (Source, error)

// Registry maps store kinds to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the filesystem store registered
// under Kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(Kind, NewSource)
	return r
}

// Register adds a factory for kind. Registering a kind twice fails with
// ErrKindExists.
func (r *Registry) Register(kind string, f Factory) error {
	if kind == "" || f == nil {
		return fmt.Errorf("register: kind and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %q", ErrKindExists, kind)
	}
	r.factories[kind] = f
	return nil
}

// Open builds a Source of the given kind. It does not call Init.
func (r *Registry) Open(kind string, opts Options) (Source, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(opts)
}

// Kinds returns the registered kinds in order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// sourceOptions is the option shape accepted by NewSource.
type sourceOptions struct {
	ID            string      `mapstructure:"id"`
	Label         string      `mapstructure:"label"`
	Path          string      `mapstructure:"path"`
	ReadBuffer    int         `mapstructure:"read_buffer"`
	HashAlgorithm int         `mapstructure:"hash_algorithm"`
	SyncWrites    bool        `mapstructure:"sync_writes"`
	FileMode      fs.FileMode `mapstructure:"file_mode"`
	DirMode       fs.FileMode `mapstructure:"dir_mode"`
}

// NewSource is the Factory for the filesystem store. Numeric identifiers
// are accepted and converted to strings. A missing path fails with
// ErrConfig immediately. The "logger" option, when present, must hold a
// *slog.Logger and is passed through untouched.
func NewSource(opts Options) (Source, error) {
	opts = maps.Clone(opts)
	var logger *slog.Logger
	if v, ok := opts["logger"]; ok {
		l, ok := v.(*slog.Logger)
		if !ok {
			return nil, &ConfigError{Field: "logger", Value: v}
		}
		logger = l
		delete(opts, "logger")
	}

	var o sourceOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &o,
		DecodeHook:       FileModeHook(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(opts)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	s, err := New(Config{
		ID:            o.ID,
		Label:         o.Label,
		Path:          o.Path,
		ReadBuffer:    o.ReadBuffer,
		HashAlgorithm: o.HashAlgorithm,
		SyncWrites:    o.SyncWrites,
		FileMode:      o.FileMode,
		DirMode:       o.DirMode,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// FileModeHook is a mapstructure decode hook that reads an octal string
// such as "0640" into an fs.FileMode. Numbers are left to the decoder.
func FileModeHook() mapstructure.DecodeHookFuncType {
	modeType := reflect.TypeOf(fs.FileMode(0))
	return func(from, to reflect.Type, data any) (any, error) {
		if to != modeType || from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		m, err := strconv.ParseUint(s, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("file mode %q: %w", s, err)
		}
		return fs.FileMode(m), nil
	}
}
