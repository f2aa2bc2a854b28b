package libstore

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	// Verify all errors are defined and distinct
	errs := []error{
		ErrNotFound,
		ErrConfig,
		ErrMalformedContent,
		ErrInvalidPath,
		ErrInvalidKey,
		ErrInvalidPattern,
		ErrIsDirectory,
		ErrExists,
		ErrCorruptArchive,
		ErrUnknownKind,
		ErrKindExists,
	}

	for i, err := range errs {
		if err == nil {
			t.Errorf("error at index %d is nil", i)
		}
	}

	seen := make(map[string]int)
	for i, err := range errs {
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("error at index %d has same message as index %d: %q", i, prev, msg)
		}
		seen[msg] = i
	}
}

func TestNotFoundErrorIs(t *testing.T) {
	err := error(&NotFoundError{Type: "flows", Path: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(%v, ErrNotFound) = false, want true", err)
	}
	if errors.Is(err, ErrConfig) {
		t.Errorf("errors.Is(%v, ErrConfig) = true, want false", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path != "nope" {
		t.Errorf("errors.As path = %+v, want nope", nf)
	}
	if want := "entry not found: flows/nope"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConfigErrorIs(t *testing.T) {
	err := error(&ConfigError{Field: "path"})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("errors.Is(%v, ErrConfig) = false, want true", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "path" {
		t.Errorf("errors.As field = %+v, want path", ce)
	}
}
