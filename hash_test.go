// Content hash tests.
//
// The hash identifies a particular version of a file's bytes, header
// included. It must be deterministic, always 16 lowercase hex characters,
// and different algorithms must not agree, so that a hash recorded under
// one algorithm is never mistaken for a match under another.
package libstore

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestHashFormat(t *testing.T) {
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		result := hash([]byte("test"), alg)
		if !hexPattern.MatchString(result) {
			t.Errorf("alg %d did not produce 16 hex chars: %q", alg, result)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		a := hash([]byte("// name: x\nbody"), alg)
		b := hash([]byte("// name: x\nbody"), alg)
		if a != b {
			t.Errorf("alg %d: %q != %q", alg, a, b)
		}
	}
}

func TestHashAlgorithmsDiffer(t *testing.T) {
	data := []byte("same content")
	x := hash(data, AlgXXHash3)
	f := hash(data, AlgFNV1a)
	b := hash(data, AlgBlake2b)
	if x == f || x == b || f == b {
		t.Errorf("algorithms collide: xxh3=%s fnv=%s blake2b=%s", x, f, b)
	}
}

// TestHashSeesHeader verifies that a metadata-only change produces a new
// hash, since the header is part of the hashed bytes.
func TestHashSeesHeader(t *testing.T) {
	a := hash([]byte("// v: 1\nbody"), AlgXXHash3)
	b := hash([]byte("// v: 2\nbody"), AlgXXHash3)
	if a == b {
		t.Error("header change did not change hash")
	}
}

func TestHashUnknownAlgorithm(t *testing.T) {
	if got := hash([]byte("x"), 99); got != "" {
		t.Errorf("hash with unknown algorithm = %q, want empty", got)
	}
}
