// Content hashes for entry info and archive records.
//
// The hash is a 16 hex character digest of the raw file bytes, header
// included, so a metadata-only change produces a new hash. Three
// algorithms are supported, selectable via Config.HashAlgorithm.
package libstore

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

func validAlgorithm(alg int) bool {
	return alg == AlgXXHash3 || alg == AlgFNV1a || alg == AlgBlake2b
}

// hash returns the 16 hex character digest of data.
func hash(data []byte, alg int) string {
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(data))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
