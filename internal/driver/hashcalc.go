package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"slices"

	"inlinable/internal/parser"
)

// Digest is a SHA-256 value.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// combineDigest: H(content || part1 || part2 ...). Части: в детерминированном порядке.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(p))) // #nosec G115 -- длины частей малы
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies an interface: the file content plus everything that
// changes which #if branches are taken, plus the payload schema.
func cacheKey(content Digest, conds parser.Conditions) Digest {
	defines := make([]string, 0, len(conds.Defines))
	for d, on := range conds.Defines {
		if on {
			defines = append(defines, d)
		}
	}
	slices.Sort(defines)

	parts := [][]byte{
		{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)},
		[]byte(conds.OS),
		[]byte(conds.Arch),
	}
	for _, d := range defines {
		parts = append(parts, []byte(d))
	}
	return combineDigest(content, parts...)
}
