package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest — SHA-256, тот же размер, что и source.File.Hash.
type Digest [32]byte

// Combine salts content with parts. Each part is length-prefixed, so
// ("ab", "c") and ("a", "bc") give different digests.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write(content[:])
	var n [4]byte
	for _, p := range parts {
		binary.BigEndian.PutUint32(n[:], uint32(len(p))) // #nosec G115 -- salts are short
		h.Write(n[:])
		h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }
