package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// ComputeChecksum computes the SHA-256 checksum of the tensor payload.
//
// Every record contributes its name, its shape and the IEEE-754 bits of its
// values, so the checksum is independent of JSON number formatting.
func ComputeChecksum(tensors []TensorRecord) [32]byte {
	h := sha256.New()
	var buf [8]byte
	for _, t := range tensors {
		h.Write([]byte(t.Name))
		h.Write([]byte{0})
		for _, d := range t.Shape {
			binary.BigEndian.PutUint64(buf[:], uint64(d))
			h.Write(buf[:])
		}
		for _, v := range t.Data {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ChecksumHex returns ComputeChecksum as a lowercase hex string.
func ChecksumHex(tensors []TensorRecord) string {
	sum := ComputeChecksum(tensors)
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum compares the computed checksum against the stored one.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(tensors []TensorRecord, stored string) error {
	if ChecksumHex(tensors) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
