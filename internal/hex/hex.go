// Package hex provides utilities for encoding and decoding hexadecimal strings
// with the "0x" prefix commonly used in Ethereum.
package hex

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Encode returns the hexadecimal encoding of src with "0x" prefix.
func Encode(src []byte) string {
	return "0x" + hex.EncodeToString(src)
}

// Decode decodes a hex string (with or without "0x" prefix) into bytes.
func Decode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// MustDecode is like Decode but panics on error.
func MustDecode(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(fmt.Sprintf("hex: invalid hex string %q: %v", s, err))
	}
	return b
}

// EncodeUint64 encodes a uint64 as a "0x"-prefixed hex string.
func EncodeUint64(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}

// DecodeUint64 parses a "0x"-prefixed hex string as a uint64.
func DecodeUint64(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return strconv.ParseUint(s, 16, 64)
}

// HasPrefix reports whether s starts with "0x" or "0X".
func HasPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// Checksum returns the EIP-55 mixed-case checksum encoding of a 20-byte
// address. The input may be any-cased and may omit the "0x" prefix.
func Checksum(address string) (string, error) {
	b, err := Decode(address)
	if err != nil {
		return "", fmt.Errorf("hex: invalid address %q: %w", address, err)
	}
	if len(b) != 20 {
		return "", fmt.Errorf("hex: address %q: expected 20 bytes, got %d", address, len(b))
	}

	lower := hex.EncodeToString(b)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i := range out {
		if out[i] < 'a' {
			continue // digit
		}
		// Uppercase when the corresponding checksum nibble is >= 8.
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(out), nil
}
