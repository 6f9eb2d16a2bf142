package codec

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hedeqiang/courier/internal/hex"
)

// DecodeInt decodes a fixed-width integer from its hex wire encoding into a
// decimal string. typ names the numeric type ("uint256", "uint64", "int128",
// ...); a bare "uint" or "int" means the full 256-bit width. Signed types are
// interpreted as two's complement of the stated width.
func DecodeInt(typ, encoded string) (string, error) {
	signed, bits, err := parseIntType(typ)
	if err != nil {
		return "", err
	}

	b, err := hex.Decode(encoded)
	if err != nil {
		return "", fmt.Errorf("codec: decode %s value %q: %w", typ, encoded, err)
	}
	if len(b)*8 > 256 {
		return "", fmt.Errorf("codec: %s value %q exceeds 256 bits", typ, encoded)
	}

	n := new(big.Int).SetBytes(b)
	if !signed {
		if n.BitLen() > bits {
			return "", fmt.Errorf("codec: value %q overflows %s", encoded, typ)
		}
		return n.String(), nil
	}

	// Values may be sign-extended to the full word on the wire; interpret
	// the encoded width as two's complement.
	if width := len(b) * 8; width > 0 && n.Bit(width-1) == 1 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	max := new(big.Int).Sub(half, big.NewInt(1))
	min := new(big.Int).Neg(half)
	if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
		return "", fmt.Errorf("codec: value %q overflows %s", encoded, typ)
	}
	return n.String(), nil
}

// parseIntType splits a Solidity-style numeric type name into signedness and
// bit width.
func parseIntType(typ string) (signed bool, bits int, err error) {
	name := strings.TrimSpace(typ)
	switch {
	case strings.HasPrefix(name, "uint"):
		signed = false
		name = strings.TrimPrefix(name, "uint")
	case strings.HasPrefix(name, "int"):
		signed = true
		name = strings.TrimPrefix(name, "int")
	default:
		return false, 0, fmt.Errorf("codec: unsupported integer type %q", typ)
	}

	if name == "" {
		return signed, 256, nil
	}
	bits, convErr := strconv.Atoi(name)
	if convErr != nil || bits <= 0 || bits > 256 || bits%8 != 0 {
		return false, 0, fmt.Errorf("codec: unsupported integer width in %q", typ)
	}
	return signed, bits, nil
}
