// Package codec provides pure encoding helpers for JSON-RPC parameters and
// results: block identifier canonicalization and fixed-width integer decoding.
package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/hedeqiang/courier/internal/hex"
)

// Symbolic block tags accepted by the JSON-RPC block parameter.
var blockTags = map[string]bool{
	"latest":    true,
	"earliest":  true,
	"pending":   true,
	"safe":      true,
	"finalized": true,
}

// FormatBlock canonicalizes a block identifier into the string form the
// JSON-RPC wire expects. It accepts unsigned and signed integers, *big.Int,
// symbolic tags ("latest", "earliest", "pending", "safe", "finalized") and
// already-encoded "0x" quantities.
func FormatBlock(block interface{}) (string, error) {
	switch v := block.(type) {
	case nil:
		return "latest", nil
	case string:
		return formatBlockString(v)
	case uint64:
		return hex.EncodeUint64(v), nil
	case uint:
		return hex.EncodeUint64(uint64(v)), nil
	case int:
		if v < 0 {
			return "", fmt.Errorf("codec: negative block number %d", v)
		}
		return hex.EncodeUint64(uint64(v)), nil
	case int64:
		if v < 0 {
			return "", fmt.Errorf("codec: negative block number %d", v)
		}
		return hex.EncodeUint64(uint64(v)), nil
	case *big.Int:
		if v.Sign() < 0 {
			return "", fmt.Errorf("codec: negative block number %s", v)
		}
		return "0x" + v.Text(16), nil
	default:
		return "", fmt.Errorf("codec: unsupported block identifier type %T", block)
	}
}

func formatBlockString(s string) (string, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if blockTags[tag] {
		return tag, nil
	}
	if hex.HasPrefix(tag) {
		n, err := hex.DecodeUint64(tag)
		if err != nil {
			return "", fmt.Errorf("codec: invalid block quantity %q: %w", s, err)
		}
		return hex.EncodeUint64(n), nil
	}
	// Decimal string form.
	n := new(big.Int)
	if _, ok := n.SetString(tag, 10); !ok || n.Sign() < 0 {
		return "", fmt.Errorf("codec: invalid block identifier %q", s)
	}
	return "0x" + n.Text(16), nil
}
