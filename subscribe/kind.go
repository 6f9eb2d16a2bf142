package subscribe

import (
	"fmt"

	"github.com/hedeqiang/courier/transport"
)

// kind carries the naming and validation strategy of one subscription type.
// The closed set {standard, aliased full, aliased filtered full} replaces
// per-call patching of a shared validator.
type kind interface {
	// wireName returns the name the transport's subscription protocol uses.
	wireName() string

	// validate checks the options shape for this kind.
	validate(options map[string]interface{}) error

	// params returns the eth_subscribe parameters following the type name.
	params(options map[string]interface{}) []interface{}
}

// standardKind is a built-in subscription type. Only "logs" takes an options
// object; unrecognized names are rejected.
type standardKind struct {
	name string
}

func (k standardKind) wireName() string { return k.name }

func (k standardKind) validate(options map[string]interface{}) error {
	if !transport.Recognized(k.name) {
		return fmt.Errorf("subscribe: %w: %q", ErrUnknownType, k.name)
	}
	if len(options) > 0 && k.name != "logs" {
		return fmt.Errorf("subscribe: type %q does not accept options", k.name)
	}
	return nil
}

func (k standardKind) params(options map[string]interface{}) []interface{} {
	if len(options) == 0 {
		return nil
	}
	return []interface{}{options}
}

// aliasedFullKind is the full-pending-transaction feed. It keeps its true
// wire name through the public-name rewrite and takes no options.
type aliasedFullKind struct{}

func (aliasedFullKind) wireName() string { return WireFullPendingTransactions }

func (aliasedFullKind) validate(options map[string]interface{}) error {
	if len(options) > 0 {
		return fmt.Errorf("subscribe: type %q does not accept options, use the filtered variant", WireFullPendingTransactions)
	}
	return nil
}

func (aliasedFullKind) params(map[string]interface{}) []interface{} { return nil }

// aliasedFilteredKind is the filtered full-pending-transaction feed. It
// skips strict validation and forwards an open-ended options object.
type aliasedFilteredKind struct{}

func (aliasedFilteredKind) wireName() string { return WireFilteredFullPendingTransactions }

func (aliasedFilteredKind) validate(map[string]interface{}) error { return nil }

func (aliasedFilteredKind) params(options map[string]interface{}) []interface{} {
	if len(options) == 0 {
		return nil
	}
	return []interface{}{options}
}
