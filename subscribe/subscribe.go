// Package subscribe extends the standard pub/sub type set with
// provider-specific subscription kinds, reusing the transport's
// push-subscription mechanism under public name aliases.
package subscribe

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hedeqiang/courier/transport"
)

// Wire-level names of the provider-specific subscription types.
const (
	WireFullPendingTransactions         = "alchemy_newFullPendingTransactions"
	WireFilteredFullPendingTransactions = "alchemy_filteredNewFullPendingTransactions"
)

// Public subscription type names. The short forms are kept for backward
// compatibility and alias the same wire types as the long forms.
const (
	NewHeads               = "newHeads"
	Logs                   = "logs"
	NewPendingTransactions = "newPendingTransactions"
	Syncing                = "syncing"

	FullPendingTransactions            = "alchemy_fullPendingTransactions"
	NewFullPendingTransactions         = WireFullPendingTransactions
	FilteredFullPendingTransactions    = "alchemy_filteredFullPendingTransactions"
	FilteredNewFullPendingTransactions = WireFilteredFullPendingTransactions
)

// ErrUnknownType is returned when subscribing to a type outside both the
// standard set and the provider-specific extensions.
var ErrUnknownType = errors.New("unknown subscription type")

// aliases maps public subscription type names to their kinds. Two public
// names may share one wire name.
var aliases = map[string]kind{
	FullPendingTransactions:            aliasedFullKind{},
	NewFullPendingTransactions:         aliasedFullKind{},
	FilteredFullPendingTransactions:    aliasedFilteredKind{},
	FilteredNewFullPendingTransactions: aliasedFilteredKind{},
}

// resolveKind maps a public type name to its kind. Names outside the alias
// table fall through to the standard kind and its strict validation.
func resolveKind(publicType string) kind {
	if k, ok := aliases[publicType]; ok {
		return k
	}
	return standardKind{name: publicType}
}

// Adapter opens subscriptions over a push-capable transport, translating
// public type names to wire names.
type Adapter struct {
	t      transport.Transport
	logger *zap.Logger
}

// NewAdapter creates an Adapter over t. A nil logger disables diagnostics.
func NewAdapter(t transport.Transport, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{t: t, logger: logger}
}

// Subscribe opens a push subscription of the given public type and starts
// delivering raw notifications to sink. The returned handle owns the
// subscription lifecycle; a transport-level failure moves it to a terminal
// error state and resubscribing requires a new Subscribe call.
//
// Provider-specific wire names sit outside the transport's built-in set, so
// the transport's benign "unrecognized type" warning is suppressed for the
// duration of this one call.
func (a *Adapter) Subscribe(ctx context.Context, publicType string, sink Sink, opts ...Option) (*Handle, error) {
	options := buildOptions(opts)

	k := resolveKind(publicType)
	if err := k.validate(options); err != nil {
		return nil, err
	}

	wire := k.wireName()
	callCtx := ctx
	if !transport.Recognized(wire) {
		callCtx = transport.WithWarnSink(ctx, zap.NewNop())
	}

	sub, err := a.t.Subscribe(callCtx, wire, k.params(options)...)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("subscription active",
		zap.String("type", publicType),
		zap.String("wire", wire),
		zap.String("id", sub.ID()))

	h := newHandle(publicType, wire, sub, sink)
	h.start(ctx)
	return h, nil
}
