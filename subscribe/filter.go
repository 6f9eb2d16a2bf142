package subscribe

// Option sets one entry of the options object sent with the subscription
// request. Which entries are accepted depends on the subscription kind; the
// filtered full-pending-transaction feed takes an open-ended set.
type Option func(map[string]interface{})

// buildOptions folds opts into one options object. Nil when no options are
// given, so plain subscriptions send no options parameter at all.
func buildOptions(opts []Option) map[string]interface{} {
	if len(opts) == 0 {
		return nil
	}
	options := make(map[string]interface{}, len(opts))
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithFromAddress filters pending transactions to those sent from addr.
func WithFromAddress(addr string) Option {
	return WithOption("fromAddress", addr)
}

// WithToAddress filters pending transactions to those sent to addr.
func WithToAddress(addr string) Option {
	return WithOption("toAddress", addr)
}

// WithHashesOnly requests transaction hashes instead of full transaction
// bodies.
func WithHashesOnly(hashesOnly bool) Option {
	return WithOption("hashesOnly", hashesOnly)
}

// WithAddress filters log subscriptions to the given contract addresses.
func WithAddress(addrs ...string) Option {
	return WithOption("address", addrs)
}

// WithTopics filters log subscriptions by topic position.
func WithTopics(topics ...interface{}) Option {
	return WithOption("topics", topics)
}

// WithOption sets an arbitrary options entry, for filter parameters the
// typed builders do not cover.
func WithOption(key string, value interface{}) Option {
	return func(options map[string]interface{}) {
		options[key] = value
	}
}
