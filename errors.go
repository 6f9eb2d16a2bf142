package courier

import "errors"

var (
	// ErrNoWriteProvider is returned when a signing method is dispatched
	// with no write provider configured.
	ErrNoWriteProvider = errors.New("courier: no write provider configured")

	// ErrClosed is returned when operating on a closed client.
	ErrClosed = errors.New("courier: client closed")

	// ErrNoRESTEndpoint is returned when an enhanced REST call is made on a
	// client with no REST endpoint configured.
	ErrNoRESTEndpoint = errors.New("courier: no REST endpoint configured")

	// ErrNoSubscriptionTransport is returned when a subscription is opened
	// on a client without a push-capable transport.
	ErrNoSubscriptionTransport = errors.New("courier: no subscription transport configured")
)
