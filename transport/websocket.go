package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket implements Transport over a WebSocket connection, including the
// push-subscription surface.
type WebSocket struct {
	url    string
	logger *zap.Logger

	conn    *websocket.Conn
	writeMu sync.Mutex
	nextID  atomic.Uint64

	connOnce sync.Once
	connErr  error

	mu      sync.Mutex
	pending map[uint64]chan *jsonRPCResponse
	subs    map[string]*Subscription
	// notes buffers notifications that beat their Subscribe ack across
	// goroutines, keyed by subscription id.
	notes map[string][]json.RawMessage

	closed    chan struct{}
	closeOnce sync.Once
}

// NewWebSocket creates a WebSocket transport. The connection is established
// lazily on the first Call or Subscribe.
func NewWebSocket(url string) *WebSocket {
	return NewWebSocketWithLogger(url, nil)
}

// NewWebSocketWithLogger is like NewWebSocket with a logger for transport
// diagnostics. A nil logger disables them.
func NewWebSocketWithLogger(url string, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		url:     url,
		logger:  logger,
		pending: make(map[uint64]chan *jsonRPCResponse),
		subs:    make(map[string]*Subscription),
		notes:   make(map[string][]json.RawMessage),
		closed:  make(chan struct{}),
	}
}

// connect establishes the WebSocket connection (at most once).
func (ws *WebSocket) connect(ctx context.Context) error {
	ws.connOnce.Do(func() {
		dialer := websocket.Dialer{}
		conn, _, err := dialer.DialContext(ctx, ws.url, nil)
		if err != nil {
			ws.connErr = fmt.Errorf("transport/ws: dial: %w", err)
			return
		}
		ws.conn = conn
		go ws.readLoop()
	})
	return ws.connErr
}

// Call sends a JSON-RPC request over the WebSocket and waits for its
// response. JSON-RPC error objects surface as *Error.
func (ws *WebSocket) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if err := ws.connect(ctx); err != nil {
		return nil, err
	}

	if params == nil {
		params = []interface{}{}
	}

	id := ws.nextID.Add(1)
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	ch := make(chan *jsonRPCResponse, 1)
	ws.mu.Lock()
	ws.pending[id] = ch
	ws.mu.Unlock()

	defer func() {
		ws.mu.Lock()
		delete(ws.pending, id)
		ws.mu.Unlock()
	}()

	ws.writeMu.Lock()
	err := ws.conn.WriteJSON(req)
	ws.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("transport/ws: write: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case resp := <-ch:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ws.closed:
		return nil, ErrClosed
	}
}

// Subscribe opens an eth_subscribe push subscription of the given type and
// returns a Subscription whose events channel receives the raw notification
// payloads. Subscribing to a type outside the standard set emits a
// diagnostic warning on the transport's logger (or the context's warn sink).
func (ws *WebSocket) Subscribe(ctx context.Context, subType string, params ...interface{}) (*Subscription, error) {
	if err := ws.connect(ctx); err != nil {
		return nil, err
	}

	if !Recognized(subType) {
		DiagnosticLogger(ctx, ws.logger).Warn("unrecognized subscription type",
			zap.String("type", subType))
	}

	args := append([]interface{}{subType}, params...)
	result, err := ws.Call(ctx, "eth_subscribe", args...)
	if err != nil {
		return nil, err
	}

	var subID string
	if err := json.Unmarshal(result, &subID); err != nil {
		return nil, fmt.Errorf("transport/ws: parse subscription id: %w", err)
	}

	sub := NewSubscription(subID, 64, func() error {
		ws.mu.Lock()
		delete(ws.subs, subID)
		ws.mu.Unlock()

		_, err := ws.Call(context.Background(), "eth_unsubscribe", subID)
		return err
	})

	ws.mu.Lock()
	ws.subs[subID] = sub
	backlog := ws.notes[subID]
	delete(ws.notes, subID)
	ws.mu.Unlock()

	for _, payload := range backlog {
		sub.Deliver(payload)
	}

	return sub, nil
}

// Close terminates the WebSocket connection and fails all open
// subscriptions.
func (ws *WebSocket) Close() error {
	ws.fail(ErrClosed)
	if ws.conn != nil {
		return ws.conn.Close()
	}
	return nil
}

// fail marks the transport closed and propagates err to every open
// subscription.
func (ws *WebSocket) fail(err error) {
	ws.closeOnce.Do(func() {
		close(ws.closed)

		ws.mu.Lock()
		subs := make([]*Subscription, 0, len(ws.subs))
		for _, s := range ws.subs {
			subs = append(subs, s)
		}
		ws.subs = map[string]*Subscription{}
		ws.mu.Unlock()

		for _, s := range subs {
			s.Fail(err)
		}
	})
}

// notification is the params envelope of an eth_subscription push message.
type notification struct {
	Subscription string          `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

// readLoop reads frames off the connection, routing responses to waiting
// callers and notifications to their subscriptions.
func (ws *WebSocket) readLoop() {
	for {
		select {
		case <-ws.closed:
			return
		default:
		}

		_, message, err := ws.conn.ReadMessage()
		if err != nil {
			ws.fail(fmt.Errorf("transport/ws: read: %w", err))
			return
		}

		var envelope struct {
			ID     uint64          `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
			Result json.RawMessage `json:"result"`
			Error  *Error          `json:"error,omitempty"`
		}
		if err := json.Unmarshal(message, &envelope); err != nil {
			ws.logger.Warn("discarding unparseable frame", zap.Error(err))
			continue
		}

		if envelope.Method == "eth_subscription" {
			var note notification
			if err := json.Unmarshal(envelope.Params, &note); err != nil {
				ws.logger.Warn("discarding malformed notification", zap.Error(err))
				continue
			}
			ws.mu.Lock()
			sub, ok := ws.subs[note.Subscription]
			if !ok && len(ws.notes[note.Subscription]) < 16 {
				ws.notes[note.Subscription] = append(ws.notes[note.Subscription], note.Result)
			}
			ws.mu.Unlock()
			if ok {
				sub.Deliver(note.Result)
			}
			continue
		}

		ws.mu.Lock()
		ch, ok := ws.pending[envelope.ID]
		ws.mu.Unlock()
		if ok {
			ch <- &jsonRPCResponse{
				ID:     envelope.ID,
				Result: envelope.Result,
				Error:  envelope.Error,
			}
		}
	}
}
