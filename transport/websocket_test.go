package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// wsServer speaks just enough JSON-RPC over WebSocket for the tests: calls
// are answered, eth_subscribe is acked with a fixed id followed by one
// notification, eth_unsubscribe is counted.
func wsServer(t *testing.T) (*httptest.Server, *atomic.Int32, chan *websocket.Conn) {
	t.Helper()
	var unsubscribes atomic.Int32
	conns := make(chan *websocket.Conn, 8)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conns <- conn

		for {
			var req struct {
				ID     uint64        `json:"id"`
				Method string        `json:"method"`
				Params []interface{} `json:"params"`
			}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}

			switch req.Method {
			case "eth_chainId":
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": req.ID, "result": "0x1",
				})
			case "eth_subscribe":
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": req.ID, "result": "0xfeed",
				})
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0",
					"method":  "eth_subscription",
					"params": map[string]interface{}{
						"subscription": "0xfeed",
						"result":       map[string]interface{}{"number": "0x10"},
					},
				})
			case "eth_unsubscribe":
				unsubscribes.Add(1)
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": req.ID, "result": true,
				})
			default:
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0", "id": req.ID,
					"error": map[string]interface{}{"code": -32601, "message": "method not found"},
				})
			}
		}
	}))
	return srv, &unsubscribes, conns
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketCall(t *testing.T) {
	srv, _, _ := wsServer(t)
	defer srv.Close()

	ws := NewWebSocket(wsURL(srv))
	defer ws.Close()

	result, err := ws.Call(context.Background(), "eth_chainId")
	require.NoError(t, err)
	require.JSONEq(t, `"0x1"`, string(result))
}

func TestWebSocketCallRPCError(t *testing.T) {
	srv, _, _ := wsServer(t)
	defer srv.Close()

	ws := NewWebSocket(wsURL(srv))
	defer ws.Close()

	_, err := ws.Call(context.Background(), "eth_unknown")
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, -32601, rpcErr.Code)
}

func TestWebSocketSubscribeRoutesNotifications(t *testing.T) {
	srv, unsubscribes, _ := wsServer(t)
	defer srv.Close()

	ws := NewWebSocket(wsURL(srv))
	defer ws.Close()

	sub, err := ws.Subscribe(context.Background(), "newHeads")
	require.NoError(t, err)
	require.Equal(t, "0xfeed", sub.ID())

	select {
	case payload := <-sub.Events():
		require.JSONEq(t, `{"number":"0x10"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}

	require.NoError(t, sub.Unsubscribe())
	require.Equal(t, int32(1), unsubscribes.Load())
}

func TestWebSocketConnectionLossFailsSubscriptions(t *testing.T) {
	srv, _, conns := wsServer(t)
	ws := NewWebSocket(wsURL(srv))
	defer ws.Close()

	sub, err := ws.Subscribe(context.Background(), "newHeads")
	require.NoError(t, err)

	// CloseClientConnections cannot reach hijacked (upgraded) connections;
	// sever the server-side conn directly instead.
	serverConn := <-conns
	require.NoError(t, serverConn.Close())

	select {
	case err := <-sub.Err():
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscription failure not delivered")
	}
	srv.Close()
}

func TestWebSocketDialFailure(t *testing.T) {
	ws := NewWebSocket("ws://127.0.0.1:0")
	_, err := ws.Call(context.Background(), "eth_chainId")
	require.Error(t, err)

	// The dial error is sticky.
	_, err2 := ws.Call(context.Background(), "eth_chainId")
	require.Equal(t, err, err2)
}
