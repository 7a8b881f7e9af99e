//go:build js && wasm

package network

import (
	"context"
	"net"
	"strings"

	"github.com/coder/websocket"
)

// Dial connects to the server over a websocket. address is either a full
// ws:// URL or a host:port of the websocket listener.
func Dial(address string) (net.Conn, error) {
	wsURL := address
	if !strings.HasPrefix(wsURL, "ws://") && !strings.HasPrefix(wsURL, "wss://") {
		wsURL = "ws://" + address + "/ws"
	}

	ctx := context.Background()
	c, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}

	return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
}
