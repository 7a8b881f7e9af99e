package network

import (
	"net"
	"net/http"

	"github.com/coder/websocket"
)

// NewWebSocketServer returns an HTTP server that upgrades /ws requests and
// hands each one to handler as a net.Conn. The browser build of the client
// is served from ./static.
func NewWebSocketServer(addr string, handler func(net.Conn)) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			return
		}

		// NetConn closes the socket when the request context ends, so the
		// handler has to run to completion here.
		handler(websocket.NetConn(r.Context(), c, websocket.MessageBinary))
	})
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	return &http.Server{Addr: addr, Handler: mux}
}
