package net

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	stdnet "net"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a WebSocket and runs the standard
// session over it. Usable directly as an http.HandlerFunc.
func (srv *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.log.Warn("websocket upgrade failed",
			zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	srv.ServeConn(NewWSConn(ws))
}

// WSConn adapts a WebSocket connection to the Conn byte stream the
// session layer expects. Incoming text messages are treated as protocol
// lines (a missing terminator is supplied); outgoing writes are split on
// line breaks so the client receives one message per reply line.
type WSConn struct {
	ws     *websocket.Conn
	unread []byte
}

func NewWSConn(ws *websocket.Conn) *WSConn {
	return &WSConn{ws: ws}
}

func (c *WSConn) Read(p []byte) (int, error) {
	for len(c.unread) == 0 {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			// A close frame is the WebSocket version of a hangup.
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				return 0, io.EOF
			}
			return 0, err
		}
		if len(msg) == 0 {
			continue
		}
		if msg[len(msg)-1] != '\n' {
			msg = append(msg, '\n')
		}
		c.unread = msg
	}
	n := copy(p, c.unread)
	c.unread = c.unread[n:]
	return n, nil
}

func (c *WSConn) Write(p []byte) (int, error) {
	sent := 0
	rest := p
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, line); err != nil {
			return sent, fmt.Errorf("write message: %w", err)
		}
		sent += len(line) + 1
	}
	if sent > len(p) {
		sent = len(p)
	}
	return sent, nil
}

func (c *WSConn) Close() error {
	return c.ws.Close()
}

func (c *WSConn) RemoteAddr() stdnet.Addr {
	return c.ws.RemoteAddr()
}
