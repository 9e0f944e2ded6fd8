package net_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/minesweep/server/internal/protocol"
)

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { ws.Close() })
	if err := ws.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	return string(msg)
}

func sendMessage(t *testing.T, ws *websocket.Conn, line string) {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		t.Fatalf("send %q: %v", line, err)
	}
}

// TestWebSocketSession runs a full session over the WebSocket transport:
// same greeting, same commands, one message per reply line.
func TestWebSocketSession(t *testing.T) {
	srv := newTestServer(t, 3, 3, emptyGrid(3, 3), false)
	hs := httptest.NewServer(http.HandlerFunc(srv.ServeWS))
	defer hs.Close()

	ws := dialWS(t, hs.URL)

	if got := readMessage(t, ws); got != protocol.Greeting(3, 3, 1) {
		t.Fatalf("greeting = %q", got)
	}

	sendMessage(t, ws, "look")
	for y := 0; y < 3; y++ {
		if got := readMessage(t, ws); got != "- - -" {
			t.Errorf("look row %d = %q, want %q", y, got, "- - -")
		}
	}

	sendMessage(t, ws, "dig 1 1")
	for y := 0; y < 3; y++ {
		if got := readMessage(t, ws); got != "     " {
			t.Errorf("dig row %d = %q, want all revealed", y, got)
		}
	}

	sendMessage(t, ws, "nonsense")
	if got := readMessage(t, ws); got != protocol.HelpMessage {
		t.Errorf("error reply = %q, want help text", got)
	}

	sendMessage(t, ws, "bye")
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("connection should close after bye")
	}
	waitForCount(t, srv, 0)
}

// TestWebSocketSharesBoardWithTCP digs over a WebSocket and observes the
// change over a plain pipe connection: both transports feed one grid
// and one player count.
func TestWebSocketSharesBoardWithTCP(t *testing.T) {
	srv := newTestServer(t, 2, 2, emptyGrid(2, 2), false)
	hs := httptest.NewServer(http.HandlerFunc(srv.ServeWS))
	defer hs.Close()

	ws := dialWS(t, hs.URL)
	if got := readMessage(t, ws); got != protocol.Greeting(2, 2, 1) {
		t.Fatalf("websocket greeting = %q", got)
	}

	c, r := dialPipe(t, srv)
	if got := readReply(t, r); got != protocol.Greeting(2, 2, 2) {
		t.Fatalf("pipe greeting = %q, want player count 2", got)
	}

	sendMessage(t, ws, "flag 0 0")
	sendMessage(t, ws, "dig 1 1")
	readMessage(t, ws) // row 0
	readMessage(t, ws) // row 1

	send(t, c, "look")
	assertRows(t, readBoard(t, r, 2), []string{"F  ", "   "})
}
