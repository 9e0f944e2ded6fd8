// Package net runs the connection-facing half of the server: the accept
// loop, one session per connection, the line codec, and the transport
// adapters. Sessions parse commands and hand them to registered
// handlers; all game state lives elsewhere and is shared by reference.
package net

import stdnet "net"

// Conn is the byte-stream transport a session speaks over. A *net.TCPConn
// satisfies it as-is; other transports provide adapters (see WSConn).
type Conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	RemoteAddr() stdnet.Addr
}
