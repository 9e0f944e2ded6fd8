package net

import (
	"fmt"
	stdnet "net"
	"sync"

	"go.uber.org/zap"

	"github.com/minesweep/server/internal/protocol"
)

// Server owns the accept loop and the session lifecycle. One instance
// serves every transport; each accepted connection gets its own
// goroutine running one Session against the shared registry.
type Server struct {
	width   int
	height  int
	maxLine int
	reg     *protocol.Registry
	store   *SessionStore
	log     *zap.Logger

	mu        sync.Mutex
	listeners []stdnet.Listener
	stopped   bool
}

// NewServer builds a server for a width x height board. The dimensions
// only feed the connect greeting; the grid itself lives behind the
// registered handlers.
func NewServer(width, height, maxLine int, reg *protocol.Registry, log *zap.Logger) *Server {
	return &Server{
		width:   width,
		height:  height,
		maxLine: maxLine,
		reg:     reg,
		store:   NewSessionStore(),
		log:     log,
	}
}

// Store returns the session store.
func (srv *Server) Store() *SessionStore {
	return srv.store
}

// Serve accepts connections on l until Stop is called or the listener
// fails. It always ends up closing l.
func (srv *Server) Serve(l stdnet.Listener) error {
	if !srv.track(l) {
		l.Close()
		return nil
	}
	defer l.Close()

	for {
		conn, err := l.Accept()
		if err != nil {
			if srv.isStopped() {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go srv.ServeConn(conn)
	}
}

// ServeConn runs one complete session on conn: register, greet, command
// loop, release. It blocks until the session ends and guarantees the
// player count drops exactly once however the session went away. Every
// transport funnels into this method.
func (srv *Server) ServeConn(conn Conn) {
	sess := NewSession(conn, srv.reg, srv.log, srv.maxLine)
	players := srv.store.Add(sess)
	srv.log.Info("player connected",
		zap.Uint64("session", sess.ID),
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("players", players))

	defer func() {
		sess.Close()
		left := srv.store.Remove(sess.ID)
		srv.log.Info("player disconnected",
			zap.Uint64("session", sess.ID),
			zap.String("reason", sess.reason),
			zap.Int("players", left))
	}()

	sess.SendLine(protocol.Greeting(srv.width, srv.height, players))
	sess.Run()
}

// Stop closes every listener and every live session. Safe to call more
// than once; later Serve calls return immediately.
func (srv *Server) Stop() {
	srv.mu.Lock()
	if srv.stopped {
		srv.mu.Unlock()
		return
	}
	srv.stopped = true
	listeners := srv.listeners
	srv.listeners = nil
	srv.mu.Unlock()

	for _, l := range listeners {
		l.Close()
	}
	srv.store.CloseAll()
}

func (srv *Server) track(l stdnet.Listener) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.stopped {
		return false
	}
	srv.listeners = append(srv.listeners, l)
	return true
}

func (srv *Server) isStopped() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.stopped
}
