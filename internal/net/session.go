package net

import (
	"bufio"
	"errors"
	"io"
	stdnet "net"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/minesweep/server/internal/protocol"
)

// sessionIDCounter generates session identifiers for log correlation.
var sessionIDCounter atomic.Uint64

// NextSessionID returns a unique session identifier.
func NextSessionID() uint64 {
	return sessionIDCounter.Add(1)
}

// Session is one connected player. It owns its connection: all reads and
// all replies happen on the session's goroutine, so no write lock is
// needed. The only cross-goroutine entry point is Close, which the
// server uses to yank a blocked session during shutdown.
type Session struct {
	ID uint64

	conn    Conn
	r       *bufio.Reader
	reg     *protocol.Registry
	log     *zap.Logger
	maxLine int

	alive  bool
	reason string // why the session ended, for the disconnect log

	closeOnce sync.Once
}

// NewSession wraps conn in a session. Run starts the command loop.
func NewSession(conn Conn, reg *protocol.Registry, log *zap.Logger, maxLine int) *Session {
	return &Session{
		ID:      NextSessionID(),
		conn:    conn,
		r:       bufio.NewReader(conn),
		reg:     reg,
		log:     log,
		maxLine: maxLine,
		alive:   true,
	}
}

// Run reads commands until the session ends. Lines the parser rejects
// get the help text back and never end the session; only Quit (bye, or
// a fatal BOOM), a peer hangup, or an I/O failure do.
func (s *Session) Run() {
	for s.alive {
		line, err := ReadLine(s.r, s.maxLine)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				s.reason = "client hung up"
			case errors.Is(err, stdnet.ErrClosed):
				s.reason = "connection closed"
			default:
				s.reason = "read failed"
				s.log.Debug("session read failed",
					zap.Uint64("session", s.ID), zap.Error(err))
			}
			return
		}

		cmd, err := protocol.Parse(line)
		if err != nil {
			s.log.Debug("rejected input",
				zap.Uint64("session", s.ID),
				zap.String("line", line),
				zap.Error(err))
			s.SendLine(protocol.HelpMessage)
			continue
		}
		if !s.reg.Dispatch(s, cmd) {
			s.SendLine(protocol.HelpMessage)
		}
	}
}

// SendLine writes one reply line. A failed write ends the session; there
// is no point reading commands for a client that cannot hear answers.
func (s *Session) SendLine(line string) {
	if !s.alive {
		return
	}
	if err := WriteLine(s.conn, line); err != nil {
		s.writeFailed(err)
	}
}

// SendBoard writes the grid, one row per line, as a single Write.
func (s *Session) SendBoard(rows []string) {
	if !s.alive {
		return
	}
	if _, err := io.WriteString(s.conn, strings.Join(rows, "\n")+"\n"); err != nil {
		s.writeFailed(err)
	}
}

// Quit marks the session finished. The run loop stops before reading
// another command; reason shows up in the disconnect log.
func (s *Session) Quit(reason string) {
	s.alive = false
	s.reason = reason
}

// Close closes the underlying connection. Safe to call from any
// goroutine and more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}

func (s *Session) writeFailed(err error) {
	s.alive = false
	s.reason = "write failed"
	s.log.Debug("session write failed",
		zap.Uint64("session", s.ID), zap.Error(err))
}
