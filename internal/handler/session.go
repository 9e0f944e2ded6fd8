package handler

import (
	"github.com/minesweep/server/internal/net"
	"github.com/minesweep/server/internal/protocol"
)

// HandleHelp replies with the command summary.
func HandleHelp(sess *net.Session, _ protocol.Command, _ *Deps) {
	sess.SendLine(protocol.HelpMessage)
}

// HandleBye ends the session without a reply.
func HandleBye(sess *net.Session, _ protocol.Command, _ *Deps) {
	sess.Quit("bye")
}
