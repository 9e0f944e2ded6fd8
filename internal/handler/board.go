package handler

import (
	"go.uber.org/zap"

	"github.com/minesweep/server/internal/game"
	"github.com/minesweep/server/internal/net"
	"github.com/minesweep/server/internal/protocol"
)

// HandleLook replies with the current grid. Never fails.
func HandleLook(sess *net.Session, _ protocol.Command, deps *Deps) {
	sess.SendBoard(deps.Board.Render())
}

// HandleDig digs one square. Hitting a bomb answers BOOM and, outside
// debug mode, ends the session; every other outcome, including
// out-of-bounds and already-dug no-ops, answers with the grid exactly
// like look.
func HandleDig(sess *net.Session, cmd protocol.Command, deps *Deps) {
	if deps.Board.Dig(cmd.X, cmd.Y) == game.DigBoom {
		deps.Log.Info("bomb hit",
			zap.Uint64("session", sess.ID),
			zap.Int("x", cmd.X),
			zap.Int("y", cmd.Y),
			zap.Bool("debug", deps.Config.Server.Debug))
		sess.SendLine(protocol.BoomMessage)
		if !deps.Config.Server.Debug {
			sess.Quit("boom")
		}
		return
	}
	sess.SendBoard(deps.Board.Render())
}

// HandleFlag plants a flag. No reply either way; clients look to see
// the result.
func HandleFlag(_ *net.Session, cmd protocol.Command, deps *Deps) {
	deps.Board.Flag(cmd.X, cmd.Y)
}

// HandleDeflag removes a flag. No reply, same as flag.
func HandleDeflag(_ *net.Session, cmd protocol.Command, deps *Deps) {
	deps.Board.Deflag(cmd.X, cmd.Y)
}
