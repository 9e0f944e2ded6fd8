// Package handler implements the protocol verbs against the shared
// grid. Handlers receive the session as an opaque value from the
// registry and cast it back to the concrete session type.
package handler

import (
	"go.uber.org/zap"

	"github.com/minesweep/server/internal/config"
	"github.com/minesweep/server/internal/game"
	"github.com/minesweep/server/internal/net"
	"github.com/minesweep/server/internal/protocol"
)

// Deps holds shared dependencies injected into all command handlers.
type Deps struct {
	Board  *game.Board
	Config *config.Config
	Log    *zap.Logger
}

// RegisterAll registers every protocol verb into the registry.
func RegisterAll(reg *protocol.Registry, deps *Deps) {
	reg.Register(protocol.VerbLook,
		func(sess any, cmd protocol.Command) {
			HandleLook(sess.(*net.Session), cmd, deps)
		},
	)
	reg.Register(protocol.VerbDig,
		func(sess any, cmd protocol.Command) {
			HandleDig(sess.(*net.Session), cmd, deps)
		},
	)
	reg.Register(protocol.VerbFlag,
		func(sess any, cmd protocol.Command) {
			HandleFlag(sess.(*net.Session), cmd, deps)
		},
	)
	reg.Register(protocol.VerbDeflag,
		func(sess any, cmd protocol.Command) {
			HandleDeflag(sess.(*net.Session), cmd, deps)
		},
	)
	reg.Register(protocol.VerbHelp,
		func(sess any, cmd protocol.Command) {
			HandleHelp(sess.(*net.Session), cmd, deps)
		},
	)
	reg.Register(protocol.VerbBye,
		func(sess any, cmd protocol.Command) {
			HandleBye(sess.(*net.Session), cmd, deps)
		},
	)
}
