// Package protocol defines the line-oriented wire protocol: the fixed
// server message texts, parsing of client command lines, and the verb
// registry that routes parsed commands to handlers.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Client verbs.
const (
	VerbLook   = "look"
	VerbDig    = "dig"
	VerbFlag   = "flag"
	VerbDeflag = "deflag"
	VerbHelp   = "help"
	VerbBye    = "bye"
)

// Command is one parsed client line.
type Command struct {
	Verb string
	X, Y int // set for dig, flag and deflag
}

// Parse parses one client line. The grammar is strict: verbs are
// lower-case, arguments are separated by exactly one space, and dig,
// flag and deflag take exactly two integer coordinates. Coordinates may
// be negative or otherwise out of range; bounds are the grid's business,
// not the parser's.
func Parse(line string) (Command, error) {
	parts := strings.Split(line, " ")
	switch parts[0] {
	case VerbLook, VerbHelp, VerbBye:
		if len(parts) != 1 {
			return Command{}, fmt.Errorf("%s takes no arguments", parts[0])
		}
		return Command{Verb: parts[0]}, nil
	case VerbDig, VerbFlag, VerbDeflag:
		if len(parts) != 3 {
			return Command{}, fmt.Errorf("%s takes two coordinates", parts[0])
		}
		x, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, fmt.Errorf("bad x coordinate %q", parts[1])
		}
		y, err := strconv.Atoi(parts[2])
		if err != nil {
			return Command{}, fmt.Errorf("bad y coordinate %q", parts[2])
		}
		return Command{Verb: parts[0], X: x, Y: y}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", parts[0])
	}
}
