// boardgen generates a board definition file for the server's --file
// option.
//
// Usage:
//
//	go run ./cmd/boardgen/ [flags]
//
// Examples:
//
//	go run ./cmd/boardgen/ -width 16 -height 16 -bombs 40 -out boards/custom.board
//	go run ./cmd/boardgen/ -preset expert -seed 7 -out boards/expert.board
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/minesweep/server/internal/data"
)

func main() {
	var (
		width   = flag.Int("width", 10, "board columns")
		height  = flag.Int("height", 10, "board rows")
		bombs   = flag.Int("bombs", -1, "exact bomb count, negative means use -density")
		density = flag.Float64("density", 0.25, "per-square bomb probability")
		preset  = flag.String("preset", "", "named difficulty overriding width/height/bombs")
		seed    = flag.Int64("seed", 0, "random seed, 0 means time-based")
		out     = flag.String("out", "board.txt", "output file")
	)
	flag.Parse()

	w, h, count := *width, *height, *bombs
	if *preset != "" {
		p := data.DefaultPresets().Get(*preset)
		if p == nil {
			fmt.Fprintf(os.Stderr, "error: unknown preset %q\n", *preset)
			os.Exit(1)
		}
		w, h, count = p.Width, p.Height, p.Bombs
	}
	if w <= 0 || h <= 0 {
		fmt.Fprintf(os.Stderr, "error: dimensions must be positive, got %dx%d\n", w, h)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	var def *data.BoardDef
	if count >= 0 {
		def = data.GenerateCount(w, h, count, rng)
	} else {
		def = data.Generate(w, h, *density, rng)
	}

	if err := data.WriteBoardFile(*out, def); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %dx%d board with %d bombs to %s\n", def.Width, def.Height, def.BombCount(), *out)
}
