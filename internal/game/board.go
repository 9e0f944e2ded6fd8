// Package game implements the shared minesweeper grid. One Board instance
// is mutated concurrently by every connected player; all operations
// serialize on the board's own mutex so each command sees and leaves a
// consistent grid.
package game

import (
	"fmt"
	"strings"
	"sync"
)

// CellState is the player-visible lifecycle of a single square.
type CellState uint8

const (
	Untouched CellState = iota // never dug, never flagged
	Flagged                    // marked by a player, cannot be dug
	Dug                        // revealed; terminal
)

// DigResult reports what a Dig call did.
type DigResult uint8

const (
	DigNoChange DigResult = iota // out of bounds, flagged, or already dug
	DigRevealed                  // safe square revealed (possibly cascading)
	DigBoom                      // bomb hit; the bomb has been removed
)

type cell struct {
	state         CellState
	hasBomb       bool
	neighborBombs int8 // 0..8, kept current on every bomb removal
}

// Board is the shared minefield. Cells are stored row-major; (x,y) is
// column x of row y with (0,0) the top-left corner.
type Board struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []cell
}

// NewBoard builds a board from a row-major bomb grid: bombs[y][x] is true
// if the square at column x, row y starts with a bomb. Dimensions must be
// positive and every row of bombs must match them exactly.
func NewBoard(width, height int, bombs [][]bool) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", width, height)
	}
	if len(bombs) != height {
		return nil, fmt.Errorf("bomb grid has %d rows, board height is %d", len(bombs), height)
	}
	for y, row := range bombs {
		if len(row) != width {
			return nil, fmt.Errorf("bomb grid row %d has %d cells, board width is %d", y, len(row), width)
		}
	}

	b := &Board{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
	// Single construction scan. After this, counts are only ever adjusted
	// incrementally when a dug bomb leaves the field.
	for y, row := range bombs {
		for x, hasBomb := range row {
			if hasBomb {
				b.cells[b.idx(x, y)].hasBomb = true
				b.adjustNeighbors(x, y, 1)
			}
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// BombCount returns the number of bombs still on the field.
func (b *Board) BombCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.cells {
		if b.cells[i].hasBomb {
			n++
		}
	}
	return n
}

// Dig reveals the square at (x,y). Out-of-bounds coordinates and squares
// that are not untouched are no-ops. Digging a bomb removes it from the
// field and repairs the neighbor counts before anything else happens, so
// every later render already reflects the removal.
func (b *Board) Dig(x, y int) DigResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inBounds(x, y) {
		return DigNoChange
	}
	c := &b.cells[b.idx(x, y)]
	if c.state != Untouched {
		return DigNoChange
	}
	c.state = Dug

	result := DigRevealed
	if c.hasBomb {
		c.hasBomb = false
		b.adjustNeighbors(x, y, -1)
		result = DigBoom
	}
	// A freed square with no bombs around it opens up its whole region.
	// This applies equally after a bomb removal: once the bomb is gone the
	// square is an ordinary dug square.
	if c.neighborBombs == 0 {
		b.cascade(x, y)
	}
	return result
}

// Flag marks an untouched square. Reports whether the state changed.
func (b *Board) Flag(x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inBounds(x, y) {
		return false
	}
	c := &b.cells[b.idx(x, y)]
	if c.state != Untouched {
		return false
	}
	c.state = Flagged
	return true
}

// Deflag removes a flag. Reports whether the state changed.
func (b *Board) Deflag(x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inBounds(x, y) {
		return false
	}
	c := &b.cells[b.idx(x, y)]
	if c.state != Flagged {
		return false
	}
	c.state = Untouched
	return true
}

// Render returns the player view, one string per row. Cells are single
// characters joined by single spaces: '-' untouched, 'F' flagged, a space
// for a dug square with no bombs adjacent, '1'..'8' otherwise.
func (b *Board) Render() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := make([]string, b.height)
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.Reset()
		for x := 0; x < b.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cellChar(x, y))
		}
		rows[y] = sb.String()
	}
	return rows
}

// String renders the whole board as one newline-terminated block.
func (b *Board) String() string {
	return strings.Join(b.Render(), "\n") + "\n"
}

func (b *Board) idx(x, y int) int { return y*b.width + x }

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) cellChar(x, y int) byte {
	c := b.cells[b.idx(x, y)]
	switch {
	case c.state == Flagged:
		return 'F'
	case c.state == Untouched:
		return '-'
	case c.neighborBombs == 0:
		return ' '
	default:
		return '0' + byte(c.neighborBombs)
	}
}

// adjustNeighbors adds delta to the bomb count of every in-bounds
// neighbor of (x,y). Caller holds the mutex.
func (b *Board) adjustNeighbors(x, y int, delta int8) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if nx, ny := x+dx, y+dy; b.inBounds(nx, ny) {
				b.cells[b.idx(nx, ny)].neighborBombs += delta
			}
		}
	}
}

// cascade reveals outward from a dug zero-count square. Explicit work
// list rather than recursion so a large empty region cannot exhaust the
// stack. Each square enters the list at most once, on its untouched->dug
// transition, which bounds the loop at width*height. Caller holds the
// mutex.
func (b *Board) cascade(x, y int) {
	work := [][2]int{{x, y}}
	for len(work) > 0 {
		cx, cy := work[len(work)-1][0], work[len(work)-1][1]
		work = work[:len(work)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !b.inBounds(nx, ny) {
					continue
				}
				n := &b.cells[b.idx(nx, ny)]
				if n.state != Untouched {
					continue
				}
				n.state = Dug
				if n.neighborBombs == 0 {
					work = append(work, [2]int{nx, ny})
				}
			}
		}
	}
}
