package game

import (
	"math/rand"
	"strings"
	"sync"
	"testing"
)

// bombGrid builds a row-major bomb layout from strings of '0'/'1', one
// string per row.
func bombGrid(rows ...string) [][]bool {
	grid := make([][]bool, len(rows))
	for y, row := range rows {
		grid[y] = make([]bool, len(row))
		for x, ch := range row {
			grid[y][x] = ch == '1'
		}
	}
	return grid
}

func emptyGrid(w, h int) [][]bool {
	grid := make([][]bool, h)
	for y := range grid {
		grid[y] = make([]bool, w)
	}
	return grid
}

func mustBoard(t *testing.T, w, h int, bombs [][]bool) *Board {
	t.Helper()
	b, err := NewBoard(w, h, bombs)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", w, h, err)
	}
	return b
}

// checkCounts recomputes every neighbor count from the live bomb
// positions and compares it with the incrementally maintained value.
func checkCounts(t *testing.T, b *Board) {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			var want int8
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if b.inBounds(nx, ny) && b.cells[b.idx(nx, ny)].hasBomb {
						want++
					}
				}
			}
			if got := b.cells[b.idx(x, y)].neighborBombs; got != want {
				t.Errorf("cell (%d,%d): neighbor count %d, recomputed %d", x, y, got, want)
			}
		}
	}
}

func assertRender(t *testing.T, b *Board, want []string) {
	t.Helper()
	got := b.Render()
	if len(got) != len(want) {
		t.Fatalf("render returned %d rows, want %d", len(got), len(want))
	}
	for y := range want {
		if got[y] != want[y] {
			t.Errorf("row %d: got %q, want %q", y, got[y], want[y])
		}
	}
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		bombs   [][]bool
		wantErr bool
	}{
		{"valid 3x3", 3, 3, emptyGrid(3, 3), false},
		{"valid 1x1", 1, 1, emptyGrid(1, 1), false},
		{"zero width", 0, 3, emptyGrid(0, 3), true},
		{"zero height", 3, 0, emptyGrid(3, 0), true},
		{"negative width", -1, 3, emptyGrid(0, 3), true},
		{"too few rows", 3, 3, emptyGrid(3, 2), true},
		{"too many rows", 3, 3, emptyGrid(3, 4), true},
		{"short row", 3, 2, bombGrid("000", "00"), true},
		{"long row", 3, 2, bombGrid("000", "0000"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.w, tt.h, tt.bombs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBoard(%d, %d): err = %v, wantErr = %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestRenderFresh(t *testing.T) {
	b := mustBoard(t, 3, 3, emptyGrid(3, 3))
	assertRender(t, b, []string{"- - -", "- - -", "- - -"})
	if got, want := b.String(), "- - -\n- - -\n- - -\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDigRevealsNumber(t *testing.T) {
	b := mustBoard(t, 3, 3, bombGrid(
		"101",
		"000",
		"101",
	))
	if got := b.Dig(1, 1); got != DigRevealed {
		t.Fatalf("Dig(1,1) = %v, want DigRevealed", got)
	}
	assertRender(t, b, []string{"- - -", "- 4 -", "- - -"})
	checkCounts(t, b)
}

func TestDigCascadeRevealsAll(t *testing.T) {
	b := mustBoard(t, 5, 5, emptyGrid(5, 5))
	if got := b.Dig(2, 2); got != DigRevealed {
		t.Fatalf("Dig(2,2) = %v, want DigRevealed", got)
	}
	for y, row := range b.Render() {
		if strings.Contains(row, "-") {
			t.Errorf("row %d still has untouched cells after cascade: %q", y, row)
		}
	}
}

func TestDigCascadeStopsAtNumbers(t *testing.T) {
	b := mustBoard(t, 5, 5, bombGrid(
		"00000",
		"00000",
		"00000",
		"00000",
		"00001",
	))
	b.Dig(0, 0)
	assertRender(t, b, []string{
		"         ",
		"         ",
		"         ",
		"      1 1",
		"      1 -",
	})
	checkCounts(t, b)
}

func TestDigCascadeSkipsFlagged(t *testing.T) {
	b := mustBoard(t, 3, 3, emptyGrid(3, 3))
	b.Flag(2, 2)
	b.Dig(0, 0)
	assertRender(t, b, []string{"     ", "     ", "    F"})
}

func TestDigBombRemovesIt(t *testing.T) {
	b := mustBoard(t, 3, 3, bombGrid(
		"000",
		"010",
		"000",
	))
	if got := b.Dig(1, 1); got != DigBoom {
		t.Fatalf("Dig(1,1) = %v, want DigBoom", got)
	}
	if got := b.BombCount(); got != 0 {
		t.Errorf("BombCount after boom = %d, want 0", got)
	}
	// The removed bomb leaves a zero-count square, so the reveal spreads
	// across the now bomb-free board.
	for y, row := range b.Render() {
		if row != "     " {
			t.Errorf("row %d = %q, want all dug blanks", y, row)
		}
	}
	checkCounts(t, b)
}

func TestDigBombWithNeighborBombLeft(t *testing.T) {
	b := mustBoard(t, 3, 1, bombGrid("110"))
	if got := b.Dig(0, 0); got != DigBoom {
		t.Fatalf("Dig(0,0) = %v, want DigBoom", got)
	}
	// The dug square still borders the second bomb, so it shows a count
	// and no cascade runs.
	assertRender(t, b, []string{"1 - -"})
	if got := b.BombCount(); got != 1 {
		t.Errorf("BombCount = %d, want 1", got)
	}
	checkCounts(t, b)
}

func TestDigNoOps(t *testing.T) {
	b := mustBoard(t, 3, 3, bombGrid(
		"100",
		"000",
		"000",
	))
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x past width", 3, 0},
		{"y past height", 0, 3},
		{"far out", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Dig(tt.x, tt.y); got != DigNoChange {
				t.Errorf("Dig(%d,%d) = %v, want DigNoChange", tt.x, tt.y, got)
			}
		})
	}
	assertRender(t, b, []string{"- - -", "- - -", "- - -"})

	// Digging a dug square is a no-op too.
	if got := b.Dig(2, 2); got != DigRevealed {
		t.Fatalf("first Dig(2,2) = %v, want DigRevealed", got)
	}
	before := b.String()
	if got := b.Dig(2, 2); got != DigNoChange {
		t.Errorf("second Dig(2,2) = %v, want DigNoChange", got)
	}
	if after := b.String(); after != before {
		t.Errorf("repeated dig changed the board:\nbefore: %q\nafter:  %q", before, after)
	}
}

func TestFlagStateMachine(t *testing.T) {
	b := mustBoard(t, 2, 2, bombGrid(
		"10",
		"00",
	))

	if !b.Flag(0, 0) {
		t.Fatal("Flag on untouched square should succeed")
	}
	assertRender(t, b, []string{"F -", "- -"})

	if b.Flag(0, 0) {
		t.Error("Flag on flagged square should be a no-op")
	}
	if b.Deflag(1, 0) {
		t.Error("Deflag on untouched square should be a no-op")
	}
	if got := b.Dig(0, 0); got != DigNoChange {
		t.Errorf("Dig on flagged square = %v, want DigNoChange", got)
	}
	if got := b.BombCount(); got != 1 {
		t.Errorf("flagged bomb was removed, BombCount = %d", got)
	}

	if !b.Deflag(0, 0) {
		t.Fatal("Deflag on flagged square should succeed")
	}
	assertRender(t, b, []string{"- -", "- -"})

	// Out of bounds never succeeds.
	if b.Flag(-1, 0) || b.Flag(2, 0) || b.Deflag(0, -1) || b.Deflag(0, 2) {
		t.Error("flag/deflag out of bounds should be a no-op")
	}

	// Dug squares cannot be flagged.
	b.Dig(1, 1)
	if b.Flag(1, 1) {
		t.Error("Flag on dug square should be a no-op")
	}
}

// TestBoomScenario walks the published 7x7 conformance board: bombs at
// (4,1) and (0,6). Digging next to the first bomb reveals a 1, digging
// the bomb itself removes it and opens everything up to the second
// bomb's neighborhood.
func TestBoomScenario(t *testing.T) {
	b := mustBoard(t, 7, 7, bombGrid(
		"0000000",
		"0000100",
		"0000000",
		"0000000",
		"0000000",
		"0000000",
		"1000000",
	))

	if got := b.Dig(3, 1); got != DigRevealed {
		t.Fatalf("Dig(3,1) = %v, want DigRevealed", got)
	}
	assertRender(t, b, []string{
		"- - - - - - -",
		"- - - 1 - - -",
		"- - - - - - -",
		"- - - - - - -",
		"- - - - - - -",
		"- - - - - - -",
		"- - - - - - -",
	})

	if got := b.Dig(4, 1); got != DigBoom {
		t.Fatalf("Dig(4,1) = %v, want DigBoom", got)
	}
	assertRender(t, b, []string{
		"             ",
		"             ",
		"             ",
		"             ",
		"             ",
		"1 1          ",
		"- 1          ",
	})
	if got := b.BombCount(); got != 1 {
		t.Errorf("BombCount = %d, want 1", got)
	}
	checkCounts(t, b)
}

// TestConcurrentDigsDisjointRegions digs two regions separated by a wall
// of bombs from two goroutines. Whichever order the digs land in, the
// result must equal the sequential outcome.
func TestConcurrentDigsDisjointRegions(t *testing.T) {
	b := mustBoard(t, 9, 5, bombGrid(
		"000000000",
		"000000000",
		"111111111",
		"000000000",
		"000000000",
	))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.Dig(0, 0)
	}()
	go func() {
		defer wg.Done()
		b.Dig(0, 4)
	}()
	wg.Wait()

	assertRender(t, b, []string{
		"                 ",
		"2 3 3 3 3 3 3 3 2",
		"- - - - - - - - -",
		"2 3 3 3 3 3 3 3 2",
		"                 ",
	})
	checkCounts(t, b)
}

// TestConcurrentMixedOps hammers one board from several goroutines and
// then verifies the incremental counts still match a full recount.
func TestConcurrentMixedOps(t *testing.T) {
	const (
		w, h       = 20, 20
		goroutines = 8
		opsEach    = 500
	)

	layout := emptyGrid(w, h)
	seed := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			layout[y][x] = seed.Intn(4) == 0
		}
	}
	b := mustBoard(t, w, h, layout)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(id)))
			for i := 0; i < opsEach; i++ {
				x, y := rng.Intn(w+2)-1, rng.Intn(h+2)-1
				switch rng.Intn(3) {
				case 0:
					b.Dig(x, y)
				case 1:
					b.Flag(x, y)
				case 2:
					b.Deflag(x, y)
				}
			}
		}(g)
	}
	wg.Wait()

	checkCounts(t, b)
	for y, row := range b.Render() {
		for x := 0; x < len(row); x += 2 {
			switch ch := row[x]; ch {
			case '-', 'F', ' ', '1', '2', '3', '4', '5', '6', '7', '8':
			default:
				t.Fatalf("row %d col %d: unexpected cell %q in %q", y, x/2, ch, row)
			}
		}
	}
}
