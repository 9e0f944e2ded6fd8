// Package data loads the server's external inputs: board definition
// files and the difficulty preset table. The game core receives these
// already parsed and never touches the formats itself.
package data

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// BoardDef is a parsed board definition: the dimensions plus the initial
// bomb layout, row-major with Bombs[y][x] for column x of row y.
type BoardDef struct {
	Width  int
	Height int
	Bombs  [][]bool
}

// BombCount returns the number of bombs in the layout.
func (d *BoardDef) BombCount() int {
	n := 0
	for _, row := range d.Bombs {
		for _, b := range row {
			if b {
				n++
			}
		}
	}
	return n
}

// ParseBoard reads the text board format: a "WIDTH HEIGHT" header line,
// then HEIGHT rows of WIDTH space-separated 0/1 flags. Dimension
// mismatches, non-positive dimensions and stray tokens are all errors;
// a bad board definition must never reach the grid.
func ParseBoard(r io.Reader) (*BoardDef, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("missing header line")
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("header must be \"WIDTH HEIGHT\", got %q", sc.Text())
	}
	width, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("bad width %q", header[0])
	}
	height, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("bad height %q", header[1])
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %dx%d", width, height)
	}

	def := &BoardDef{
		Width:  width,
		Height: height,
		Bombs:  make([][]bool, height),
	}
	for y := 0; y < height; y++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("read row %d: %w", y, err)
			}
			return nil, fmt.Errorf("expected %d rows, got %d", height, y)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(fields), width)
		}
		row := make([]bool, width)
		for x, f := range fields {
			switch f {
			case "0":
			case "1":
				row[x] = true
			default:
				return nil, fmt.Errorf("row %d cell %d: %q is not 0 or 1", y, x, f)
			}
		}
		def.Bombs[y] = row
	}
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, fmt.Errorf("trailing content after %d rows: %q", height, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	return def, nil
}

// LoadBoardFile reads a board definition from path.
func LoadBoardFile(path string) (*BoardDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board file: %w", err)
	}
	defer f.Close()
	def, err := ParseBoard(f)
	if err != nil {
		return nil, fmt.Errorf("parse board file %s: %w", path, err)
	}
	return def, nil
}

// EncodeBoard writes def in the same text format ParseBoard reads.
func EncodeBoard(w io.Writer, def *BoardDef) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", def.Width, def.Height)
	for _, row := range def.Bombs {
		for x, bomb := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			if bomb {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// WriteBoardFile writes a board definition to path, replacing any
// existing file.
func WriteBoardFile(path string, def *BoardDef) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create board file: %w", err)
	}
	defer f.Close()
	if err := EncodeBoard(f, def); err != nil {
		return fmt.Errorf("write board file %s: %w", path, err)
	}
	return nil
}

// Generate builds a random width x height layout where each square
// independently holds a bomb with probability density.
func Generate(width, height int, density float64, rng *rand.Rand) *BoardDef {
	def := &BoardDef{
		Width:  width,
		Height: height,
		Bombs:  make([][]bool, height),
	}
	for y := 0; y < height; y++ {
		row := make([]bool, width)
		for x := range row {
			row[x] = rng.Float64() < density
		}
		def.Bombs[y] = row
	}
	return def
}

// GenerateCount builds a random width x height layout with exactly bombs
// bombs placed uniformly. Counts beyond the square total are capped.
func GenerateCount(width, height, bombs int, rng *rand.Rand) *BoardDef {
	total := width * height
	if bombs > total {
		bombs = total
	}
	if bombs < 0 {
		bombs = 0
	}
	def := &BoardDef{
		Width:  width,
		Height: height,
		Bombs:  make([][]bool, height),
	}
	for y := range def.Bombs {
		def.Bombs[y] = make([]bool, width)
	}
	for _, i := range rng.Perm(total)[:bombs] {
		def.Bombs[i/width][i%width] = true
	}
	return def
}
