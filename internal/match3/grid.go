package match3

import (
	"fmt"
	"strings"
)

const (
	// DefaultSize is the board edge length used by every preset.
	DefaultSize = 8
	// MinSize is the smallest board NewGrid accepts.
	MinSize = 5
	// MinColors is the fewest colors that guarantee a matchless board exists.
	MinColors = 3
	// MinRun is the shortest straight line of equal colors that clears.
	MinRun = 3

	maxColorDraws = 64
)

// Rand is the random source used for board generation and refill.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PowerUp tags a token created from a large match group.
type PowerUp uint8

const (
	PowerUpNone PowerUp = iota
	PowerUpRow
	PowerUpColumn
	PowerUpMega
)

func (p PowerUp) String() string {
	switch p {
	case PowerUpRow:
		return "row"
	case PowerUpColumn:
		return "column"
	case PowerUpMega:
		return "mega"
	default:
		return "none"
	}
}

// Cell is a single board slot. A negative Color marks an empty slot.
type Cell struct {
	Color   int
	PowerUp PowerUp
}

// Empty is the value of a cleared slot.
var Empty = Cell{Color: -1}

// Token returns an untagged cell of the given color.
func Token(color int) Cell {
	return Cell{Color: color}
}

// IsEmpty reports whether the slot holds no token.
func (c Cell) IsEmpty() bool {
	return c.Color < 0
}

// Grid is a square board of cells stored row-major.
type Grid struct {
	size  int
	cells []Cell
}

// NewEmptyGrid returns a size×size board with every slot empty.
func NewEmptyGrid(size int) *Grid {
	g := &Grid{size: size, cells: make([]Cell, size*size)}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g
}

// NewGrid fills a new board row-major, re-drawing a color whenever it would
// complete a run with the two neighbors to the left or the two above.
// The result never contains a run of MinRun or more.
func NewGrid(size, colorCount int, rng Rand) (*Grid, error) {
	if err := validateDimensions(size, colorCount); err != nil {
		return nil, err
	}
	g := NewEmptyGrid(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			g.cells[g.index(row, col)] = Token(g.drawColor(row, col, colorCount, rng))
		}
	}
	return g, nil
}

// FromRows builds a board from explicit color rows. Negative values are empty
// slots. Rows must form a square.
func FromRows(rows [][]int) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: board has no rows", ErrInvalidConfiguration)
	}
	g := NewEmptyGrid(n)
	for row, line := range rows {
		if len(line) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfiguration, row, len(line), n)
		}
		for col, color := range line {
			if color >= 0 {
				g.cells[g.index(row, col)] = Token(color)
			}
		}
	}
	return g, nil
}

// checkColors rejects tokens whose color is outside [0, colorCount).
func (g *Grid) checkColors(colorCount int) error {
	for i, c := range g.cells {
		if c.IsEmpty() {
			continue
		}
		if c.Color >= colorCount {
			return fmt.Errorf("%w: color %d at %s outside %d colors",
				ErrInvalidConfiguration, c.Color, At(i/g.size, i%g.size), colorCount)
		}
	}
	return nil
}

func validateDimensions(size, colorCount int) error {
	if size < MinSize {
		return fmt.Errorf("%w: board size %d is below %d", ErrInvalidConfiguration, size, MinSize)
	}
	if colorCount < MinColors {
		return fmt.Errorf("%w: %d colors is below %d", ErrInvalidConfiguration, colorCount, MinColors)
	}
	return nil
}

func (g *Grid) drawColor(row, col, colorCount int, rng Rand) int {
	for range maxColorDraws {
		color := rng.Intn(colorCount)
		if !g.wouldCreateMatch(row, col, color) {
			return color
		}
	}
	// A degenerate source keeps drawing forbidden colors; at most two colors
	// are ever forbidden, so a scan always finds one.
	for color := range colorCount {
		if !g.wouldCreateMatch(row, col, color) {
			return color
		}
	}
	return 0
}

// wouldCreateMatch only looks at the two cells to the left and the two above,
// which is sufficient while filling row-major.
func (g *Grid) wouldCreateMatch(row, col, color int) bool {
	if col >= 2 && g.colorAt(row, col-1) == color && g.colorAt(row, col-2) == color {
		return true
	}
	if row >= 2 && g.colorAt(row-1, col) == color && g.colorAt(row-2, col) == color {
		return true
	}
	return false
}

// Size returns the board edge length.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether c addresses a slot on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

func (g *Grid) index(row, col int) int {
	return row*g.size + col
}

func (g *Grid) colorAt(row, col int) int {
	return g.cells[g.index(row, col)].Color
}

func (g *Grid) cell(c Coord) Cell {
	return g.cells[g.index(c.Row, c.Col)]
}

// At returns the cell at c.
func (g *Grid) At(c Coord) (Cell, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %s on %dx%d board", ErrInvalidCoordinate, c, g.size, g.size)
	}
	return g.cell(c), nil
}

// Set replaces the cell at c.
func (g *Grid) Set(c Coord, cell Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s on %dx%d board", ErrInvalidCoordinate, c, g.size, g.size)
	}
	g.cells[g.index(c.Row, c.Col)] = cell
	return nil
}

// Swap exchanges the contents of two slots without any rule checks.
func (g *Grid) Swap(a, b Coord) error {
	if !g.InBounds(a) {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, a)
	}
	if !g.InBounds(b) {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, b)
	}
	g.swap(a, b)
	return nil
}

func (g *Grid) swap(a, b Coord) {
	ia, ib := g.index(a.Row, a.Col), g.index(b.Row, b.Col)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Clear empties every listed slot. Out-of-bounds coordinates are ignored.
func (g *Grid) Clear(coords []Coord) {
	for _, c := range coords {
		if g.InBounds(c) {
			g.cells[g.index(c.Row, c.Col)] = Empty
		}
	}
}

// GravityPass moves every token with an empty slot directly below it down by
// one row, scanning from the second-to-last row upward. It reports whether
// anything moved.
func (g *Grid) GravityPass() bool {
	moved := false
	for row := g.size - 2; row >= 0; row-- {
		for col := 0; col < g.size; col++ {
			from, to := g.index(row, col), g.index(row+1, col)
			if !g.cells[from].IsEmpty() && g.cells[to].IsEmpty() {
				g.cells[to] = g.cells[from]
				g.cells[from] = Empty
				moved = true
			}
		}
	}
	return moved
}

// ApplyGravity repeats GravityPass until nothing moves and returns the number
// of passes that moved at least one token.
func (g *Grid) ApplyGravity() int {
	passes := 0
	for g.GravityPass() {
		passes++
	}
	return passes
}

// Refill puts a random token into every empty slot, scanning column by column
// from the top. No anti-match constraint applies. It returns the filled
// coordinates in fill order.
func (g *Grid) Refill(colorCount int, rng Rand) []Coord {
	var filled []Coord
	for col := 0; col < g.size; col++ {
		for row := 0; row < g.size; row++ {
			i := g.index(row, col)
			if g.cells[i].IsEmpty() {
				g.cells[i] = Token(rng.Intn(colorCount))
				filled = append(filled, At(row, col))
			}
		}
	}
	return filled
}

func (g *Grid) setPowerUp(c Coord, p PowerUp) {
	i := g.index(c.Row, c.Col)
	if !g.cells[i].IsEmpty() {
		g.cells[i].PowerUp = p
	}
}

// EmptyCount returns the number of empty slots.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether both boards hold identical cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Colors returns the board as color rows with -1 for empty slots.
func (g *Grid) Colors() [][]int {
	rows := make([][]int, g.size)
	for row := range rows {
		rows[row] = make([]int, g.size)
		for col := range rows[row] {
			rows[row][col] = g.colorAt(row, col)
		}
	}
	return rows
}

// String renders one line per row: letters for colors starting at 'a',
// uppercase when the token carries a power-up, '.' for empty slots.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			c := g.cells[g.index(row, col)]
			switch {
			case c.IsEmpty():
				b.WriteByte('.')
			case c.PowerUp != PowerUpNone:
				b.WriteByte(byte('A' + c.Color%26))
			default:
				b.WriteByte(byte('a' + c.Color%26))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
