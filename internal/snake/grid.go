package snake

import "fmt"

// Cell is a grid position in pixel units. Both coordinates are always a
// multiple of the cell size of the canvas the cell belongs to.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c translated by v.
func (c Cell) Add(v Cell) Cell {
	return Cell{X: c.X + v.X, Y: c.Y + v.Y}
}

// CellSet is an occupancy set keyed by cell.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Direction is one of the four grid headings. None is the zero value and
// means "no request".
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if d < None || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a lower-case direction name to a Direction.
func ParseDirection(name string) Direction {
	for d, n := range directionNames {
		if n == name && Direction(d) != None {
			return Direction(d)
		}
	}
	return None
}

// Unit returns the unit step for d.
func (d Direction) Unit() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Vector returns the unit step for d scaled by cellSize.
func (d Direction) Vector(cellSize int) Cell {
	dx, dy := d.Unit()
	return Cell{X: dx * cellSize, Y: dy * cellSize}
}

// Opposite returns the reverse heading. None stays None.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

// IsOpposite reports whether d and other point in exactly reverse directions.
func (d Direction) IsOpposite(other Direction) bool {
	return d != None && d.Opposite() == other
}

// CanvasSize is the host-provided drawing area. Width and Height are whole
// multiples of CellSize.
type CanvasSize struct {
	Width    int
	Height   int
	CellSize int
}

// Cols returns the number of grid columns.
func (s CanvasSize) Cols() int {
	if s.CellSize <= 0 {
		return 0
	}
	return s.Width / s.CellSize
}

// Rows returns the number of grid rows.
func (s CanvasSize) Rows() int {
	if s.CellSize <= 0 {
		return 0
	}
	return s.Height / s.CellSize
}

// Area returns the number of cells on the board.
func (s CanvasSize) Area() int {
	return s.Cols() * s.Rows()
}

// Normalize trims Width and Height down to whole cells so the playable area
// and the reported canvas agree.
func (s CanvasSize) Normalize() CanvasSize {
	s.Width = s.Cols() * s.CellSize
	s.Height = s.Rows() * s.CellSize
	return s
}

// Square returns a canvas of gridSize x gridSize cells.
func Square(gridSize, cellSize int) CanvasSize {
	return CanvasSize{Width: gridSize * cellSize, Height: gridSize * cellSize, CellSize: cellSize}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ToCell snaps a pixel position onto the grid.
func ToCell(px, py, cellSize int) Cell {
	if cellSize <= 0 {
		return Cell{}
	}
	return Cell{
		X: floorDiv(px, cellSize) * cellSize,
		Y: floorDiv(py, cellSize) * cellSize,
	}
}

// InBounds reports whether c lies on a width x height canvas.
func InBounds(c Cell, width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Wrap moves any out-of-range coordinate to the opposite edge.
func Wrap(c Cell, width, height, cellSize int) Cell {
	if width <= 0 || height <= 0 {
		return c
	}
	c.X = ((c.X % width) + width) % width
	c.Y = ((c.Y % height) + height) % height
	return ToCell(c.X, c.Y, cellSize)
}

// ClampToBounds pulls c back onto the canvas. It is only used when the
// canvas changes size underneath a running game.
func ClampToBounds(c Cell, width, height, cellSize int) Cell {
	maxX := width - cellSize
	maxY := height - cellSize
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	c.X = max(0, min(c.X, maxX))
	c.Y = max(0, min(c.Y, maxY))
	return ToCell(c.X, c.Y, cellSize)
}

// FitCanvas picks the largest cell size in [minTile, maxTile] that fits a
// gridSize x gridSize board into the container. The minimum wins when the
// container is too small, so the board may overflow tiny windows.
func FitCanvas(containerW, containerH, gridSize, minTile, maxTile int) CanvasSize {
	if gridSize <= 0 {
		return CanvasSize{}
	}
	fit := min(containerW/gridSize, containerH/gridSize)
	cs := max(minTile, min(fit, maxTile))
	if cs <= 0 {
		cs = 1
	}
	return Square(gridSize, cs)
}
