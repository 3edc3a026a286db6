package model

// BoardSize is the fixed grid dimension
const BoardSize = 10

// CellState is the per-cell lifecycle tag. Transitions are one-way:
// Empty -> Miss, and Occupied -> Hit -> Sunk.
type CellState string

const (
	CellEmpty    CellState = "empty"
	CellOccupied CellState = "occupied"
	CellMiss     CellState = "miss"
	CellHit      CellState = "hit"
	CellSunk     CellState = "sunk"
)

// Cell is one grid cell. Ship is a dense 0-based index into the owning
// board's ship list, valid only for Occupied, Hit and Sunk states; it
// groups the cells belonging to one ship and is never an ownership pointer.
type Cell struct {
	State CellState
	Ship  int
}

// Board is one player's private grid, owned exclusively by one session
type Board struct {
	// Cells is row-major: Cells[y][x]
	Cells [BoardSize][BoardSize]Cell

	// Ships is the committed fleet in placement order
	Ships []Ship
}

// NewBoard creates an empty board
func NewBoard() *Board {
	b := &Board{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			b.Cells[y][x] = Cell{State: CellEmpty}
		}
	}
	return b
}

// InBounds returns true if the position is within the grid
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < BoardSize && pos.Y >= 0 && pos.Y < BoardSize
}

// At returns the cell at the given position, or an empty cell when the
// position is out of range
func (b *Board) At(pos Position) Cell {
	if !b.InBounds(pos) {
		return Cell{State: CellEmpty}
	}
	return b.Cells[pos.Y][pos.X]
}

// HasFleet returns true if a fleet has been committed to the board
func (b *Board) HasFleet() bool {
	return len(b.Ships) > 0
}
