package model

// ShipType classifies a ship; each type has a canonical length
type ShipType string

const (
	ShipSmall  ShipType = "small"
	ShipMedium ShipType = "medium"
	ShipLarge  ShipType = "large"
	ShipHuge   ShipType = "huge"
)

// Length returns the canonical cell length for the type
func (t ShipType) Length() int {
	switch t {
	case ShipSmall:
		return 1
	case ShipMedium:
		return 2
	case ShipLarge:
		return 3
	case ShipHuge:
		return 4
	default:
		return 0
	}
}

// Position identifies a cell on a board
type Position struct {
	X int
	Y int
}

// Ship is a placement descriptor. Ships are immutable once committed to a
// board; the board's cell grid is a derived projection of its ship list.
type Ship struct {
	// Position is the anchor (top-left) cell
	Position Position

	// Vertical is the orientation; false means the ship extends rightward
	Vertical bool

	// Type is informational; HP is authoritative for occupancy
	Type ShipType

	// HP is the length in cells, equal to the number of hits required to sink
	HP int
}

// Cells returns every position the ship occupies, anchor first
func (s Ship) Cells() []Position {
	cells := make([]Position, s.HP)
	for i := 0; i < s.HP; i++ {
		if s.Vertical {
			cells[i] = Position{X: s.Position.X, Y: s.Position.Y + i}
		} else {
			cells[i] = Position{X: s.Position.X + i, Y: s.Position.Y}
		}
	}
	return cells
}
