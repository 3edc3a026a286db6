package board

import (
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// ShipsLimit is the maximum number of ships in one fleet
const ShipsLimit = 10

// Service validates fleet placements and resolves attacks against boards.
// It is stateless; boards are owned by their sessions.
type Service struct {
	logger *slog.Logger
}

// New creates a new board Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "board")),
	}
}

// PlaceFleet validates the proposed fleet and commits it to the board.
// Every cell must be inside the grid, unoccupied, and not touching another
// ship. The whole batch commits atomically: on any violation the board is
// left unchanged and the returned error identifies the offending ship.
func (s *Service) PlaceFleet(b *model.Board, ships []model.Ship) error {
	if b.HasFleet() {
		return model.ErrFleetCommitted
	}
	if len(ships) == 0 || len(ships) > ShipsLimit {
		return model.ErrWrongShipCount
	}

	// Validate against a scratch occupancy map before touching the board
	occupied := make(map[model.Position]int)
	for i, ship := range ships {
		if ship.HP <= 0 {
			return &model.PlacementError{ShipIndex: i, Err: model.ErrOutOfBounds}
		}
		for _, pos := range ship.Cells() {
			if !b.InBounds(pos) {
				return &model.PlacementError{ShipIndex: i, Err: model.ErrOutOfBounds}
			}
			if _, taken := occupied[pos]; taken {
				return &model.PlacementError{ShipIndex: i, Err: model.ErrOverlap}
			}
			if neighbourOf(occupied, pos, i) {
				return &model.PlacementError{ShipIndex: i, Err: model.ErrOverlap}
			}
			occupied[pos] = i
		}
	}

	// Commit: cell indices follow placement order
	for i, ship := range ships {
		for _, pos := range ship.Cells() {
			b.Cells[pos.Y][pos.X] = model.Cell{State: model.CellOccupied, Ship: i}
		}
	}
	b.Ships = append(b.Ships, ships...)

	s.logger.Debug("fleet committed", slog.Int("ships", len(ships)))
	return nil
}

// neighbourOf reports whether any of the 8 neighbours of pos is occupied by
// a ship other than the one with the given index
func neighbourOf(occupied map[model.Position]int, pos model.Position, ship int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := model.Position{X: pos.X + dx, Y: pos.Y + dy}
			if owner, ok := occupied[n]; ok && owner != ship {
				return true
			}
		}
	}
	return false
}

// Attack resolves one shot against the board. Empty cells become misses;
// occupied cells become hits, upgraded to sunk for the whole ship once its
// last cell is hit. Re-attacking a resolved cell is a no-op reported as
// ErrAlreadyResolved.
func (s *Service) Attack(b *model.Board, pos model.Position) (model.AttackOutcome, error) {
	if !b.InBounds(pos) {
		return "", model.ErrShotOutOfBounds
	}

	switch cell := b.At(pos); cell.State {
	case model.CellMiss, model.CellHit, model.CellSunk:
		return "", model.ErrAlreadyResolved

	case model.CellEmpty:
		b.Cells[pos.Y][pos.X] = model.Cell{State: model.CellMiss}
		return model.AttackMiss, nil

	case model.CellOccupied:
		b.Cells[pos.Y][pos.X] = model.Cell{State: model.CellHit, Ship: cell.Ship}
		if s.shipDown(b, cell.Ship) {
			s.sinkShip(b, cell.Ship)
			return model.AttackSunk, nil
		}
		return model.AttackHit, nil

	default:
		// Unreachable unless a new cell state is added without updating
		// this transition site
		return "", model.ErrAlreadyResolved
	}
}

// shipDown reports whether every cell of the given ship is hit or sunk
func (s *Service) shipDown(b *model.Board, ship int) bool {
	for _, pos := range b.Ships[ship].Cells() {
		switch b.At(pos).State {
		case model.CellHit, model.CellSunk:
		default:
			return false
		}
	}
	return true
}

// sinkShip upgrades every cell of the given ship to sunk
func (s *Service) sinkShip(b *model.Board, ship int) {
	for _, pos := range b.Ships[ship].Cells() {
		b.Cells[pos.Y][pos.X] = model.Cell{State: model.CellSunk, Ship: ship}
	}
}

// IsDefeated reports whether every ship-owned cell is sunk
func (s *Service) IsDefeated(b *model.Board) bool {
	if !b.HasFleet() {
		return false
	}
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			switch b.Cells[y][x].State {
			case model.CellOccupied, model.CellHit:
				return false
			}
		}
	}
	return true
}

// UnresolvedCells returns every cell that is still a legal attack target
func (s *Service) UnresolvedCells(b *model.Board) []model.Position {
	var cells []model.Position
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			switch b.Cells[y][x].State {
			case model.CellEmpty, model.CellOccupied:
				cells = append(cells, model.Position{X: x, Y: y})
			}
		}
	}
	return cells
}
