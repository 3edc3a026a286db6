package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

// loadFleet reads a fleet layout from a JSON file, or returns the
// built-in layout when no file is given
func loadFleet(path string) ([]protocol.ShipPayload, error) {
	if path == "" {
		return defaultFleet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet file: %w", err)
	}

	var fleet []protocol.ShipPayload
	if err := json.Unmarshal(data, &fleet); err != nil {
		return nil, fmt.Errorf("failed to parse fleet file: %w", err)
	}
	return fleet, nil
}

// defaultFleet is the classic ten-ship layout, packed into the top half
// of the board with a one-cell gap around every ship
func defaultFleet() []protocol.ShipPayload {
	ship := func(x, y int, shipType string, length int) protocol.ShipPayload {
		return protocol.ShipPayload{
			Position: protocol.PositionPayload{X: x, Y: y},
			Type:     shipType,
			Length:   length,
		}
	}

	return []protocol.ShipPayload{
		ship(0, 0, "huge", 4),
		ship(5, 0, "large", 3),
		ship(0, 2, "large", 3),
		ship(4, 2, "medium", 2),
		ship(7, 2, "medium", 2),
		ship(0, 4, "medium", 2),
		ship(3, 4, "small", 1),
		ship(5, 4, "small", 1),
		ship(7, 4, "small", 1),
		ship(9, 4, "small", 1),
	}
}
