package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []protocol.RoomInfo:
		o.printRooms(v)
	case []protocol.WinnerEntry:
		o.printWinners(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRooms(rooms []protocol.RoomInfo) {
	if len(rooms) == 0 {
		fmt.Println("No rooms waiting for players")
		return
	}

	fmt.Printf("Rooms waiting for players (%d):\n", len(rooms))
	for _, room := range rooms {
		names := make([]string, len(room.RoomUsers))
		for i, u := range room.RoomUsers {
			names[i] = u.Name
		}
		fmt.Printf("  %s  [%s]\n", room.RoomID, strings.Join(names, ", "))
	}
}

func (o *Output) printWinners(winners []protocol.WinnerEntry) {
	if len(winners) == 0 {
		fmt.Println("No players registered")
		return
	}

	fmt.Println("Leaderboard:")
	for i, w := range winners {
		fmt.Printf("  %2d. %-20s %d wins\n", i+1, w.Name, w.Wins)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
