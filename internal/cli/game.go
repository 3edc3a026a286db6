package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

func newPlayCmd() *cobra.Command {
	var (
		name      string
		create    bool
		joinRoom  string
		shipsFile string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game over the websocket protocol",
		Long: `Connect to the server, register, and play a game interactively.

With --create the client opens a new room; with --join it joins an
existing one (see the rooms command for ids). The fleet is sent
automatically once both players are seated, either from --ships or a
built-in layout.

Once the game starts, type commands at the prompt:
  attack <x> <y>   fire at a cell
  random           fire at a random unresolved cell
  quit             disconnect

Disconnecting forfeits the game.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			if create && joinRoom != "" {
				return fmt.Errorf("--create and --join are mutually exclusive")
			}

			fleet, err := loadFleet(shipsFile)
			if err != nil {
				return err
			}

			return runGame(name, create, joinRoom, fleet)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name to register as")
	cmd.Flags().BoolVar(&create, "create", false, "Create a new room after registering")
	cmd.Flags().StringVar(&joinRoom, "join", "", "Room id to join after registering")
	cmd.Flags().StringVar(&shipsFile, "ships", "", "JSON file with the fleet layout (default: built-in layout)")

	return cmd
}

// gameClient drives one websocket game session
type gameClient struct {
	conn  *websocket.Conn
	out   *Output
	fleet []protocol.ShipPayload

	gameID   string
	playerID string
}

func runGame(name string, create bool, joinRoom string, fleet []protocol.ShipPayload) error {
	wsURL, err := cfg.WebsocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer func() { _ = conn.Close() }()

	gc := &gameClient{
		conn:  conn,
		out:   NewOutput(cfg.Output),
		fleet: fleet,
	}

	if err := gc.send(protocol.MsgReg, map[string]string{"name": name}); err != nil {
		return err
	}
	if create {
		if err := gc.send(protocol.MsgCreateRoom, struct{}{}); err != nil {
			return err
		}
	}
	if joinRoom != "" {
		if err := gc.send(protocol.MsgAddUserToRoom, map[string]string{"indexRoom": joinRoom}); err != nil {
			return err
		}
	}

	done := make(chan error, 1)
	go func() { done <- gc.readLoop() }()

	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- scanner.Text()
		}
		close(input)
	}()

	for {
		select {
		case err := <-done:
			return err
		case line, ok := <-input:
			if !ok {
				return nil
			}
			quit, err := gc.handleInput(line)
			if err != nil {
				gc.out.PrintError(err)
				continue
			}
			if quit {
				return nil
			}
		}
	}
}

func (gc *gameClient) handleInput(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "attack":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: attack <x> <y>")
		}
		x, errX := strconv.Atoi(fields[1])
		y, errY := strconv.Atoi(fields[2])
		if errX != nil || errY != nil {
			return false, fmt.Errorf("coordinates must be integers")
		}
		return false, gc.send(protocol.MsgAttack, map[string]any{
			"gameId": gc.gameID, "x": x, "y": y, "indexPlayer": gc.playerID,
		})
	case "random":
		return false, gc.send(protocol.MsgRandomAttack, map[string]any{
			"gameId": gc.gameID, "indexPlayer": gc.playerID,
		})
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try: attack, random, quit)", fields[0])
	}
}

func (gc *gameClient) send(msgType string, payload any) error {
	frame, err := protocol.Encode(msgType, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", msgType, err)
	}
	if cfg.Verbose {
		fmt.Printf(">> %s\n", frame)
	}
	return gc.conn.WriteMessage(websocket.TextMessage, frame)
}

func (gc *gameClient) readLoop() error {
	for {
		_, raw, err := gc.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}
		if cfg.Verbose {
			fmt.Printf("<< %s\n", raw)
		}
		if err := gc.handleFrame(raw); err != nil {
			gc.out.PrintError(err)
		}
	}
}

func (gc *gameClient) handleFrame(raw []byte) error {
	var msg protocol.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}

	switch msg.Type {
	case protocol.MsgReg:
		var resp protocol.RegResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		if resp.Error {
			return fmt.Errorf("registration failed: %s", resp.ErrorText)
		}
		gc.playerID = string(resp.Index)
		gc.out.PrintMessage(fmt.Sprintf("Registered as %s (%s)", resp.Name, resp.Index))

	case protocol.MsgUpdateRoom:
		var rooms []protocol.RoomInfo
		if err := json.Unmarshal([]byte(msg.Data), &rooms); err != nil {
			return err
		}
		gc.out.Print(rooms)

	case protocol.MsgUpdateWinners:
		var winners []protocol.WinnerEntry
		if err := json.Unmarshal([]byte(msg.Data), &winners); err != nil {
			return err
		}
		gc.out.Print(winners)

	case protocol.MsgCreateGame:
		var resp protocol.CreateGameResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		gc.gameID = string(resp.IDGame)
		gc.out.PrintMessage(fmt.Sprintf("Game %s created, sending fleet", resp.IDGame))
		return gc.send(protocol.MsgAddShips, map[string]any{
			"gameId":      gc.gameID,
			"ships":       gc.fleet,
			"indexPlayer": gc.playerID,
		})

	case protocol.MsgStartGame:
		var resp protocol.StartGameResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		gc.out.PrintMessage(fmt.Sprintf("Game started with %d ships placed", len(resp.Ships)))

	case protocol.MsgTurn:
		var resp protocol.TurnResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		if string(resp.CurrentPlayer) == gc.playerID {
			gc.out.PrintMessage("Your turn")
		} else {
			gc.out.PrintMessage("Opponent's turn")
		}

	case protocol.MsgAttack:
		var resp protocol.AttackResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		who := "Opponent"
		if string(resp.CurrentPlayer) == gc.playerID {
			who = "You"
		}
		gc.out.PrintMessage(fmt.Sprintf("%s fired at (%d,%d): %s", who, resp.Position.X, resp.Position.Y, resp.Status))

	case protocol.MsgFinish:
		var resp protocol.FinishResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		if string(resp.WinPlayer) == gc.playerID {
			gc.out.PrintMessage("You won!")
		} else {
			gc.out.PrintMessage("You lost")
		}

	case protocol.MsgError:
		var resp protocol.ErrorResponse
		if err := json.Unmarshal([]byte(msg.Data), &resp); err != nil {
			return err
		}
		return fmt.Errorf("server rejected command: %s", resp.Message)

	default:
		gc.out.PrintMessage(fmt.Sprintf("Unhandled frame type %q", msg.Type))
	}

	return nil
}
