// Package protocol defines the client/server message vocabulary: a JSON
// envelope whose data field carries a string-encoded JSON document, as the
// game's clients expect.
package protocol

import "github.com/mcoot/battleshipgame-go/internal/model"

// Message is the wire envelope. Data is a JSON document encoded as a
// string (double-encoded), or empty for payload-less messages.
type Message struct {
	Type string `json:"type"`
	Data string `json:"data"`
	ID   int    `json:"id"`
}

// Message types
const (
	// Inbound
	MsgReg           = "reg"
	MsgCreateRoom    = "create_room"
	MsgAddUserToRoom = "add_user_to_room"
	MsgAddShips      = "add_ships"
	MsgAttack        = "attack"
	MsgRandomAttack  = "randomAttack"

	// Outbound
	MsgUpdateRoom    = "update_room"
	MsgUpdateWinners = "update_winners"
	MsgCreateGame    = "create_game"
	MsgStartGame     = "start_game"
	MsgTurn          = "turn"
	MsgFinish        = "finish"
	MsgError         = "error"
)

// Command is a decoded inbound message. The sender identity is carried
// separately by the transport.
type Command interface {
	isCommand()
}

// RegCommand registers the connection under a display name
type RegCommand struct {
	Name string
}

// CreateRoomCommand opens a new waiting room owned by the sender
type CreateRoomCommand struct{}

// JoinRoomCommand seats the sender in an existing waiting room
type JoinRoomCommand struct {
	RoomID model.SessionID
}

// AddShipsCommand submits the sender's fleet placement
type AddShipsCommand struct {
	Ships []model.Ship
}

// AttackCommand fires at the given cell of the opponent's board
type AttackCommand struct {
	X int
	Y int
}

// RandomAttackCommand fires at a random unresolved cell
type RandomAttackCommand struct{}

func (RegCommand) isCommand()          {}
func (CreateRoomCommand) isCommand()   {}
func (JoinRoomCommand) isCommand()     {}
func (AddShipsCommand) isCommand()     {}
func (AttackCommand) isCommand()       {}
func (RandomAttackCommand) isCommand() {}

// Wire payload shapes

// PositionPayload is a cell coordinate on the wire
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ShipPayload is the wire shape of a ship placement
type ShipPayload struct {
	Position  PositionPayload `json:"position"`
	Direction bool            `json:"direction"` // true = vertical
	Type      string          `json:"type"`
	Length    int             `json:"length"`
}

// ToModel converts a wire ship to the domain descriptor
func (p ShipPayload) ToModel() model.Ship {
	return model.Ship{
		Position: model.Position{X: p.Position.X, Y: p.Position.Y},
		Vertical: p.Direction,
		Type:     model.ShipType(p.Type),
		HP:       p.Length,
	}
}

// ShipToPayload converts a domain ship to its wire shape
func ShipToPayload(s model.Ship) ShipPayload {
	return ShipPayload{
		Position:  PositionPayload{X: s.Position.X, Y: s.Position.Y},
		Direction: s.Vertical,
		Type:      string(s.Type),
		Length:    s.HP,
	}
}

// ShipsToPayload converts a fleet to its wire shape
func ShipsToPayload(ships []model.Ship) []ShipPayload {
	payloads := make([]ShipPayload, len(ships))
	for i, s := range ships {
		payloads[i] = ShipToPayload(s)
	}
	return payloads
}

// Inbound payloads

type regRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	IndexRoom string `json:"indexRoom"`
}

type addShipsRequest struct {
	GameID      string        `json:"gameId"`
	Ships       []ShipPayload `json:"ships"`
	IndexPlayer string        `json:"indexPlayer"`
}

type attackRequest struct {
	GameID      string `json:"gameId"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	IndexPlayer string `json:"indexPlayer"`
}

// Outbound payloads

// RegResponse acknowledges or rejects a registration
type RegResponse struct {
	Name      string       `json:"name"`
	Index     model.UserID `json:"index"`
	Error     bool         `json:"error"`
	ErrorText string       `json:"errorText"`
}

// RoomUser is one seated player in a lobby room listing
type RoomUser struct {
	Name  string       `json:"name"`
	Index model.UserID `json:"index"`
}

// RoomInfo is one waiting room in the lobby listing
type RoomInfo struct {
	RoomID    model.SessionID `json:"roomId"`
	RoomUsers []RoomUser      `json:"roomUsers"`
}

// WinnerEntry is one leaderboard row
type WinnerEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// CreateGameResponse tells one player their session and player ids
type CreateGameResponse struct {
	IDGame   model.SessionID `json:"idGame"`
	IDPlayer model.UserID    `json:"idPlayer"`
}

// StartGameResponse echoes the player's own fleet and the first turn owner
type StartGameResponse struct {
	Ships              []ShipPayload `json:"ships"`
	CurrentPlayerIndex model.UserID  `json:"currentPlayerIndex"`
}

// TurnResponse announces whose turn it is
type TurnResponse struct {
	CurrentPlayer model.UserID `json:"currentPlayer"`
}

// AttackResponse reports a resolved shot to the session's players
type AttackResponse struct {
	Position      PositionPayload `json:"position"`
	CurrentPlayer model.UserID    `json:"currentPlayer"`
	Status        string          `json:"status"`
}

// FinishResponse reports the match winner
type FinishResponse struct {
	WinPlayer model.UserID `json:"winPlayer"`
}

// ErrorResponse reports a rejected command to its sender
type ErrorResponse struct {
	Message string `json:"message"`
}
