package events

import (
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

// Notifier encodes outbound notifications as wire frames and enqueues
// them. It is called synchronously by the registry inside its critical
// sections so that delivery order matches mutation order.
type Notifier struct {
	queue  *Queue
	logger *slog.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(queue *Queue, logger *slog.Logger) *Notifier {
	return &Notifier{
		queue:  queue,
		logger: logger.With(slog.String("component", "notifier")),
	}
}

// SendRegistered acknowledges a registration to its sender
func (n *Notifier) SendRegistered(to model.ConnectionKey, user *model.User) {
	n.queue.Push(model.Addressed(to, protocol.MustEncode(protocol.MsgReg, protocol.RegResponse{
		Name:  user.Name,
		Index: user.ID,
	})))
}

// SendRegistrationError rejects a registration
func (n *Notifier) SendRegistrationError(to model.ConnectionKey, name, reason string) {
	n.queue.Push(model.Addressed(to, protocol.MustEncode(protocol.MsgReg, protocol.RegResponse{
		Name:      name,
		Error:     true,
		ErrorText: reason,
	})))
}

// SendError reports a rejected command to its sender
func (n *Notifier) SendError(to model.ConnectionKey, message string) {
	n.queue.Push(model.Addressed(to, protocol.MustEncode(protocol.MsgError, protocol.ErrorResponse{
		Message: message,
	})))
}

// BroadcastLobby announces the current set of waiting rooms
func (n *Notifier) BroadcastLobby(rooms []protocol.RoomInfo) {
	n.queue.Push(model.Broadcast(protocol.MustEncode(protocol.MsgUpdateRoom, rooms)))
}

// BroadcastWinners announces the current leaderboard
func (n *Notifier) BroadcastWinners(winners []protocol.WinnerEntry) {
	n.queue.Push(model.Broadcast(protocol.MustEncode(protocol.MsgUpdateWinners, winners)))
}

// SendGameCreated tells one player their session and player ids
func (n *Notifier) SendGameCreated(to model.ConnectionKey, sessionID model.SessionID, playerID model.UserID) {
	n.queue.Push(model.Addressed(to, protocol.MustEncode(protocol.MsgCreateGame, protocol.CreateGameResponse{
		IDGame:   sessionID,
		IDPlayer: playerID,
	})))
}

// SendStartGame echoes a player's own fleet and names the first turn owner
func (n *Notifier) SendStartGame(to model.ConnectionKey, ships []model.Ship, current model.UserID) {
	n.queue.Push(model.Addressed(to, protocol.MustEncode(protocol.MsgStartGame, protocol.StartGameResponse{
		Ships:              protocol.ShipsToPayload(ships),
		CurrentPlayerIndex: current,
	})))
}

// BroadcastTurn announces the turn owner after a state change
func (n *Notifier) BroadcastTurn(current model.UserID) {
	n.queue.Push(model.Broadcast(protocol.MustEncode(protocol.MsgTurn, protocol.TurnResponse{
		CurrentPlayer: current,
	})))
}

// BroadcastAttack reports a resolved shot
func (n *Notifier) BroadcastAttack(report *model.AttackReport) {
	n.queue.Push(model.Broadcast(protocol.MustEncode(protocol.MsgAttack, protocol.AttackResponse{
		Position:      protocol.PositionPayload{X: report.Position.X, Y: report.Position.Y},
		CurrentPlayer: report.Attacker,
		Status:        string(report.Outcome),
	})))
}

// BroadcastFinish reports the match winner
func (n *Notifier) BroadcastFinish(winner model.UserID) {
	n.queue.Push(model.Broadcast(protocol.MustEncode(protocol.MsgFinish, protocol.FinishResponse{
		WinPlayer: winner,
	})))
}
