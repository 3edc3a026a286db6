package registry

import (
	"context"
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

// HandleMessage decodes one raw inbound frame and dispatches it on behalf
// of the connection. Failures never propagate: every rejection is
// surfaced to the sender through the event queue and the process carries
// on.
func (c *Controller) HandleMessage(ctx context.Context, key model.ConnectionKey, raw []byte) {
	cmd, err := protocol.DecodeCommand(raw)
	if err != nil {
		c.logger.Warn("rejected inbound frame",
			slog.String("conn", string(key)),
			slog.String("error", err.Error()),
		)
		c.reject(key, err)
		return
	}
	c.Dispatch(ctx, key, cmd)
}

// Dispatch routes a decoded command to the operation it names. The sender
// is identified by connection key; all commands except registration
// require a registered user.
func (c *Controller) Dispatch(ctx context.Context, key model.ConnectionKey, cmd protocol.Command) {
	if reg, ok := cmd.(protocol.RegCommand); ok {
		if _, err := c.Register(ctx, key, reg.Name); err != nil {
			c.mu.Lock()
			c.notifier.SendRegistrationError(key, reg.Name, err.Error())
			c.mu.Unlock()
		}
		return
	}

	sender, err := c.UserByConnection(ctx, key)
	if err != nil {
		c.reject(key, err)
		return
	}

	switch cmd := cmd.(type) {
	case protocol.CreateRoomCommand:
		_, err = c.CreateRoom(ctx, sender.ID)
	case protocol.JoinRoomCommand:
		err = c.JoinRoom(ctx, sender.ID, cmd.RoomID)
	case protocol.AddShipsCommand:
		err = c.SubmitShips(ctx, sender.ID, cmd.Ships)
	case protocol.AttackCommand:
		_, err = c.Attack(ctx, sender.ID, model.Position{X: cmd.X, Y: cmd.Y})
	case protocol.RandomAttackCommand:
		_, err = c.RandomAttack(ctx, sender.ID)
	default:
		err = model.ErrUnknownCommand
	}

	if err != nil {
		c.logger.Warn("command rejected",
			slog.String("conn", string(key)),
			slog.String("user_id", string(sender.ID)),
			slog.String("error", err.Error()),
		)
		c.reject(key, err)
	}
}

// HandleDisconnect is the transport's notification that a connection
// closed. No further frames arrive for the key after this.
func (c *Controller) HandleDisconnect(ctx context.Context, key model.ConnectionKey) {
	if err := c.Disconnect(ctx, key); err != nil {
		c.logger.Error("disconnect failed",
			slog.String("conn", string(key)),
			slog.String("error", err.Error()),
		)
	}
}

// reject surfaces a rejection to the sender without touching game state
func (c *Controller) reject(key model.ConnectionKey, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier.SendError(key, err.Error())
}
