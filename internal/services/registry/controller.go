package registry

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/events"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/protocol"
	"github.com/mcoot/battleshipgame-go/internal/services/session"
	"github.com/mcoot/battleshipgame-go/internal/storage"
)

const (
	// IDLength is the length of generated user and session ids
	IDLength = 12
	// IDAlphabet is the characters used in generated ids
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Controller owns the user and session directories. Every mutating
// operation runs under one writer lock, making it atomic with respect to
// every other mutation; events are enqueued inside the critical section so
// delivery order matches mutation order.
type Controller struct {
	mu sync.RWMutex

	storage  storage.Storage
	sessions *session.Controller
	notifier *events.Notifier
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new registry Controller
func NewController(
	store storage.Storage,
	sessions *session.Controller,
	notifier *events.Notifier,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  store,
		sessions: sessions,
		notifier: notifier,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "registry")),
	}
}

// Register creates a user for the connection, or returns the existing one
// unchanged. Registration is idempotent per connection.
func (c *Controller) Register(ctx context.Context, key model.ConnectionKey, name string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, err := c.storage.GetUserByConnection(ctx, key); err == nil {
		c.notifier.SendRegistered(key, existing)
		return existing, nil
	}

	user := &model.User{
		ID:        model.UserID(c.random.String(IDLength, IDAlphabet)),
		Name:      name,
		Conn:      key,
		CreatedAt: c.clock.Now(),
	}
	if err := c.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	c.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("name", name),
	)

	c.notifier.SendRegistered(key, user)
	c.notifier.BroadcastWinners(c.leaderboard(ctx))
	c.notifier.BroadcastLobby(c.lobbySnapshot(ctx))
	return user, nil
}

// CreateRoom opens a new waiting session owned by the user
func (c *Controller) CreateRoom(ctx context.Context, userID model.UserID) (model.SessionID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.storage.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if c.inLiveRoom(ctx, user) {
		return "", model.ErrAlreadyInRoom
	}

	sess := c.sessions.Create(c.newSessionID(ctx), userID)
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return "", err
	}

	user.CurrentRoom = sess.ID
	if err := c.storage.SaveUser(ctx, user); err != nil {
		return "", err
	}

	c.notifier.BroadcastLobby(c.lobbySnapshot(ctx))
	return sess.ID, nil
}

// JoinRoom seats the user in an existing waiting session. On success both
// players are told their game identities and the lobby listing is updated.
func (c *Controller) JoinRoom(ctx context.Context, userID model.UserID, roomID model.SessionID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if c.inLiveRoom(ctx, user) {
		return model.ErrAlreadyInRoom
	}

	sess, err := c.storage.GetSession(ctx, roomID)
	if err != nil {
		return err
	}
	if err := c.sessions.Join(sess, userID); err != nil {
		return err
	}
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return err
	}

	user.CurrentRoom = sess.ID
	if err := c.storage.SaveUser(ctx, user); err != nil {
		return err
	}

	c.notifier.BroadcastLobby(c.lobbySnapshot(ctx))
	for _, playerID := range sess.Players() {
		player, err := c.storage.GetUser(ctx, playerID)
		if err != nil {
			continue
		}
		c.notifier.SendGameCreated(player.Conn, sess.ID, player.ID)
	}
	return nil
}

// SubmitShips commits the user's fleet in their current session. When the
// second fleet lands, both players receive their start_game frame and the
// first turn is announced.
func (c *Controller) SubmitShips(ctx context.Context, userID model.UserID, ships []model.Ship) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.resolveRoom(ctx, userID)
	if err != nil {
		return err
	}

	started, err := c.sessions.SubmitShips(sess, userID, ships)
	if err != nil {
		return err
	}
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return err
	}

	if started {
		for seat, playerID := range []model.UserID{sess.Player1, sess.Player2} {
			player, err := c.storage.GetUser(ctx, playerID)
			if err != nil {
				continue
			}
			c.notifier.SendStartGame(player.Conn, sess.Boards[seat].Ships, sess.CurrentPlayer())
		}
		c.notifier.BroadcastTurn(sess.CurrentPlayer())
	}
	return nil
}

// Attack resolves a shot at the given cell of the opponent's board
func (c *Controller) Attack(ctx context.Context, userID model.UserID, pos model.Position) (*model.AttackReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.attack(ctx, userID, func(sess *model.Session) (*model.AttackReport, error) {
		return c.sessions.Attack(sess, userID, pos)
	})
}

// RandomAttack resolves a shot at a random unresolved cell of the
// opponent's board
func (c *Controller) RandomAttack(ctx context.Context, userID model.UserID) (*model.AttackReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.attack(ctx, userID, func(sess *model.Session) (*model.AttackReport, error) {
		return c.sessions.RandomAttack(sess, userID)
	})
}

// attack runs one shot under the already-held write lock and fans out its
// results. A finishing shot credits the winner, tears the session down and
// refreshes the leaderboard.
func (c *Controller) attack(ctx context.Context, userID model.UserID, fire func(*model.Session) (*model.AttackReport, error)) (*model.AttackReport, error) {
	sess, err := c.resolveRoom(ctx, userID)
	if err != nil {
		return nil, err
	}

	report, err := fire(sess)
	if err != nil {
		return nil, err
	}
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.notifier.BroadcastAttack(report)

	if !report.Finished {
		c.notifier.BroadcastTurn(report.NextPlayer)
		return report, nil
	}

	c.notifier.BroadcastFinish(report.Winner)

	if winner, err := c.storage.GetUser(ctx, report.Winner); err == nil {
		winner.Wins++
		winner.CurrentRoom = ""
		if err := c.storage.SaveUser(ctx, winner); err != nil {
			return nil, err
		}
	}
	if loser, err := c.storage.GetUser(ctx, sess.Opponent(report.Winner)); err == nil {
		loser.CurrentRoom = ""
		if err := c.storage.SaveUser(ctx, loser); err != nil {
			return nil, err
		}
	}
	if err := c.storage.DeleteSession(ctx, sess.ID); err != nil {
		return nil, err
	}

	c.notifier.BroadcastWinners(c.leaderboard(ctx))
	return report, nil
}

// Disconnect removes the connection's user. Any session they were seated
// in is torn down unconditionally, whichever seat they held; departure is
// treated as abandonment with no winner credited.
func (c *Controller) Disconnect(ctx context.Context, key model.ConnectionKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.storage.GetUserByConnection(ctx, key)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.storage.DeleteUser(ctx, user.ID); err != nil {
		return err
	}

	if user.InRoom() {
		if sess, err := c.storage.GetSession(ctx, user.CurrentRoom); err == nil {
			if err := c.teardownSession(ctx, sess, user.ID); err != nil {
				return err
			}
		}
	}

	c.logger.Info("user disconnected",
		slog.String("user_id", string(user.ID)),
		slog.String("name", user.Name),
	)

	c.notifier.BroadcastLobby(c.lobbySnapshot(ctx))
	return nil
}

// teardownSession removes a session and clears the room reference of every
// remaining player
func (c *Controller) teardownSession(ctx context.Context, sess *model.Session, departed model.UserID) error {
	if err := c.storage.DeleteSession(ctx, sess.ID); err != nil {
		return err
	}
	for _, playerID := range sess.Players() {
		if playerID == departed {
			continue
		}
		player, err := c.storage.GetUser(ctx, playerID)
		if err != nil {
			continue
		}
		player.CurrentRoom = ""
		if err := c.storage.SaveUser(ctx, player); err != nil {
			return err
		}
	}
	return nil
}

// UserByConnection resolves the sender of an inbound command. Callers must
// not cache the result across mutations.
func (c *Controller) UserByConnection(ctx context.Context, key model.ConnectionKey) (*model.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage.GetUserByConnection(ctx, key)
}

// LobbySnapshot returns every waiting session with its seated players.
// The view is recomputed on demand, never cached across mutations.
func (c *Controller) LobbySnapshot(ctx context.Context) []protocol.RoomInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lobbySnapshot(ctx)
}

// Leaderboard returns every connected user's name and win count, ordered
// by wins
func (c *Controller) Leaderboard(ctx context.Context) []protocol.WinnerEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leaderboard(ctx)
}

// lobbySnapshot derives the lobby view. Callers hold the registry lock.
func (c *Controller) lobbySnapshot(ctx context.Context) []protocol.RoomInfo {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		c.logger.Error("failed to list sessions", slog.String("error", err.Error()))
		return nil
	}

	rooms := make([]protocol.RoomInfo, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Status != model.SessionWaiting {
			continue
		}
		room := protocol.RoomInfo{RoomID: sess.ID, RoomUsers: []protocol.RoomUser{}}
		for _, playerID := range sess.Players() {
			player, err := c.storage.GetUser(ctx, playerID)
			if err != nil {
				continue
			}
			room.RoomUsers = append(room.RoomUsers, protocol.RoomUser{
				Name:  player.Name,
				Index: player.ID,
			})
		}
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })
	return rooms
}

// leaderboard derives the winners view. Callers hold the registry lock.
func (c *Controller) leaderboard(ctx context.Context) []protocol.WinnerEntry {
	users, err := c.storage.ListUsers(ctx)
	if err != nil {
		c.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil
	}

	winners := make([]protocol.WinnerEntry, 0, len(users))
	for _, user := range users {
		winners = append(winners, protocol.WinnerEntry{Name: user.Name, Wins: user.Wins})
	}

	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Wins != winners[j].Wins {
			return winners[i].Wins > winners[j].Wins
		}
		return winners[i].Name < winners[j].Name
	})
	return winners
}

// inLiveRoom reports whether the user's recorded room still resolves to an
// existing session. A stale reference does not block new rooms.
func (c *Controller) inLiveRoom(ctx context.Context, user *model.User) bool {
	if !user.InRoom() {
		return false
	}
	_, err := c.storage.GetSession(ctx, user.CurrentRoom)
	return err == nil
}

// resolveRoom maps a user to their current session
func (c *Controller) resolveRoom(ctx context.Context, userID model.UserID) (*model.Session, error) {
	user, err := c.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.InRoom() {
		return nil, model.ErrRoomNotFound
	}
	return c.storage.GetSession(ctx, user.CurrentRoom)
}

// newSessionID generates a session id not already present in the directory
func (c *Controller) newSessionID(ctx context.Context) model.SessionID {
	for {
		id := model.SessionID(c.random.String(IDLength, IDAlphabet))
		if _, err := c.storage.GetSession(ctx, id); errors.Is(err, model.ErrRoomNotFound) {
			return id
		}
	}
}
