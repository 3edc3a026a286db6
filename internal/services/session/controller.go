package session

import (
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
)

// Controller owns the session state machine: room membership, fleet
// placement and attack arbitration for one match. It mutates sessions in
// place; the registry persists them and serializes concurrent access.
type Controller struct {
	boards *board.Service
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	boards *board.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		boards: boards,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("component", "session")),
	}
}

// Create initializes a waiting session owned by the given user. The
// initial turn owner is a coin flip.
func (c *Controller) Create(id model.SessionID, owner model.UserID) *model.Session {
	now := c.clock.Now()
	sess := &model.Session{
		ID:        id,
		Status:    model.SessionWaiting,
		Player1:   owner,
		P1Turn:    c.random.Bool(),
		Boards:    [2]*model.Board{model.NewBoard(), model.NewBoard()},
		CreatedAt: now,
		UpdatedAt: now,
	}

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("owner", string(owner)),
	)
	return sess
}

// Join seats a second player and moves the session to ship placement
func (c *Controller) Join(sess *model.Session, userID model.UserID) error {
	// A full room has already left Waiting, so this check must come first
	// for a third join to report the room as full
	if sess.Player2 != "" {
		return model.ErrRoomFull
	}
	if userID == sess.Player1 {
		return model.ErrSelfJoin
	}
	if sess.Status != model.SessionWaiting {
		return model.ErrWrongPhase
	}

	sess.Player2 = userID
	sess.Status = model.SessionPlacingShips
	sess.UpdatedAt = c.clock.Now()

	c.logger.Info("player joined session",
		slog.String("session_id", string(sess.ID)),
		slog.String("user_id", string(userID)),
	)
	return nil
}

// SubmitShips commits the player's fleet. It returns true when both fleets
// are committed and the session has moved to Started.
func (c *Controller) SubmitShips(sess *model.Session, userID model.UserID, ships []model.Ship) (bool, error) {
	if sess.Status != model.SessionPlacingShips {
		return false, model.ErrWrongPhase
	}
	seat, ok := sess.SeatOf(userID)
	if !ok {
		return false, model.ErrNotAPlayer
	}

	if err := c.boards.PlaceFleet(sess.Boards[seat], ships); err != nil {
		return false, err
	}
	sess.UpdatedAt = c.clock.Now()

	if !sess.Boards[model.SeatPlayer1].HasFleet() || !sess.Boards[model.SeatPlayer2].HasFleet() {
		return false, nil
	}

	sess.Status = model.SessionStarted
	c.logger.Info("session started",
		slog.String("session_id", string(sess.ID)),
		slog.Bool("p1_turn", sess.P1Turn),
	)
	return true, nil
}

// Attack resolves a shot by userID against the opponent's board. The turn
// alternates after every resolved shot; a shot that defeats the opponent's
// fleet finishes the session and reports the winner.
func (c *Controller) Attack(sess *model.Session, userID model.UserID, pos model.Position) (*model.AttackReport, error) {
	if sess.Status != model.SessionStarted {
		return nil, model.ErrWrongPhase
	}
	seat, ok := sess.SeatOf(userID)
	if !ok {
		return nil, model.ErrNotAPlayer
	}
	if sess.CurrentPlayer() != userID {
		return nil, model.ErrNotYourTurn
	}

	target := sess.Boards[opponentSeat(seat)]
	outcome, err := c.boards.Attack(target, pos)
	if err != nil {
		return nil, err
	}

	sess.P1Turn = !sess.P1Turn
	sess.UpdatedAt = c.clock.Now()

	report := &model.AttackReport{
		Outcome:    outcome,
		Position:   pos,
		Attacker:   userID,
		NextPlayer: sess.CurrentPlayer(),
	}

	if outcome == model.AttackSunk && c.boards.IsDefeated(target) {
		sess.Status = model.SessionFinished
		report.Finished = true
		report.Winner = userID
		c.logger.Info("session finished",
			slog.String("session_id", string(sess.ID)),
			slog.String("winner", string(userID)),
		)
	}

	return report, nil
}

// RandomAttack resolves a shot at a uniformly-random unresolved cell on the
// opponent's board
func (c *Controller) RandomAttack(sess *model.Session, userID model.UserID) (*model.AttackReport, error) {
	if sess.Status != model.SessionStarted {
		return nil, model.ErrWrongPhase
	}
	seat, ok := sess.SeatOf(userID)
	if !ok {
		return nil, model.ErrNotAPlayer
	}
	if sess.CurrentPlayer() != userID {
		return nil, model.ErrNotYourTurn
	}

	cells := c.boards.UnresolvedCells(sess.Boards[opponentSeat(seat)])
	if len(cells) == 0 {
		return nil, model.ErrBoardExhausted
	}

	return c.Attack(sess, userID, cells[c.random.Intn(len(cells))])
}

func opponentSeat(seat int) int {
	if seat == model.SeatPlayer1 {
		return model.SeatPlayer2
	}
	return model.SeatPlayer1
}
