package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/mocks"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(board.New(logger), s.clock, s.random, logger)
}

func ship(x, y int, vertical bool, length int) model.Ship {
	return model.Ship{
		Position: model.Position{X: x, Y: y},
		Vertical: vertical,
		Type:     model.ShipSmall,
		HP:       length,
	}
}

// newStartedSession builds a session where alice owns the first turn and
// each player has a single two-cell ship on their top row
func (s *ControllerSuite) newStartedSession() *model.Session {
	s.random.QueueBool(true) // alice moves first
	sess := s.controller.Create("room-1", "alice")

	s.Require().NoError(s.controller.Join(sess, "bob"))

	started, err := s.controller.SubmitShips(sess, "alice", []model.Ship{ship(0, 0, false, 2)})
	s.Require().NoError(err)
	s.Require().False(started)

	started, err = s.controller.SubmitShips(sess, "bob", []model.Ship{ship(0, 0, false, 2)})
	s.Require().NoError(err)
	s.Require().True(started)

	return sess
}

// Create tests

func (s *ControllerSuite) TestCreateStartsWaiting() {
	s.random.QueueBool(true)

	sess := s.controller.Create("room-1", "alice")

	s.Equal(model.SessionID("room-1"), sess.ID)
	s.Equal(model.SessionWaiting, sess.Status)
	s.Equal(model.UserID("alice"), sess.Player1)
	s.Empty(sess.Player2)
	s.True(sess.P1Turn)
	s.Equal(s.clock.CurrentTime, sess.CreatedAt)
}

func (s *ControllerSuite) TestCreateCoinFlipCanFavourPlayer2() {
	s.random.QueueBool(false)

	sess := s.controller.Create("room-1", "alice")
	s.False(sess.P1Turn)
}

// Join tests

func (s *ControllerSuite) TestJoinSeatsSecondPlayer() {
	sess := s.controller.Create("room-1", "alice")
	s.clock.Advance(time.Minute)

	err := s.controller.Join(sess, "bob")
	s.Require().NoError(err)

	s.Equal(model.UserID("bob"), sess.Player2)
	s.Equal(model.SessionPlacingShips, sess.Status)
	s.Equal(s.clock.CurrentTime, sess.UpdatedAt)
}

func (s *ControllerSuite) TestJoinOwnRoomRejected() {
	sess := s.controller.Create("room-1", "alice")

	err := s.controller.Join(sess, "alice")
	s.ErrorIs(err, model.ErrSelfJoin)
	s.Empty(sess.Player2)
}

func (s *ControllerSuite) TestJoinFullRoomRejected() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	err := s.controller.Join(sess, "carol")
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ControllerSuite) TestJoinStartedRoomRejectedAsFull() {
	sess := s.newStartedSession()

	err := s.controller.Join(sess, "carol")
	s.ErrorIs(err, model.ErrRoomFull)
}

// SubmitShips tests

func (s *ControllerSuite) TestSubmitShipsBeforeJoinRejected() {
	sess := s.controller.Create("room-1", "alice")

	_, err := s.controller.SubmitShips(sess, "alice", []model.Ship{ship(0, 0, false, 2)})
	s.ErrorIs(err, model.ErrWrongPhase)
}

func (s *ControllerSuite) TestSubmitShipsByStrangerRejected() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	_, err := s.controller.SubmitShips(sess, "carol", []model.Ship{ship(0, 0, false, 2)})
	s.ErrorIs(err, model.ErrNotAPlayer)
}

func (s *ControllerSuite) TestSubmitShipsFirstFleetKeepsPlacing() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	started, err := s.controller.SubmitShips(sess, "alice", []model.Ship{ship(0, 0, false, 2)})
	s.Require().NoError(err)
	s.False(started)
	s.Equal(model.SessionPlacingShips, sess.Status)
}

func (s *ControllerSuite) TestSubmitShipsSecondFleetStarts() {
	sess := s.newStartedSession()
	s.Equal(model.SessionStarted, sess.Status)
}

func (s *ControllerSuite) TestSubmitShipsResubmitRejected() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	_, err := s.controller.SubmitShips(sess, "alice", []model.Ship{ship(0, 0, false, 2)})
	s.Require().NoError(err)

	_, err = s.controller.SubmitShips(sess, "alice", []model.Ship{ship(5, 5, false, 2)})
	s.ErrorIs(err, model.ErrFleetCommitted)
}

func (s *ControllerSuite) TestSubmitShipsInvalidFleetSurfacesPlacementError() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	_, err := s.controller.SubmitShips(sess, "alice", []model.Ship{ship(9, 9, false, 3)})

	var placementErr *model.PlacementError
	s.Require().ErrorAs(err, &placementErr)
	s.Equal(0, placementErr.ShipIndex)
	s.False(sess.Boards[model.SeatPlayer1].HasFleet())
}

// Attack tests

func (s *ControllerSuite) TestAttackBeforeStartRejected() {
	sess := s.controller.Create("room-1", "alice")
	s.Require().NoError(s.controller.Join(sess, "bob"))

	_, err := s.controller.Attack(sess, "alice", model.Position{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrWrongPhase)
}

func (s *ControllerSuite) TestAttackOutOfTurnRejected() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "bob", model.Position{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestAttackByStrangerRejected() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "carol", model.Position{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrNotAPlayer)
}

func (s *ControllerSuite) TestAttackMissPassesTurn() {
	sess := s.newStartedSession()

	report, err := s.controller.Attack(sess, "alice", model.Position{X: 5, Y: 5})
	s.Require().NoError(err)

	s.Equal(model.AttackMiss, report.Outcome)
	s.Equal(model.UserID("alice"), report.Attacker)
	s.Equal(model.UserID("bob"), report.NextPlayer)
	s.False(report.Finished)
	s.Equal(model.UserID("bob"), sess.CurrentPlayer())
}

func (s *ControllerSuite) TestAttackHitStillPassesTurn() {
	sess := s.newStartedSession()

	report, err := s.controller.Attack(sess, "alice", model.Position{X: 0, Y: 0})
	s.Require().NoError(err)

	s.Equal(model.AttackHit, report.Outcome)
	s.Equal(model.UserID("bob"), report.NextPlayer)
	s.Equal(model.UserID("bob"), sess.CurrentPlayer())
}

func (s *ControllerSuite) TestAttackHitsOpponentBoardNotOwn() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "alice", model.Position{X: 0, Y: 0})
	s.Require().NoError(err)

	s.Equal(model.CellHit, sess.Boards[model.SeatPlayer2].At(model.Position{X: 0, Y: 0}).State)
	s.Equal(model.CellOccupied, sess.Boards[model.SeatPlayer1].At(model.Position{X: 0, Y: 0}).State)
}

func (s *ControllerSuite) TestAttackResolvedCellKeepsTurn() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "alice", model.Position{X: 5, Y: 5})
	s.Require().NoError(err)
	_, err = s.controller.Attack(sess, "bob", model.Position{X: 5, Y: 5})
	s.Require().NoError(err)

	// alice already resolved (5,5) on bob's board
	_, err = s.controller.Attack(sess, "alice", model.Position{X: 5, Y: 5})
	s.ErrorIs(err, model.ErrAlreadyResolved)
	s.Equal(model.UserID("alice"), sess.CurrentPlayer())
}

func (s *ControllerSuite) TestAttackSinkingLastShipFinishes() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "alice", model.Position{X: 0, Y: 0})
	s.Require().NoError(err)
	_, err = s.controller.Attack(sess, "bob", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)

	report, err := s.controller.Attack(sess, "alice", model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	s.Equal(model.AttackSunk, report.Outcome)
	s.True(report.Finished)
	s.Equal(model.UserID("alice"), report.Winner)
	s.Equal(model.SessionFinished, sess.Status)
}

func (s *ControllerSuite) TestAttackAfterFinishRejected() {
	sess := s.newStartedSession()

	_, err := s.controller.Attack(sess, "alice", model.Position{X: 0, Y: 0})
	s.Require().NoError(err)
	_, err = s.controller.Attack(sess, "bob", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)
	_, err = s.controller.Attack(sess, "alice", model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	_, err = s.controller.Attack(sess, "bob", model.Position{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrWrongPhase)
}

// RandomAttack tests

func (s *ControllerSuite) TestRandomAttackPicksUnresolvedCell() {
	sess := s.newStartedSession()
	s.random.QueueIntn(0) // first unresolved cell is (0,0), a hit

	report, err := s.controller.RandomAttack(sess, "alice")
	s.Require().NoError(err)

	s.Equal(model.AttackHit, report.Outcome)
	s.Equal(model.Position{X: 0, Y: 0}, report.Position)
}

func (s *ControllerSuite) TestRandomAttackOutOfTurnRejected() {
	sess := s.newStartedSession()

	_, err := s.controller.RandomAttack(sess, "bob")
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestRandomAttackExhaustedBoardRejected() {
	sess := s.newStartedSession()

	// Resolve every cell on bob's board directly; no finishing shot has
	// passed through the controller, so the session is still Started
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			sess.Boards[model.SeatPlayer2].Cells[y][x] = model.Cell{State: model.CellMiss}
		}
	}

	_, err := s.controller.RandomAttack(sess, "alice")
	s.ErrorIs(err, model.ErrBoardExhausted)
	s.Equal(model.UserID("alice"), sess.CurrentPlayer())
}

func (s *ControllerSuite) TestRandomAttackNeverRepeatsCells() {
	sess := s.newStartedSession()

	// Let both players fire random shots until the match ends; every pick
	// lands on an unresolved cell so no shot ever errors
	s.random.QueueIntn(make([]int, 250)...)
	for turns := 0; sess.Status == model.SessionStarted; turns++ {
		s.Require().Less(turns, 250)

		_, err := s.controller.RandomAttack(sess, sess.CurrentPlayer())
		s.Require().NoError(err)
	}

	s.Equal(model.SessionFinished, sess.Status)
}
