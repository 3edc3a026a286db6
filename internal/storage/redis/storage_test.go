package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.UserTTL = time.Hour
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func user(id model.UserID, conn model.ConnectionKey) *model.User {
	return &model.User{
		ID:        id,
		Name:      string(id),
		Conn:      conn,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))

	got, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("alice"), got.ID)
	s.Equal("alice", got.Name)
	s.Equal(model.ConnectionKey("conn-1"), got.Conn)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByConnection() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))

	got, err := s.storage.GetUserByConnection(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(model.UserID("alice"), got.ID)
}

func (s *StorageSuite) TestSaveUserDropsStaleConnectionIndex() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-2")))

	got, err := s.storage.GetUserByConnection(s.ctx, "conn-2")
	s.Require().NoError(err)
	s.Equal(model.UserID("alice"), got.ID)

	_, err = s.storage.GetUserByConnection(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserRemovesAllKeys() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))
	s.Require().NoError(s.storage.DeleteUser(s.ctx, "alice"))

	_, err := s.storage.GetUser(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByConnection(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrUserNotFound)

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *StorageSuite) TestDeleteMissingUserIsNoop() {
	s.Require().NoError(s.storage.DeleteUser(s.ctx, "nobody"))
}

func (s *StorageSuite) TestListUsersSkipsExpiredEntries() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("bob", "conn-2")))

	// Expire one value while its id lingers in the index set
	s.mini.Del(userKey("alice"))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(model.UserID("bob"), users[0].ID)
}

func (s *StorageSuite) TestUserKeysCarryTTL() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, user("alice", "conn-1")))

	ttl := s.mini.TTL(userKey("alice"))
	s.Equal(time.Hour, ttl)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSessionRoundTripsBoards() {
	sess := &model.Session{
		ID:      "room-1",
		Status:  model.SessionStarted,
		Player1: "alice",
		Player2: "bob",
		P1Turn:  true,
		Boards:  [2]*model.Board{model.NewBoard(), model.NewBoard()},
	}
	sess.Boards[0].Ships = []model.Ship{{
		Position: model.Position{X: 0, Y: 0},
		Type:     model.ShipMedium,
		HP:       2,
	}}
	sess.Boards[0].Cells[0][0] = model.Cell{State: model.CellOccupied}
	sess.Boards[0].Cells[0][1] = model.Cell{State: model.CellOccupied}

	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	got, err := s.storage.GetSession(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.SessionStarted, got.Status)
	s.Equal(model.UserID("bob"), got.Player2)
	s.True(got.P1Turn)
	s.Require().Len(got.Boards[0].Ships, 1)
	s.Equal(model.CellOccupied, got.Boards[0].Cells[0][1].State)
	s.Equal(model.CellEmpty, got.Boards[1].Cells[0][0].State)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "room-missing")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteSessionRemovesIndexEntry() {
	sess := &model.Session{ID: "room-1", Status: model.SessionWaiting}
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))
	s.Require().NoError(s.storage.DeleteSession(s.ctx, "room-1"))

	_, err := s.storage.GetSession(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestListSessionsSkipsExpiredEntries() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{ID: "room-1"}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{ID: "room-2"}))

	s.mini.Del(sessionKey("room-1"))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionID("room-2"), sessions[0].ID)
}
