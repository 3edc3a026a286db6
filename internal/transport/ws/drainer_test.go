package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/events"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/testutil"
)

type DrainerSuite struct {
	suite.Suite
	queue *events.Queue
	hub   *Hub
	peer  *Peer
}

func TestDrainerSuite(t *testing.T) {
	suite.Run(t, new(DrainerSuite))
}

func (s *DrainerSuite) SetupTest() {
	s.queue = events.NewQueue()
	s.hub = NewHub(testutil.NopLogger())
	s.peer = NewPeer("conn-1", nil)
	s.hub.Add(s.peer)
}

func (s *DrainerSuite) received() []string {
	var frames []string
	for {
		select {
		case frame := <-s.peer.send:
			frames = append(frames, string(frame))
		default:
			return frames
		}
	}
}

func (s *DrainerSuite) TestTickDeliversQueuedEventsInOrder() {
	drainer := NewDrainer(s.queue, s.hub, time.Second, testutil.NopLogger())

	s.queue.Push(model.Broadcast([]byte("first")))
	s.queue.Push(model.Addressed("conn-1", []byte("second")))

	drainer.Tick()

	s.Equal([]string{"first", "second"}, s.received())
	s.Equal(0, s.queue.Len())
}

func (s *DrainerSuite) TestTickWithEmptyQueueDeliversNothing() {
	drainer := NewDrainer(s.queue, s.hub, time.Second, testutil.NopLogger())
	drainer.Tick()
	s.Empty(s.received())
}

func (s *DrainerSuite) TestNonPositiveIntervalFallsBack() {
	drainer := NewDrainer(s.queue, s.hub, 0, testutil.NopLogger())
	s.Equal(DefaultDrainInterval, drainer.interval)
}

func (s *DrainerSuite) TestRunDeliversPeriodically() {
	drainer := NewDrainer(s.queue, s.hub, time.Millisecond, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		drainer.Run(ctx)
		close(done)
	}()

	s.queue.Push(model.Broadcast([]byte("tick")))

	s.Eventually(func() bool {
		return len(s.received()) > 0
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func (s *DrainerSuite) TestRunFlushesOnShutdown() {
	drainer := NewDrainer(s.queue, s.hub, time.Hour, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		drainer.Run(ctx)
		close(done)
	}()

	s.queue.Push(model.Broadcast([]byte("pending")))
	cancel()
	<-done

	s.Equal([]string{"pending"}, s.received())
}
