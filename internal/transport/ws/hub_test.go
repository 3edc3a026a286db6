package ws

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
}

// addPeer registers a peer without a live socket; frames land in its send
// channel
func (s *HubSuite) addPeer(key model.ConnectionKey) *Peer {
	peer := NewPeer(key, nil)
	s.hub.Add(peer)
	return peer
}

func (s *HubSuite) received(peer *Peer) []string {
	var frames []string
	for {
		select {
		case frame := <-peer.send:
			frames = append(frames, string(frame))
		default:
			return frames
		}
	}
}

func (s *HubSuite) TestAddAndRemove() {
	s.addPeer("conn-1")
	s.Equal(1, s.hub.PeerCount())

	s.hub.Remove("conn-1")
	s.Equal(0, s.hub.PeerCount())
}

func (s *HubSuite) TestRemoveClosesSendChannel() {
	peer := s.addPeer("conn-1")
	s.hub.Remove("conn-1")

	_, open := <-peer.send
	s.False(open)
}

func (s *HubSuite) TestRemoveUnknownKeyIsNoop() {
	s.hub.Remove("conn-missing")
	s.Equal(0, s.hub.PeerCount())
}

func (s *HubSuite) TestBroadcastReachesEveryPeer() {
	p1 := s.addPeer("conn-1")
	p2 := s.addPeer("conn-2")

	s.hub.Deliver(model.Broadcast([]byte("hello")))

	s.Equal([]string{"hello"}, s.received(p1))
	s.Equal([]string{"hello"}, s.received(p2))
}

func (s *HubSuite) TestAddressedReachesOnlyTarget() {
	p1 := s.addPeer("conn-1")
	p2 := s.addPeer("conn-2")

	s.hub.Deliver(model.Addressed("conn-2", []byte("private")))

	s.Empty(s.received(p1))
	s.Equal([]string{"private"}, s.received(p2))
}

func (s *HubSuite) TestAddressedToGonePeerIsDropped() {
	p1 := s.addPeer("conn-1")

	s.hub.Deliver(model.Addressed("conn-gone", []byte("lost")))

	s.Empty(s.received(p1))
}

func (s *HubSuite) TestDeliveryPreservesOrderPerPeer() {
	peer := s.addPeer("conn-1")

	s.hub.Deliver(model.Broadcast([]byte("first")))
	s.hub.Deliver(model.Addressed("conn-1", []byte("second")))
	s.hub.Deliver(model.Broadcast([]byte("third")))

	s.Equal([]string{"first", "second", "third"}, s.received(peer))
}

func (s *HubSuite) TestFullBufferDropsFrameWithoutBlocking() {
	peer := s.addPeer("conn-1")
	for i := 0; i < sendBuffer; i++ {
		peer.send <- []byte("fill")
	}

	// Must return rather than block on the saturated peer
	s.hub.Deliver(model.Broadcast([]byte("overflow")))

	s.Len(s.received(peer), sendBuffer)
}
