// Package events holds the outbound fan-out queue: an ordered mailbox of
// notifications produced while the registry's write lock is held and
// drained by a periodic delivery task outside it.
package events

import (
	"sync"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Queue is an ordered, unbounded mailbox of outbound events. Enqueue order
// matches mutation order because producers append while holding the
// registry write lock; the queue's own lock only guards against the
// concurrent drainer.
type Queue struct {
	mu     sync.Mutex
	events []model.Event
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends events in order
func (q *Queue) Push(events ...model.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
}

// Drain removes and returns every queued event, in enqueue order. Events
// pushed after the drain began are left for the next cycle.
func (q *Queue) Drain() []model.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.events
	q.events = nil
	return drained
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
