package model

// EventScope selects the delivery target of an outbound event
type EventScope string

const (
	// ScopeBroadcast delivers to every live connection
	ScopeBroadcast EventScope = "broadcast"
	// ScopeAddressed delivers to exactly one connection
	ScopeAddressed EventScope = "addressed"
)

// Event is one outbound notification awaiting delivery. The payload is an
// already-encoded wire frame; the engine decides what to say and who hears
// it, never how it is framed on the socket.
type Event struct {
	Scope   EventScope
	To      ConnectionKey // set only for addressed events
	Payload []byte
}

// Broadcast builds an event delivered to every connection
func Broadcast(payload []byte) Event {
	return Event{Scope: ScopeBroadcast, Payload: payload}
}

// Addressed builds an event delivered to one connection
func Addressed(to ConnectionKey, payload []byte) Event {
	return Event{Scope: ScopeAddressed, To: to, Payload: payload}
}
