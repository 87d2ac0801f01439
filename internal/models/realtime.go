package models

import "time"

// ChatMessage is the wire payload delivered to connected clients. SentAt
// carries the store-assigned timestamp so every recipient sees the same
// ordering the history query will return.
type ChatMessage struct {
	ID     uint      `json:"id"`
	Room   string    `json:"room"`
	Sender string    `json:"sender"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// InboundEvent is what a client sends over the socket: a join/leave of a
// scope or a message send. CounterpartID selects a pairwise room; nil means
// the global stream.
type InboundEvent struct {
	Type          string `json:"type"` // "join", "send", "leave"
	CounterpartID *uint  `json:"counterpart_id,omitempty"`
	Body          string `json:"body,omitempty"`
}

// PeerStatus is one row of the peer listing.
type PeerStatus struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}
