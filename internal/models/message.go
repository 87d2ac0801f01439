package models

import "gorm.io/gorm"

// Message represents a persisted chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt;
// ID and CreatedAt are assigned by the store and are the authoritative
// ordering for a room, regardless of sender clocks.
type Message struct {
	gorm.Model

	// Room is the scope the message belongs to: either the global token or a
	// canonical pairwise room token.
	Room string `gorm:"type:text;not null;index:idx_room_msg"`
	// SenderID is the account ID of the user who sent the message.
	SenderID uint `gorm:"not null;index:idx_room_msg"`
	// SenderName is denormalized so history replay does not need a join.
	SenderName string `gorm:"type:text;not null"`
	// Body is the message text, already trimmed and non-empty.
	Body string `gorm:"type:text;not null"`
}
