package models

// User represents a registered account in the system.
// The numeric ID is assigned by the database on creation and is stable for
// the lifetime of the account; Username is unique and immutable.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Username is the public display name shown in the peer list and on messages.
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// PasswordHash is the bcrypt hash of the account secret. Never serialized.
	PasswordHash string `gorm:"not null" json:"-"`
}
