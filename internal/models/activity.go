package models

// ActivityRecord holds the last-activity heartbeat for one user. Exactly one
// record exists per user; it is overwritten (never appended) on every
// activity-bearing event.
//
// LastSeen is stored as text on purpose: the table has accumulated rows in
// several encodings over time (RFC 3339, and the older space-separated form
// with and without sub-second precision). The presence tracker parses it with
// a fallback chain and treats an unreadable value as offline.
type ActivityRecord struct {
	UserID   uint   `gorm:"primaryKey" json:"user_id"`
	LastSeen string `gorm:"type:text" json:"last_seen"`
}
