package presence

import (
	"log"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"
	"pairchat/backend/internal/storage"
)

// Tracker derives online/offline status from last-activity heartbeats. It
// owns the ActivityRecord table: every activity-bearing event (login, send,
// peer listing) goes through Touch.
type Tracker struct {
	Store  storage.Storage
	Window time.Duration
}

// NewTracker створює Tracker зі стандартним вікном присутності.
func NewTracker(s storage.Storage) *Tracker {
	return &Tracker{
		Store:  s,
		Window: config.PresenceWindow,
	}
}

// Touch записує heartbeat користувача (last-writer-wins, ідемпотентно).
func (t *Tracker) Touch(userID uint, now time.Time) error {
	return t.Store.TouchActivity(userID, now)
}

// IsOnline reports whether the user was active within window of now. The
// Redis hint is consulted first; the durable record is the fallback. A
// missing or unreadable timestamp means offline, never an error.
func (t *Tracker) IsOnline(userID uint, now time.Time, window time.Duration) bool {
	if raw, err := t.Store.CachedLastSeen(userID); err == nil && raw != "" {
		if ts, perr := ParseInstant(raw); perr == nil {
			return now.Sub(ts) < window
		}
	} else if err != nil {
		log.Printf("WARNING: presence cache lookup failed for user %d: %v", userID, err)
	}

	record, err := t.Store.GetActivity(userID)
	if err != nil || record == nil {
		return false
	}
	ts, err := ParseInstant(record.LastSeen)
	if err != nil {
		return false
	}
	return now.Sub(ts) < window
}

// ListWithStatus повертає всіх користувачів, крім exclude, з їхнім статусом.
// Storage failures propagate; a row with a malformed timestamp degrades to
// offline so one bad record cannot break the whole listing.
func (t *Tracker) ListWithStatus(exclude uint, now time.Time) ([]models.PeerStatus, error) {
	users, err := t.Store.ListUsersExcept(exclude)
	if err != nil {
		return nil, err
	}

	records, err := t.Store.ListActivity()
	if err != nil {
		return nil, err
	}
	lastSeen := make(map[uint]string, len(records))
	for _, r := range records {
		lastSeen[r.UserID] = r.LastSeen
	}

	peers := make([]models.PeerStatus, 0, len(users))
	for _, u := range users {
		online := false
		if raw, ok := lastSeen[u.ID]; ok {
			if ts, perr := ParseInstant(raw); perr == nil {
				online = now.Sub(ts) < t.Window
			}
		}
		peers = append(peers, models.PeerStatus{
			ID:       u.ID,
			Username: u.Username,
			Online:   online,
		})
	}
	return peers, nil
}
