package chathub_test

import (
	"errors"
	"sync"
	"time"

	"pairchat/backend/internal/models"

	"gorm.io/gorm"
)

// memStore is an in-memory storage.Storage used for tests that care about
// ordering and replay rather than call expectations. Appends are serialized
// by a mutex and IDs are assigned in insertion order, mirroring the database
// contract.
type memStore struct {
	mu       sync.Mutex
	messages []models.Message
	activity map[uint]string
	users    []models.User
	nextID   uint

	failAppend bool
}

func newMemStore() *memStore {
	return &memStore{
		activity: make(map[uint]string),
		nextID:   1,
	}
}

func (s *memStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, *user)
	return nil
}

func (s *memStore) GetUserByName(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListUsersExcept(id uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memStore) AppendMessage(msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend {
		return errors.New("append failed")
	}
	msg.Model = gorm.Model{ID: s.nextID, CreatedAt: time.Now()}
	s.nextID++
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *memStore) GetHistory(scope string, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.Room == scope {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *memStore) TouchActivity(userID uint, seenAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity[userID] = seenAt.Format(time.RFC3339Nano)
	return nil
}

func (s *memStore) GetActivity(userID uint) (*models.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.activity[userID]
	if !ok {
		return nil, nil
	}
	return &models.ActivityRecord{UserID: userID, LastSeen: raw}, nil
}

func (s *memStore) ListActivity() ([]models.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ActivityRecord
	for id, raw := range s.activity {
		out = append(out, models.ActivityRecord{UserID: id, LastSeen: raw})
	}
	return out, nil
}

func (s *memStore) CachedLastSeen(userID uint) (string, error) {
	return "", nil
}

// messageCount reports how many rows are stored, for durability assertions.
func (s *memStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
