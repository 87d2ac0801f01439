package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrStorage wraps any durable read/write failure. Callers must not assume a
// write happened when they see it.
var ErrStorage = errors.New("storage: durable operation failed")

// ErrAlreadyExists is returned when a unique constraint rejects a new row
// (duplicate username on registration).
var ErrAlreadyExists = errors.New("storage: record already exists")

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByName(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	ListUsersExcept(id uint) ([]models.User, error)

	AppendMessage(msg *models.Message) error
	GetHistory(scope string, limit int) ([]models.Message, error)

	TouchActivity(userID uint, seenAt time.Time) error
	GetActivity(userID uint) (*models.ActivityRecord, error)
	ListActivity() ([]models.ActivityRecord, error)
	CachedLastSeen(userID uint) (string, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser вставляє нового користувача в PostgreSQL.
// A duplicate username surfaces as ErrAlreadyExists; the row is unchanged.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: username %q", ErrAlreadyExists, user.Username)
		}
		log.Printf("ERROR: Failed to create user %s: %v", user.Username, err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// GetUserByName повертає користувача за іменем, або nil, якщо не знайдено.
func (s *Service) GetUserByName(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &user, nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &user, nil
}

// ListUsersExcept повертає всіх користувачів, крім зазначеного ID.
// Used by the peer listing; ordering by ID keeps the list stable across reloads.
func (s *Service) ListUsersExcept(id uint) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("id != ?", id).Order("id asc").Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list users: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return users, nil
}

// AppendMessage зберігає повідомлення в PostgreSQL.
// The store assigns ID and CreatedAt on insert; those fields are filled in on
// msg before return and are the authoritative order for the room. Any failure
// is wrapped in ErrStorage and the dispatcher must not broadcast.
func (s *Service) AppendMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to append message for room %s: %v", msg.Room, err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// GetHistory отримує останні limit повідомлень для кімнати.
// Rows are fetched newest-first and reversed, so the caller receives them
// oldest-first, the way a transcript reads.
func (s *Service) GetHistory(scope string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}

	var history []models.Message
	err := s.DB.Where("room = ?", scope).Order("id desc").Limit(limit).Find(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return history, nil
		}
		log.Printf("ERROR: Failed to get history for room %s: %v", scope, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

// TouchActivity оновлює мітку останньої активності (last-writer-wins).
// The durable record goes to PostgreSQL as RFC 3339 text; Redis additionally
// holds a short-lived online hint so the hot path avoids timestamp parsing.
func (s *Service) TouchActivity(userID uint, seenAt time.Time) error {
	record := models.ActivityRecord{
		UserID:   userID,
		LastSeen: seenAt.Format(time.RFC3339Nano),
	}
	if err := s.DB.Save(&record).Error; err != nil {
		log.Printf("ERROR: Failed to touch activity for user %d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if s.Redis != nil {
		key := presenceKey(userID)
		if err := s.Redis.Set(s.Ctx, key, seenAt.Format(time.RFC3339Nano), config.PresenceCacheTTL).Err(); err != nil {
			// Хінт у Redis необов'язковий; durable запис уже зроблено.
			log.Printf("WARNING: Failed to cache presence for user %d: %v", userID, err)
		}
	}
	return nil
}

// GetActivity повертає запис активності, або nil, якщо його немає.
func (s *Service) GetActivity(userID uint) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	err := s.DB.First(&record, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &record, nil
}

func (s *Service) ListActivity() ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	if err := s.DB.Find(&records).Error; err != nil {
		log.Printf("ERROR: Failed to list activity records: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

// CachedLastSeen читає хінт присутності з Redis (швидка перевірка).
// An empty string means no hint; the caller falls back to the durable record.
func (s *Service) CachedLastSeen(userID uint) (string, error) {
	if s.Redis == nil {
		return "", nil
	}
	raw, err := s.Redis.Get(s.Ctx, presenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("presence:%d", userID)
}
