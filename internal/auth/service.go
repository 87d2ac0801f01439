package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"
	"pairchat/backend/internal/storage"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials покриває і невідомого користувача, і невірний пароль,
// щоб відповідь не видавала, яке саме ім'я зареєстроване.
var ErrInvalidCredentials = errors.New("auth: invalid username or password")

var ErrEmptyCredentials = errors.New("auth: username and password must not be empty")

// Service handles account creation, credential verification, and session
// tokens. It is the only place password hashes are produced or compared.
type Service struct {
	Store     storage.Storage
	jwtSecret []byte
}

func NewService(store storage.Storage, jwtSecret []byte) *Service {
	return &Service{
		Store:     store,
		jwtSecret: jwtSecret,
	}
}

// Register створює новий акаунт із bcrypt-хешем пароля.
// A taken username surfaces as storage.ErrAlreadyExists.
func (s *Service) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.Store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Verify перевіряє облікові дані та повертає користувача при збігу.
func (s *Service) Verify(username, password string) (*models.User, error) {
	user, err := s.Store.GetUserByName(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateToken генерує JWT для встановленої сесії.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(config.TokenTTL).Unix(),
		"iss":      "pairchat-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken перевіряє підпис і термін дії та повертає особу власника.
func (s *Service) ValidateToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", ErrInvalidCredentials
	}
	return uint(userID), username, nil
}
