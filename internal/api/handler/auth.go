package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"pairchat/backend/internal/auth"
	"pairchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register створює новий акаунт.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg(c, "error.credentials_required")})
		return
	}

	user, err := h.Auth.Register(req.Username, req.Password)
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": h.msg(c, "error.username_taken")})
		return
	case errors.Is(err, auth.ErrEmptyCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg(c, "error.credentials_empty")})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "error.registration_failed")})
		return
	}

	// Свіжа реєстрація теж рахується активністю.
	if err := h.Presence.Touch(user.ID, time.Now()); err != nil {
		log.Printf("WARNING: failed to touch presence for new user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// Login перевіряє пароль і повертає JWT для WebSocket та REST-запитів.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg(c, "error.credentials_required")})
		return
	}

	user, err := h.Auth.Verify(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": h.msg(c, "error.invalid_credentials")})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "error.login_failed")})
		return
	}

	token, err := h.Auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "error.token_failed")})
		return
	}

	if err := h.Presence.Touch(user.ID, time.Now()); err != nil {
		// Логін усе одно успішний; heartbeat надолужиться на наступній дії.
		log.Printf("WARNING: failed to touch presence for user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "id": user.ID, "username": user.Username})
}
