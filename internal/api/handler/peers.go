package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// RequireAuth перевіряє Bearer-токен і кладе особу користувача в контекст.
// Browser WebSocket clients cannot set headers, so a "token" query parameter
// is accepted as a fallback.
func (h *Handler) RequireAuth(c *gin.Context) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.msg(c, "error.token_missing")})
		return
	}

	userID, username, err := h.Auth.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.msg(c, "error.token_invalid")})
		return
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxUsername, username)
	c.Next()
}

// ListPeers повертає всіх інших користувачів з online/offline статусом.
// Loading the list is itself an activity-bearing event for the caller.
func (h *Handler) ListPeers(c *gin.Context) {
	userID := c.GetUint(ctxUserID)
	now := time.Now()

	if err := h.Presence.Touch(userID, now); err != nil {
		log.Printf("WARNING: failed to touch presence for user %d: %v", userID, err)
	}

	peers, err := h.Presence.ListWithStatus(userID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "error.peers_failed")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"peers": peers})
}
