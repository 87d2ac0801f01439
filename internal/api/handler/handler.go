package handler

import (
	"pairchat/backend/internal/auth"
	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/localization"
	"pairchat/backend/internal/presence"

	"github.com/gin-gonic/gin"
)

// Handler тримає посилання на хаб та сервіси, потрібні HTTP-шару.
type Handler struct {
	Hub      *chathub.ManagerService
	Auth     *auth.Service
	Presence *presence.Tracker
	Loc      *localization.Localizer
}

func NewHandler(hub *chathub.ManagerService, authSvc *auth.Service, tracker *presence.Tracker, loc *localization.Localizer) *Handler {
	return &Handler{
		Hub:      hub,
		Auth:     authSvc,
		Presence: tracker,
		Loc:      loc,
	}
}

// msg resolves a user-facing string in the language the request asked for.
func (h *Handler) msg(c *gin.Context, key string) string {
	lang := h.Loc.PickLanguage(c.GetHeader("Accept-Language"))
	return h.Loc.GetString(lang, key)
}
