package config

import "time"

const (
	// Presence
	// PresenceWindow smooths over brief disconnects without keeping idle
	// users marked online.
	PresenceWindow   = 120 * time.Second
	PresenceCacheTTL = 2 * PresenceWindow

	// History
	DefaultHistoryLimit = 200

	// WebSocket
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096
	SendBuffer     = 256

	// Auth
	TokenTTL   = 72 * time.Hour
	BcryptCost = 12
)
