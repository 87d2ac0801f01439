package chathub

import "pairchat/backend/internal/models"

// Client is the interface for any type of live connection. It abstracts the
// underlying transport, allowing the hub to manage different client types
// uniformly (WebSocket today, anything delivering ChatMessage tomorrow).
type Client interface {
	// GetConnID returns the unique identifier of this connection. One user
	// may hold several connections at once (two browser tabs), so connection
	// identity is separate from user identity.
	GetConnID() string
	// GetUserID returns the account ID of the authenticated principal behind
	// the connection.
	GetUserID() uint
	// GetUsername returns the display name of the principal.
	GetUsername() string

	// GetSendChannel returns the channel to which the hub and dispatcher send
	// messages intended for this specific client. It is a send-only channel.
	GetSendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps, which handle incoming and
	// outgoing traffic.
	Run()
	// Close gracefully shuts down the client's outgoing channel.
	Close()
}
