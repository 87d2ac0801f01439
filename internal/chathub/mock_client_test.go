package chathub_test

import (
	"fmt"

	"pairchat/backend/internal/models"
)

// mockClient is a test double for the chathub.Client interface. The send
// channel is buffered so delivery in tests never blocks.
type mockClient struct {
	connID   string
	userID   uint
	username string
	send     chan models.ChatMessage
	closed   bool
}

func newMockClient(userID uint, username string) *mockClient {
	return &mockClient{
		connID:   fmt.Sprintf("conn-%s-%d", username, userID),
		userID:   userID,
		username: username,
		send:     make(chan models.ChatMessage, 64),
	}
}

func (c *mockClient) GetConnID() string                         { return c.connID }
func (c *mockClient) GetUserID() uint                           { return c.userID }
func (c *mockClient) GetUsername() string                       { return c.username }
func (c *mockClient) GetSendChannel() chan<- models.ChatMessage { return c.send }
func (c *mockClient) Run()                                      {}

func (c *mockClient) Close() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// drain returns every message currently queued for the client.
func (c *mockClient) drain() []models.ChatMessage {
	var messages []models.ChatMessage
	for {
		select {
		case msg := <-c.send:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
