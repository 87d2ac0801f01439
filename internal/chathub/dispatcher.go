package chathub

import (
	"log"
	"strings"

	"pairchat/backend/internal/models"
	"pairchat/backend/internal/storage"
)

// Dispatcher persists messages and fans them out to the connections
// registered for a scope. Persistence always comes first: a message that
// cannot be durably stored is never delivered to anyone.
type Dispatcher struct {
	Store    storage.Storage
	Registry *Registry
}

func NewDispatcher(store storage.Storage, registry *Registry) *Dispatcher {
	return &Dispatcher{
		Store:    store,
		Registry: registry,
	}
}

// Send зберігає повідомлення та розсилає його учасникам кімнати.
// A whitespace-only body is a no-op, not an error (matches a UI "nothing to
// send"). Membership is not required to send: the dispatcher delivers to
// whoever is registered for the scope, sender joined or not. Returns the
// number of connections the message was handed to; zero is valid, the
// message is still stored for later replay.
func (d *Dispatcher) Send(senderID uint, senderName, scope, body string) (int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, nil
	}

	msg := &models.Message{
		Room:       scope,
		SenderID:   senderID,
		SenderName: senderName,
		Body:       body,
	}
	if err := d.Store.AppendMessage(msg); err != nil {
		// Нічого не доставляємо: без durable запису немає broadcast.
		return 0, err
	}

	payload := models.ChatMessage{
		ID:     msg.ID,
		Room:   msg.Room,
		Sender: msg.SenderName,
		Body:   msg.Body,
		SentAt: msg.CreatedAt,
	}

	delivered := 0
	for _, member := range d.Registry.MembersOf(scope) {
		select {
		case member.GetSendChannel() <- payload:
			delivered++
		default:
			// Повільний клієнт: його черга переповнена, пропускаємо.
			log.Printf("WARNING: send buffer full for connection %s, skipping delivery", member.GetConnID())
		}
	}
	return delivered, nil
}

// Replay повертає історію кімнати для одного з'єднання, що приєдналось.
// The result is for transmission to exactly the requesting connection and is
// never broadcast.
func (d *Dispatcher) Replay(scope string, limit int) ([]models.ChatMessage, error) {
	history, err := d.Store.GetHistory(scope, limit)
	if err != nil {
		return nil, err
	}

	payloads := make([]models.ChatMessage, 0, len(history))
	for _, m := range history {
		payloads = append(payloads, models.ChatMessage{
			ID:     m.ID,
			Room:   m.Room,
			Sender: m.SenderName,
			Body:   m.Body,
			SentAt: m.CreatedAt,
		})
	}
	return payloads, nil
}
