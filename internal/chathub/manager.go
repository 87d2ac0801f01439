package chathub

import (
	"log"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"
	"pairchat/backend/internal/presence"
	"pairchat/backend/internal/room"
	"pairchat/backend/internal/storage"
)

// Event is one inbound client action (join, send, leave) together with the
// connection it arrived on. The connection is always explicit; no handler
// reads identity from ambient state.
type Event struct {
	Client  Client
	Inbound models.InboundEvent
}

// ManagerService is the hub: it owns the set of live connections and
// serializes registration, disconnects, and inbound events through one run
// loop, the connection registry and dispatcher doing the room-level work.
type ManagerService struct {
	Clients map[string]Client // keyed by connection ID

	// Channels
	IncomingCh   chan Event
	RegisterCh   chan Client
	UnregisterCh chan Client

	Registry   *Registry
	Dispatcher *Dispatcher
	Presence   *presence.Tracker
	Storage    storage.Storage
}

// NewManagerService (ініціалізація хаба з усіма залежностями)
func NewManagerService(s storage.Storage, registry *Registry, dispatcher *Dispatcher, tracker *presence.Tracker) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		IncomingCh:   make(chan Event),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Registry:     registry,
		Dispatcher:   dispatcher,
		Presence:     tracker,
		Storage:      s,
	}
}

// Run запускає головний цикл хаба. Призначений для окремої goroutine.
func (m *ManagerService) Run() {
	log.Println("Chat hub started.")

	for {
		select {
		case client := <-m.RegisterCh:
			m.handleRegister(client)

		case client := <-m.UnregisterCh:
			m.handleUnregister(client)

		case ev := <-m.IncomingCh:
			m.handleEvent(ev)
		}
	}
}

// handleRegister приєднує нове з'єднання до глобального потоку та
// відтворює для нього останню історію.
func (m *ManagerService) handleRegister(client Client) {
	m.Clients[client.GetConnID()] = client
	m.Registry.Join(client, room.Global)
	m.replayTo(client, room.Global)

	if err := m.Presence.Touch(client.GetUserID(), time.Now()); err != nil {
		log.Printf("WARNING: failed to touch presence for user %d: %v", client.GetUserID(), err)
	}
	log.Printf("Connection %s registered for user %s. Total connections: %d",
		client.GetConnID(), client.GetUsername(), len(m.Clients))
}

// handleUnregister прибирає з'єднання з усіх кімнат. Duplicate unregister
// events are absorbed by the map check; Registry.Drop is idempotent anyway.
func (m *ManagerService) handleUnregister(client Client) {
	if _, ok := m.Clients[client.GetConnID()]; !ok {
		return
	}
	delete(m.Clients, client.GetConnID())
	m.Registry.Drop(client)
	client.Close()
	log.Printf("Connection %s unregistered. Total connections: %d", client.GetConnID(), len(m.Clients))
}

func (m *ManagerService) handleEvent(ev Event) {
	scope, err := m.resolveScope(ev)
	if err != nil {
		log.Printf("WARNING: rejected %s event from user %d: %v", ev.Inbound.Type, ev.Client.GetUserID(), err)
		return
	}

	switch ev.Inbound.Type {
	case "join":
		m.Registry.Join(ev.Client, scope)
		m.replayTo(ev.Client, scope)
		m.touch(ev.Client)

	case "leave":
		m.Registry.Leave(ev.Client, scope)

	case "send":
		delivered, err := m.Dispatcher.Send(ev.Client.GetUserID(), ev.Client.GetUsername(), scope, ev.Inbound.Body)
		if err != nil {
			log.Printf("ERROR: send to %s from user %d failed: %v", scope, ev.Client.GetUserID(), err)
			return
		}
		log.Printf("Message in %s delivered to %d connections", scope, delivered)
		m.touch(ev.Client)

	default:
		log.Printf("WARNING: unknown event type %q from connection %s", ev.Inbound.Type, ev.Client.GetConnID())
	}
}

// resolveScope derives the room token for an event: the global stream when no
// counterpart is named, the canonical pairwise token otherwise.
func (m *ManagerService) resolveScope(ev Event) (string, error) {
	if ev.Inbound.CounterpartID == nil {
		return room.Global, nil
	}
	return room.Resolve(ev.Client.GetUserID(), *ev.Inbound.CounterpartID)
}

// replayTo надсилає історію кімнати лише цьому з'єднанню.
func (m *ManagerService) replayTo(client Client, scope string) {
	history, err := m.Dispatcher.Replay(scope, config.DefaultHistoryLimit)
	if err != nil {
		log.Printf("ERROR: replay of %s for connection %s failed: %v", scope, client.GetConnID(), err)
		return
	}

	for _, msg := range history {
		select {
		case client.GetSendChannel() <- msg:
		default:
			log.Printf("WARNING: send buffer full during replay for connection %s", client.GetConnID())
			return
		}
	}
}

func (m *ManagerService) touch(client Client) {
	if err := m.Presence.Touch(client.GetUserID(), time.Now()); err != nil {
		log.Printf("WARNING: failed to touch presence for user %d: %v", client.GetUserID(), err)
	}
}
