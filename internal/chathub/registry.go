package chathub

import "sync"

// Registry tracks which live connections belong to which scopes. Membership
// is ephemeral: it exists only for the lifetime of a connection and is never
// persisted. All mutation and lookup goes through one RWMutex, which makes
// membership changes linearizable per scope.
type Registry struct {
	mu sync.RWMutex
	// members: scope token -> set of clients in that scope.
	members map[string]map[Client]struct{}
	// scopes: client -> set of scope tokens it joined. Kept in lockstep with
	// members so Drop does not have to scan every scope.
	scopes map[Client]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		members: make(map[string]map[Client]struct{}),
		scopes:  make(map[Client]map[string]struct{}),
	}
}

// Join додає з'єднання до кімнати. Idempotent: a duplicate join (retried
// network event) is a no-op.
func (r *Registry) Join(c Client, scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[scope] == nil {
		r.members[scope] = make(map[Client]struct{})
	}
	r.members[scope][c] = struct{}{}

	if r.scopes[c] == nil {
		r.scopes[c] = make(map[string]struct{})
	}
	r.scopes[c][scope] = struct{}{}
}

// Leave видаляє з'єднання з кімнати. No-op if it was not a member.
func (r *Registry) Leave(c Client, scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(c, scope)
}

// Drop видаляє з'єднання з усіх кімнат (виклик при disconnect).
// Safe to call more than once.
func (r *Registry) Drop(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for scope := range r.scopes[c] {
		r.removeLocked(c, scope)
	}
}

func (r *Registry) removeLocked(c Client, scope string) {
	if set, ok := r.members[scope]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.members, scope)
		}
	}
	if set, ok := r.scopes[c]; ok {
		delete(set, scope)
		if len(set) == 0 {
			delete(r.scopes, c)
		}
	}
}

// MembersOf повертає знімок учасників кімнати. An empty slice is valid: a
// message still persists even with zero live recipients.
func (r *Registry) MembersOf(scope string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]Client, 0, len(r.members[scope]))
	for c := range r.members[scope] {
		clients = append(clients, c)
	}
	return clients
}

// IsMember reports whether the connection currently belongs to the scope.
func (r *Registry) IsMember(c Client, scope string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.scopes[c][scope]
	return ok
}
