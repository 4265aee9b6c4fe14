// internal/session/registry.go
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live conversation controllers by chat id, creating them on
// first use. Controllers live for the lifetime of the process; there is no
// transcript persistence.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	deps        Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		controllers: map[string]*Controller{},
		deps:        deps,
	}
}

// Get returns the controller for the given chat id, creating one if needed.
// An empty id starts a fresh conversation under a generated id.
func (r *Registry) Get(chatID string) (*Controller, string) {
	if chatID == "" {
		chatID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[chatID]; ok {
		return c, chatID
	}
	c := NewController(chatID, r.deps)
	r.controllers[chatID] = c
	return c, chatID
}

// Lookup returns the controller for the given chat id without creating one.
func (r *Registry) Lookup(chatID string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[chatID]
	return c, ok
}

// Len reports the number of live conversations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
