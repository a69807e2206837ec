package session

import (
	"context"
	"sync"
)

// MemoryBridge is an in-process Bridge for tests and for running
// without Redis. State survives only as long as the process.
type MemoryBridge struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{states: make(map[string]State)}
}

func (b *MemoryBridge) Save(_ context.Context, sessionID string, state State) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states[sessionID] = state
	return nil
}

func (b *MemoryBridge) Load(_ context.Context, sessionID string) (State, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.states[sessionID]
	if !ok {
		return State{}, false, nil
	}
	return state, true, nil
}

func (b *MemoryBridge) Clear(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.states, sessionID)
	return nil
}
