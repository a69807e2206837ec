package session

import (
	"context"
	"sync"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

type state struct {
	mu     sync.Mutex
	loaded bool
	cart   *cart.Store
	notes  *comments.Store
}

// Manager hands out per-session cart and comment stores, serializing
// access per session id. The first touch of a session rehydrates it
// from the bridge; every mutation mirrors the new state back. The
// mirror is best effort: a bridge failure is logged and the in-memory
// state stays authoritative for the life of the process.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*state
	bridge   Bridge
	logg     *logger.Logger
}

func NewManager(bridge Bridge, logg *logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*state),
		bridge:   bridge,
		logg:     logg,
	}
}

func (m *Manager) get(sessionID string) *state {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &state{cart: cart.NewStore(), notes: comments.NewStore()}
		m.sessions[sessionID] = st
	}
	return st
}

func (m *Manager) hydrate(ctx context.Context, sessionID string, st *state) {
	if st.loaded {
		return
	}
	st.loaded = true
	persisted, found, err := m.bridge.Load(ctx, sessionID)
	if err != nil {
		m.logg.Warn(m.logg.WithSessionID(ctx, sessionID), "failed to rehydrate session, starting empty")
		return
	}
	if !found {
		return
	}
	st.cart = cart.Restore(persisted.Cart)
	st.notes = comments.Restore(persisted.ProductNotes, persisted.OrderNote)
}

func (m *Manager) mirror(ctx context.Context, sessionID string, st *state) {
	snapshot := State{
		Cart:         st.cart.Snapshot(),
		ProductNotes: st.notes.Snapshot(),
		OrderNote:    st.notes.OrderNote(),
	}
	var err error
	if snapshot.IsEmpty() {
		err = m.bridge.Clear(ctx, sessionID)
	} else {
		err = m.bridge.Save(ctx, sessionID, snapshot)
	}
	if err != nil {
		m.logg.Warn(m.logg.WithSessionID(ctx, sessionID), "failed to persist session state")
	}
}

// With runs fn holding the session's lock and mirrors the state to the
// bridge afterwards, unless fn returns an error.
func (m *Manager) With(ctx context.Context, sessionID string, fn func(*cart.Store, *comments.Store) error) error {
	st := m.get(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	m.hydrate(ctx, sessionID, st)
	if err := fn(st.cart, st.notes); err != nil {
		return err
	}
	m.mirror(ctx, sessionID, st)
	return nil
}

// Read runs fn holding the session's lock without mirroring. fn must
// not mutate the stores.
func (m *Manager) Read(ctx context.Context, sessionID string, fn func(*cart.Store, *comments.Store) error) error {
	st := m.get(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	m.hydrate(ctx, sessionID, st)
	return fn(st.cart, st.notes)
}
