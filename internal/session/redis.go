package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/redis"
)

// Entry names mirror the browser storage keys of the original client,
// so a dump of either store reads the same.
const (
	entryCart         = "carrito"
	entryProductNotes = "comentarios-producto"
	entryOrderNote    = "comentario-final"
)

// RedisBridge stores each session under three namespaced keys with a
// shared TTL that slides forward on every save.
type RedisBridge struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBridge(client *redis.Client, ttl time.Duration) *RedisBridge {
	return &RedisBridge{client: client, ttl: ttl}
}

func (b *RedisBridge) Save(ctx context.Context, sessionID string, state State) error {
	var err error
	err = multierr.Append(err, b.saveEntry(ctx, sessionID, entryCart, state.Cart))
	err = multierr.Append(err, b.saveEntry(ctx, sessionID, entryProductNotes, state.ProductNotes))
	err = multierr.Append(err, b.saveEntry(ctx, sessionID, entryOrderNote, state.OrderNote))
	return err
}

func (b *RedisBridge) saveEntry(ctx context.Context, sessionID, entry string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", entry, err)
	}
	if err := b.client.Set(ctx, b.client.SessionKey(entry, sessionID), raw, b.ttl); err != nil {
		return fmt.Errorf("saving %s: %w", entry, err)
	}
	return nil
}

func (b *RedisBridge) Load(ctx context.Context, sessionID string) (State, bool, error) {
	state := State{}
	found := false

	rawCart, ok, err := b.loadEntry(ctx, sessionID, entryCart)
	if err != nil {
		return State{}, false, err
	}
	if ok {
		found = true
		if err := json.Unmarshal(rawCart, &state.Cart); err != nil {
			return State{}, false, fmt.Errorf("decoding %s: %w", entryCart, err)
		}
	}

	rawNotes, ok, err := b.loadEntry(ctx, sessionID, entryProductNotes)
	if err != nil {
		return State{}, false, err
	}
	if ok {
		found = true
		if err := json.Unmarshal(rawNotes, &state.ProductNotes); err != nil {
			return State{}, false, fmt.Errorf("decoding %s: %w", entryProductNotes, err)
		}
	}

	rawNote, ok, err := b.loadEntry(ctx, sessionID, entryOrderNote)
	if err != nil {
		return State{}, false, err
	}
	if ok {
		found = true
		if err := json.Unmarshal(rawNote, &state.OrderNote); err != nil {
			return State{}, false, fmt.Errorf("decoding %s: %w", entryOrderNote, err)
		}
	}

	if state.Cart == nil {
		state.Cart = map[string]cart.StoredLine{}
	}
	if state.ProductNotes == nil {
		state.ProductNotes = map[string]string{}
	}
	return state, found, nil
}

func (b *RedisBridge) loadEntry(ctx context.Context, sessionID, entry string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, b.client.SessionKey(entry, sessionID))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", entry, err)
	}
	return []byte(raw), true, nil
}

func (b *RedisBridge) Clear(ctx context.Context, sessionID string) error {
	return b.client.Del(ctx,
		b.client.SessionKey(entryCart, sessionID),
		b.client.SessionKey(entryProductNotes, sessionID),
		b.client.SessionKey(entryOrderNote, sessionID),
	)
}
