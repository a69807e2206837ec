// Package session scopes cart and comment state to a caller-supplied
// session id and mirrors it through a persistence bridge, so a buyer
// who comes back days later finds their half-built order intact.
package session

import (
	"context"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
)

// State is the serialized form of one session, split into the same
// three entries the original client kept in browser storage.
type State struct {
	Cart         map[string]cart.StoredLine `json:"carrito"`
	ProductNotes map[string]string          `json:"comentariosProducto"`
	OrderNote    string                     `json:"comentarioFinal"`
}

// IsEmpty reports whether the state carries nothing worth persisting.
func (s State) IsEmpty() bool {
	return len(s.Cart) == 0 && len(s.ProductNotes) == 0 && s.OrderNote == ""
}

// Bridge persists session state outside the process.
type Bridge interface {
	Save(ctx context.Context, sessionID string, state State) error
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Clear(ctx context.Context, sessionID string) error
}
