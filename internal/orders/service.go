package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/metrics"
)

// Result is the outcome of a preview or dispatch. Dispatched is false
// when the cart was empty and nothing happened.
type Result struct {
	Dispatched bool
	Message    string
	Link       string
	Total      decimal.Decimal
	Truncated  bool
	ItemCount  int
}

type sessionManager interface {
	With(ctx context.Context, sessionID string, fn func(*cart.Store, *comments.Store) error) error
	Read(ctx context.Context, sessionID string, fn func(*cart.Store, *comments.Store) error) error
}

// Service composes order messages out of session state. Dispatching is
// fire and forget: the service hands back the WhatsApp link and clears
// the session, it never talks to WhatsApp itself.
type Service struct {
	sessions sessionManager
	composer *Composer
	links    *LinkBuilder
	metrics  *metrics.OrderMetrics
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(sessions sessionManager, composer *Composer, links *LinkBuilder, m *metrics.OrderMetrics, logg *logger.Logger) *Service {
	return &Service{
		sessions: sessions,
		composer: composer,
		links:    links,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}
}

// Preview composes the message for the session without touching its
// state, so the client can show the buyer what will be sent.
func (s *Service) Preview(ctx context.Context, sessionID string) (Result, error) {
	var result Result
	err := s.sessions.Read(ctx, sessionID, func(c *cart.Store, n *comments.Store) error {
		if c.IsEmpty() {
			return nil
		}
		result = s.compose(c, n)
		return nil
	})
	return result, err
}

// Dispatch composes the message, builds the WhatsApp link and clears
// the session's cart and notes. An empty cart dispatches nothing and
// reports Dispatched false.
func (s *Service) Dispatch(ctx context.Context, sessionID string) (Result, error) {
	var result Result
	err := s.sessions.With(ctx, sessionID, func(c *cart.Store, n *comments.Store) error {
		if c.IsEmpty() {
			return nil
		}
		result = s.compose(c, n)
		result.Dispatched = true
		c.Clear()
		n.Clear()
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if result.Dispatched {
		s.metrics.IncDispatched(result.Truncated)
		lctx := s.logg.WithFields(ctx, map[string]any{
			"session_id": sessionID,
			"total":      result.Total.String(),
			"items":      result.ItemCount,
			"truncated":  result.Truncated,
		})
		s.logg.Info(lctx, "order dispatched")
	}
	return result, nil
}

func (s *Service) compose(c *cart.Store, n *comments.Store) Result {
	msg := s.composer.Compose(c.Lines(), n, s.now())
	return Result{
		Message:   msg.Text,
		Link:      s.links.Link(msg.Text),
		Total:     msg.Total,
		Truncated: msg.Truncated,
		ItemCount: c.CountItems(),
	}
}
