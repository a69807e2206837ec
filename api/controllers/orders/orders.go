package orders

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ferabensrl/mare-pedidos-backend/api/middleware"
	"github.com/ferabensrl/mare-pedidos-backend/api/responses"
	orderssvc "github.com/ferabensrl/mare-pedidos-backend/internal/orders"
	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

type orderService interface {
	Preview(ctx context.Context, sessionID string) (orderssvc.Result, error)
	Dispatch(ctx context.Context, sessionID string) (orderssvc.Result, error)
}

type orderView struct {
	Dispatched bool            `json:"enviado"`
	Message    string          `json:"mensaje"`
	Link       string          `json:"url,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Truncated  bool            `json:"truncado"`
	ItemCount  int             `json:"cantidadItems"`
}

func newOrderView(result orderssvc.Result) orderView {
	return orderView{
		Dispatched: result.Dispatched,
		Message:    result.Message,
		Link:       result.Link,
		Total:      result.Total,
		Truncated:  result.Truncated,
		ItemCount:  result.ItemCount,
	}
}

// OrderPreview shows the message that a dispatch would send, leaving
// the session untouched.
func OrderPreview(svc orderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		result, err := svc.Preview(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(result))
	}
}

// OrderDispatch composes the order, returns the WhatsApp link and
// clears the session's cart and notes. An empty cart dispatches
// nothing and reports enviado false.
func OrderDispatch(svc orderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		result, err := svc.Dispatch(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(result))
	}
}
