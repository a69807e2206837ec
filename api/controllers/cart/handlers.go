package cart

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/ferabensrl/mare-pedidos-backend/api/middleware"
	"github.com/ferabensrl/mare-pedidos-backend/api/responses"
	"github.com/ferabensrl/mare-pedidos-backend/api/validators"
	cartstore "github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
	"github.com/ferabensrl/mare-pedidos-backend/internal/session"
	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

type productCatalog interface {
	Get(code string) (catalog.Product, bool)
}

// CartFetch returns the session's cart with totals.
func CartFetch(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var view CartView
		err := sessions.Read(r.Context(), middleware.SessionIDFromContext(r.Context()), func(c *cartstore.Store, _ *comments.Store) error {
			view = newCartView(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAddItem adds a product variant to the cart. The product must
// exist in the current catalog snapshot; the line keeps the product as
// seen now, so later feed refreshes do not reprice it.
func CartAddItem(sessions *session.Manager, cat productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.Get(payload.Code)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		variant, err := resolveVariant(product, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty := 1
		if payload.Quantity != nil {
			qty = *payload.Quantity
		}

		var view CartView
		err = sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(c *cartstore.Store, _ *comments.Store) error {
			c.Add(product, variant, qty)
			view = newCartView(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func resolveVariant(product catalog.Product, payload AddItemRequest) (cartstore.Variant, error) {
	if !product.HasColors {
		return cartstore.NoColor(), nil
	}
	if payload.Assorted {
		return cartstore.Assorted(), nil
	}
	if payload.Color == "" {
		return cartstore.Variant{}, pkgerrors.New(pkgerrors.CodeValidation, "color or surtido is required for this product")
	}
	if !slices.Contains(product.Colors, payload.Color) {
		return cartstore.Variant{}, pkgerrors.New(pkgerrors.CodeValidation, "color not offered for this product").
			WithDetails(map[string]any{"colores": product.Colors})
	}
	return cartstore.NamedColor(payload.Color), nil
}

// CartSetQuantity replaces a line's quantity using raw-input coercion.
// Values that coerce to zero or below remove the line; an unknown key
// is a no-op, matching the original client's quantity field.
func CartSetQuantity(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		key := chi.URLParam(r, "key")
		var view CartView
		err := sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(c *cartstore.Store, _ *comments.Store) error {
			c.SetQuantity(key, payload.Quantity)
			view = newCartView(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAdjustQuantity shifts a line's quantity by a delta. Unlike the
// raw-coercion path, targeting a missing line is an error.
func CartAdjustQuantity(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload AdjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		key := chi.URLParam(r, "key")
		var view CartView
		err := sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(c *cartstore.Store, _ *comments.Store) error {
			if !c.AdjustQuantity(key, payload.Delta) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
			}
			view = newCartView(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem deletes a line. Removing an absent line succeeds.
func CartRemoveItem(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		var view CartView
		err := sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(c *cartstore.Store, _ *comments.Store) error {
			c.Remove(key)
			view = newCartView(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartSetComment stores the note for a product code, last write wins.
func CartSetComment(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CommentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code := chi.URLParam(r, "code")
		err := sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(_ *cartstore.Store, n *comments.Store) error {
			n.SetProduct(code, payload.Comment)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"codigo": code, "comentario": payload.Comment})
	}
}

// CartSetNote stores the order-level note.
func CartSetNote(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CommentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := sessions.With(r.Context(), middleware.SessionIDFromContext(r.Context()), func(_ *cartstore.Store, n *comments.Store) error {
			n.SetOrderNote(payload.Comment)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"comentario": payload.Comment})
	}
}
