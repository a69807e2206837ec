package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ferabensrl/mare-pedidos-backend/api/responses"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

// CatalogProducts lists the current snapshot, optionally narrowed by
// ?categoria= (slug) and ?q= (free text over name, code, description).
func CatalogProducts(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filter := catalog.Filter{
			Category: strings.TrimSpace(r.URL.Query().Get("categoria")),
			Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		}
		products := svc.Products(filter)
		responses.WriteSuccess(w, map[string]any{
			"productos": products,
			"total":     len(products),
		})
	}
}

// CatalogProduct fetches a single product by its code.
func CatalogProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		code := chi.URLParam(r, "code")
		product, ok := svc.Get(code)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CatalogCategories lists the unique categories in feed order.
func CatalogCategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"categorias": svc.Categories()})
	}
}
