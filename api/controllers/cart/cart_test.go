package cart

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ferabensrl/mare-pedidos-backend/api/middleware"
	cartstore "github.com/ferabensrl/mare-pedidos-backend/internal/cart"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/internal/comments"
	"github.com/ferabensrl/mare-pedidos-backend/internal/session"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

type stubCatalog map[string]catalog.Product

func (s stubCatalog) Get(code string) (catalog.Product, bool) {
	p, ok := s[code]
	return p, ok
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"A1": {
			Code:      "A1",
			Name:      "Collar Perla",
			Price:     decimal.NewFromInt(390),
			Colors:    []string{"Negro", "Rojo"},
			HasColors: true,
		},
		"B2": {
			Code:  "B2",
			Name:  "Cinto Trenzado",
			Price: decimal.NewFromInt(550),
		},
	}
}

func testRouter(t *testing.T) (chi.Router, *session.Manager) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	sessions := session.NewManager(session.NewMemoryBridge(), logg)

	r := chi.NewRouter()
	r.Use(middleware.Session(logg))
	r.Get("/cart", CartFetch(sessions, logg))
	r.Post("/cart/items", CartAddItem(sessions, testCatalog(), logg))
	r.Put("/cart/items/{key}", CartSetQuantity(sessions, logg))
	r.Patch("/cart/items/{key}", CartAdjustQuantity(sessions, logg))
	r.Delete("/cart/items/{key}", CartRemoveItem(sessions, logg))
	r.Put("/cart/comments/{code}", CartSetComment(sessions, logg))
	r.Put("/cart/note", CartSetNote(sessions, logg))
	return r, sessions
}

func doJSON(t *testing.T, r http.Handler, method, path, sessionID, body string) (*httptest.ResponseRecorder, CartView) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var envelope struct {
		Data CartView `json:"data"`
	}
	if resp.Code == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, envelope.Data
}

func TestCartAddItemWithColor(t *testing.T) {
	r, _ := testRouter(t)

	resp, view := doJSON(t, r, http.MethodPost, "/cart/items", "s1",
		`{"codigo":"A1","color":"Negro","cantidad":2}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line got %d", len(view.Items))
	}
	if view.Items[0].Key != "A1-Negro" || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected line: %+v", view.Items[0])
	}
	if view.Total.String() != "780" {
		t.Fatalf("unexpected total: %s", view.Total)
	}
}

func TestCartAddItemAccumulates(t *testing.T) {
	r, _ := testRouter(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro","cantidad":2}`)
	_, view := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro"}`)

	if len(view.Items) != 1 {
		t.Fatalf("expected a single accumulated line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 got %d", view.Items[0].Quantity)
	}
}

func TestCartAddItemAssorted(t *testing.T) {
	r, _ := testRouter(t)

	resp, view := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","surtido":true}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view.Items[0].Key != "A1-SURTIDO" {
		t.Fatalf("unexpected key: %s", view.Items[0].Key)
	}
}

func TestCartAddItemColorlessProduct(t *testing.T) {
	r, _ := testRouter(t)

	resp, view := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"B2","cantidad":3}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view.Items[0].Key != "B2-ÚNICO" {
		t.Fatalf("unexpected key: %s", view.Items[0].Key)
	}
}

func TestCartAddItemMissingColor(t *testing.T) {
	r, _ := testRouter(t)

	resp, _ := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemUnknownColor(t *testing.T) {
	r, _ := testRouter(t)

	resp, _ := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Verde"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	r, _ := testRouter(t)

	resp, _ := doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"ZZ"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartSetQuantityCoercion(t *testing.T) {
	r, _ := testRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro","cantidad":2}`)

	_, view := doJSON(t, r, http.MethodPut, "/cart/items/A1-Negro", "s1", `{"cantidad":"5"}`)
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5 got %d", view.Items[0].Quantity)
	}

	_, view = doJSON(t, r, http.MethodPut, "/cart/items/A1-Negro", "s1", `{"cantidad":"abc"}`)
	if len(view.Items) != 0 {
		t.Fatalf("expected garbage quantity to remove the line, got %+v", view.Items)
	}
}

func TestCartSetQuantityUnknownKey(t *testing.T) {
	r, _ := testRouter(t)

	resp, view := doJSON(t, r, http.MethodPut, "/cart/items/A1-Negro", "s1", `{"cantidad":3}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(view.Items) != 0 {
		t.Fatalf("unknown key must stay a no-op, got %+v", view.Items)
	}
}

func TestCartAdjustQuantity(t *testing.T) {
	r, _ := testRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro","cantidad":2}`)

	_, view := doJSON(t, r, http.MethodPatch, "/cart/items/A1-Negro", "s1", `{"delta":-1}`)
	if view.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 got %d", view.Items[0].Quantity)
	}

	_, view = doJSON(t, r, http.MethodPatch, "/cart/items/A1-Negro", "s1", `{"delta":-1}`)
	if len(view.Items) != 0 {
		t.Fatalf("expected line removed at zero, got %+v", view.Items)
	}

	resp, _ := doJSON(t, r, http.MethodPatch, "/cart/items/A1-Negro", "s1", `{"delta":1}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on removed line got %d", resp.Code)
	}
}

func TestCartRemoveItem(t *testing.T) {
	r, _ := testRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro"}`)

	resp, view := doJSON(t, r, http.MethodDelete, "/cart/items/A1-Negro", "s1", "")
	if resp.Code != http.StatusOK || len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d %+v", resp.Code, view.Items)
	}

	resp, _ = doJSON(t, r, http.MethodDelete, "/cart/items/A1-Negro", "s1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("removing an absent line must succeed, got %d", resp.Code)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	r, _ := testRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items", "s1", `{"codigo":"A1","color":"Negro"}`)

	_, view := doJSON(t, r, http.MethodGet, "/cart", "s2", "")
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart for other session, got %+v", view.Items)
	}
}

func TestCartMintsSessionWhenHeaderAbsent(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected a minted session id in the response header")
	}
}

func TestCartComments(t *testing.T) {
	r, sessions := testRouter(t)

	resp, _ := doJSON(t, r, http.MethodPut, "/cart/comments/A1", "s1", `{"comentario":"sin cadena"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	resp, _ = doJSON(t, r, http.MethodPut, "/cart/note", "s1", `{"comentario":"nota final"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	err := sessions.Read(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "s1", func(_ *cartstore.Store, n *comments.Store) error {
		if text, ok := n.Product("A1"); !ok || text != "sin cadena" {
			t.Fatalf("unexpected product note: %q %v", text, ok)
		}
		if n.OrderNote() != "nota final" {
			t.Fatalf("unexpected order note: %q", n.OrderNote())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
}
