package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ferabensrl/mare-pedidos-backend/api/controllers"
	cartcontrollers "github.com/ferabensrl/mare-pedidos-backend/api/controllers/cart"
	ordercontrollers "github.com/ferabensrl/mare-pedidos-backend/api/controllers/orders"
	"github.com/ferabensrl/mare-pedidos-backend/api/middleware"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/internal/orders"
	"github.com/ferabensrl/mare-pedidos-backend/internal/session"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/config"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/metrics"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisP redis.Pinger,
	catalogSvc *catalog.Service,
	sessions *session.Manager,
	orderSvc *orders.Service,
	apiMetrics *metrics.APIMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(apiMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP, catalogSvc))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(catalogSvc, logg))
			r.Get("/products/{code}", controllers.CatalogProduct(catalogSvc, logg))
			r.Get("/categories", controllers.CatalogCategories(catalogSvc, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(sessions, logg))
				r.Post("/items", cartcontrollers.CartAddItem(sessions, catalogSvc, logg))
				r.Put("/items/{key}", cartcontrollers.CartSetQuantity(sessions, logg))
				r.Patch("/items/{key}", cartcontrollers.CartAdjustQuantity(sessions, logg))
				r.Delete("/items/{key}", cartcontrollers.CartRemoveItem(sessions, logg))
				r.Put("/comments/{code}", cartcontrollers.CartSetComment(sessions, logg))
				r.Put("/note", cartcontrollers.CartSetNote(sessions, logg))
			})

			r.Route("/order", func(r chi.Router) {
				r.Get("/preview", ordercontrollers.OrderPreview(orderSvc, logg))
				r.Post("/dispatch", ordercontrollers.OrderDispatch(orderSvc, logg))
			})
		})
	})

	return r
}
