// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"onlineshop/internal/adapters/in/http/handlers"
	"onlineshop/internal/adapters/in/http/middleware"
	usecase "onlineshop/internal/application/usecase"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	CartUC    *usecase.CartStore
	OrderUC   *usecase.OrderService
	CatalogUC *usecase.Catalog
	ProfileUC *usecase.ProfileService

	// FirebaseAuth guards the authenticated routes. When nil (local runs
	// without Firebase credentials) those routes answer 503.
	FirebaseAuth *middleware.FirebaseAuthClient
}

// NewRouter sets up HTTP routing for all storefront endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}

	// Catalog is public, everything else requires a verified token.
	if deps.CatalogUC != nil {
		mux.Handle("/catalog/", handlers.NewCatalogHandler(deps.CatalogUC))
	}

	if deps.CartUC != nil {
		h := auth.Handler(handlers.NewCartHandler(deps.CartUC))
		mux.Handle("/cart", h)
		mux.Handle("/cart/", h)
	}

	if deps.OrderUC != nil {
		h := auth.Handler(handlers.NewOrderHandler(deps.OrderUC))
		mux.Handle("/orders", h)
		mux.Handle("/orders/", h)
	}

	if deps.ProfileUC != nil {
		h := auth.Handler(handlers.NewProfileHandler(deps.ProfileUC))
		mux.Handle("/me", h)
		mux.Handle("/me/", h)
	}

	return mux
}
