package router

import (
	"net/http"

	"redmango/internal/handler"
	"redmango/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	menuItemHandler *handler.MenuItemHandler,
	paymentHandler *handler.PaymentHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Menu item handler function
	menuItemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Collection routes
		if r.URL.Path == "/api/menuitems" || r.URL.Path == "/api/menuitems/" {
			switch r.Method {
			case http.MethodGet:
				menuItemHandler.List(w, r)
			case http.MethodPost:
				menuItemHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Item routes: /api/menuitems/{id}
		switch r.Method {
		case http.MethodGet:
			menuItemHandler.GetByID(w, r)
		case http.MethodPut:
			menuItemHandler.Update(w, r)
		case http.MethodDelete:
			menuItemHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register menu item routes (both with and without trailing slash)
	mux.HandleFunc("/api/menuitems", menuItemRouteHandler)
	mux.HandleFunc("/api/menuitems/", menuItemRouteHandler)

	// Checkout route
	mux.HandleFunc("/api/payment", paymentHandler.Create)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
