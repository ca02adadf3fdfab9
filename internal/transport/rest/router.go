package rest

import (
	"containerquote/internal/service"
	"containerquote/internal/transport/rest/handler"
	"containerquote/internal/transport/rest/middleware"
	"containerquote/internal/transport/ws"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	CatalogService *service.CatalogService
	QuoteService   *service.QuoteService
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	quoteHandler := handler.NewQuoteHandler(c.QuoteService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quote/{productId}/session", quoteHandler.StartSession).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}/preview", wsHandler.PreviewWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/configurations", catalogHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/configurations", catalogHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/configurations/{configId}", catalogHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/configurations/{configId}", catalogHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/configurations/{configId}", catalogHandler.Delete).Methods("DELETE", "OPTIONS")

	// Session routes (require session auth)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/quote/session/snapshot", quoteHandler.Snapshot).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/quote/session/answer", quoteHandler.Answer).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/quote/session/view-angle", quoteHandler.ViewAngle).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/quote/session/submit", quoteHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
