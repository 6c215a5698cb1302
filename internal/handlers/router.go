package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/cart"
	"github.com/passionatedev1128/everwell-sub001/internal/config"
	"github.com/passionatedev1128/everwell-sub001/internal/database"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/notify"
	"github.com/passionatedev1128/everwell-sub001/internal/services/documents"
	"github.com/passionatedev1128/everwell-sub001/internal/services/orders"
	ws "github.com/passionatedev1128/everwell-sub001/internal/websocket"
)

// Router wraps the mux router with the database and workflow services
type Router struct {
	*mux.Router
	db            *database.DB
	cfg           *config.Config
	carts         *cart.Store
	documents     *documents.Service
	orders        *orders.Service
	notifications *notify.Emitter
	hub           *ws.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, carts *cart.Store,
	docSvc *documents.Service, orderSvc *orders.Service,
	emitter *notify.Emitter, hub *ws.Hub) *Router {

	r := &Router{
		Router:        mux.NewRouter(),
		db:            db,
		cfg:           cfg,
		carts:         carts,
		documents:     docSvc,
		orders:        orderSvc,
		notifications: emitter,
		hub:           hub,
	}

	auth := middleware.Auth(cfg.JWTSecret)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/login", r.login).Methods("POST")
	authRoutes.HandleFunc("/register", r.register).Methods("POST")
	authRoutes.HandleFunc("/logout", r.logout).Methods("POST")

	// Public catalog
	r.HandleFunc("/api/products", r.listProducts).Methods("GET")
	r.HandleFunc("/api/products/{slug}", r.getProduct).Methods("GET")

	// Customer routes (authenticated)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth)
	api.HandleFunc("/cart", r.getCart).Methods("GET")
	api.HandleFunc("/cart", r.addToCart).Methods("POST")
	api.HandleFunc("/cart", r.clearCart).Methods("DELETE")
	api.HandleFunc("/cart/{productId}", r.updateCartQuantity).Methods("PATCH")
	api.HandleFunc("/cart/{productId}", r.removeCartItem).Methods("DELETE")
	api.HandleFunc("/checkout", r.checkout).Methods("POST")
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/payment-proof", r.attachPaymentProof).Methods("POST")
	api.HandleFunc("/orders/{id}/receipt", r.orderReceipt).Methods("GET")
	api.HandleFunc("/documents", r.listDocuments).Methods("GET")
	api.HandleFunc("/documents/{type}", r.uploadDocument).Methods("POST")
	api.HandleFunc("/notifications", r.listNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", r.markNotificationRead).Methods("POST")
	api.HandleFunc("/notifications/{id}/archive", r.archiveNotification).Methods("POST")

	// Admin routes
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth, middleware.RequireAdmin)
	admin.HandleFunc("/orders", r.adminListOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", r.adminUpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/users/{id}/documents", r.adminListUserDocuments).Methods("GET")
	admin.HandleFunc("/users/{id}/documents/{type}/review", r.adminReviewDocument).Methods("POST")

	// Live notification feed (token-authenticated on upgrade)
	r.HandleFunc("/ws/notifications", r.serveNotificationFeed).Methods("GET")

	// Uploaded files (local storage mode)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAppError maps a workflow error kind to its HTTP status and
// actionable message.
func respondAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError

	switch kind {
	case apperr.KindValidationFailed, apperr.KindEmptyCart:
		status = http.StatusUnprocessableEntity
	case apperr.KindNotAuthenticated:
		status = http.StatusUnauthorized
	case apperr.KindNotAuthorized, apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidTransition:
		status = http.StatusConflict
	case apperr.KindInternal:
		log.Printf("❌ Internal error: %v", err)
	}

	respondJSON(w, status, map[string]string{
		"error": apperr.MessageOf(err),
		"kind":  string(kind),
	})
}
