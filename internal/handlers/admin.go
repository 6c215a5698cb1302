package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

// adminListOrders returns every order for the fulfillment dashboard
func (r *Router) adminListOrders(w http.ResponseWriter, req *http.Request) {
	orders, err := r.orders.ListAll(req.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatusRequest carries the target status
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// adminUpdateOrderStatus moves an order along the state machine. Illegal
// edges (including anything out of a terminal state) are rejected.
func (r *Router) adminUpdateOrderStatus(w http.ResponseWriter, req *http.Request) {
	orderID := mux.Vars(req)["id"]

	var body UpdateOrderStatusRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := r.orders.UpdateStatus(req.Context(), orderID, models.OrderStatus(body.Status))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// adminListUserDocuments returns a user's document records for review
func (r *Router) adminListUserDocuments(w http.ResponseWriter, req *http.Request) {
	userID := mux.Vars(req)["id"]

	slots, err := r.documents.Progress(req.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

// ReviewDocumentRequest carries the admin decision
type ReviewDocumentRequest struct {
	Decision string `json:"decision"`
}

// adminReviewDocument approves or rejects one document slot. Reviewing
// into the current status is a silent no-op.
func (r *Router) adminReviewDocument(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	userID := vars["id"]
	docType := models.DocumentType(vars["type"])
	reviewerID := middleware.UserIDFrom(req.Context())

	var body ReviewDocumentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	rec, authorized, err := r.documents.Review(req.Context(), reviewerID, userID, docType,
		models.DocumentStatus(body.Decision))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"document":     rec,
		"isAuthorized": authorized,
	})
}
