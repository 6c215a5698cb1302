package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/services/receipt"
	"github.com/passionatedev1128/everwell-sub001/internal/storage"
)

// CheckoutRequest carries the shipping address for order creation
type CheckoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// checkout freezes the session cart into a new order. The cart is cleared
// only after the order is durably created; on any failure it stays intact.
func (r *Router) checkout(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())

	var body CheckoutRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	addr := body.ShippingAddress
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.PostalCode == "" {
		respondError(w, http.StatusUnprocessableEntity, "Shipping address requires street, city, state and postal code")
		return
	}

	snapshot := r.carts.Get(userID)
	lines, _, err := snapshot.Checkout()
	if err != nil {
		respondAppError(w, err)
		return
	}

	order, err := r.orders.Create(req.Context(), userID, lines, addr)
	if err != nil {
		respondAppError(w, err)
		return
	}

	// Order is durable; now the cart may go
	r.carts.Clear(userID)

	respondJSON(w, http.StatusCreated, order)
}

// listOrders returns the caller's orders
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	orders, err := r.orders.ListForUser(req.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// getOrder returns one of the caller's orders
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	orderID := mux.Vars(req)["id"]

	order, err := r.orders.Get(req.Context(), userID, false, orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// attachPaymentProof uploads/replaces the payment proof for an order
func (r *Router) attachPaymentProof(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	orderID := mux.Vars(req)["id"]

	up, closeFile, err := uploadFromRequest(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	defer closeFile()

	proof, err := r.orders.AttachPaymentProof(req.Context(), userID, orderID, up)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, proof)
}

// orderReceipt streams the PDF receipt for one of the caller's orders
func (r *Router) orderReceipt(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	orderID := mux.Vars(req)["id"]
	isAdmin := middleware.RoleFrom(req.Context()) == string(models.RoleAdmin)

	order, err := r.orders.Get(req.Context(), userID, isAdmin, orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	pdfBytes, err := receipt.Generate(order, receipt.Config{
		PixKey:       r.cfg.Payment.PixKey,
		MerchantName: r.cfg.Payment.MerchantName,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%s.pdf", order.OrderNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// uploadFromRequest extracts the multipart "file" field as a storage.Upload
func uploadFromRequest(req *http.Request) (storage.Upload, func(), error) {
	if err := req.ParseMultipartForm(storage.MaxUploadSize + 1<<20); err != nil {
		return storage.Upload{}, nil, apperr.ValidationFailed("invalid multipart payload")
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return storage.Upload{}, nil, apperr.ValidationFailed("multipart field \"file\" is required")
	}
	up := storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return up, func() { file.Close() }, nil
}
