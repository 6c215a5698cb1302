package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/cart"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

// cartResponse wraps the cart snapshot with its computed total
type cartResponse struct {
	Lines      []cart.Line `json:"lines"`
	TotalCents int64       `json:"totalCents"`
}

func cartJSON(c cart.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{Lines: lines, TotalCents: c.TotalCents()}
}

// getCart returns the caller's session cart
func (r *Router) getCart(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	respondJSON(w, http.StatusOK, cartJSON(r.carts.Get(userID)))
}

// AddToCartRequest selects a product and quantity
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// addToCart merges the product into the caller's cart. Restricted products
// require the document gate to pass.
func (r *Router) addToCart(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())

	var body AddToCartRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var product models.Product
	if err := r.db.Where("id = ? AND active = ?", body.ProductID, true).First(&product).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.Restricted {
		authorized, err := r.documents.IsAuthorized(req.Context(), userID)
		if err != nil {
			respondAppError(w, err)
			return
		}
		if !authorized {
			respondError(w, http.StatusForbidden, "Your documents are still pending approval")
			return
		}
	}

	snapshot := r.carts.Update(userID, func(c *cart.Cart) {
		c.Add(product, body.Quantity)
	})
	respondJSON(w, http.StatusOK, cartJSON(snapshot))
}

// UpdateQuantityRequest changes a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// updateCartQuantity sets a line quantity; values below 1 clamp to 1
func (r *Router) updateCartQuantity(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	productID := mux.Vars(req)["productId"]

	var body UpdateQuantityRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	found := false
	snapshot := r.carts.Update(userID, func(c *cart.Cart) {
		found = c.SetQuantity(productID, body.Quantity)
	})
	if !found {
		respondError(w, http.StatusNotFound, "Product is not in your cart")
		return
	}
	respondJSON(w, http.StatusOK, cartJSON(snapshot))
}

// removeCartItem removes one line from the cart
func (r *Router) removeCartItem(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	productID := mux.Vars(req)["productId"]

	found := false
	snapshot := r.carts.Update(userID, func(c *cart.Cart) {
		found = c.Remove(productID)
	})
	if !found {
		respondError(w, http.StatusNotFound, "Product is not in your cart")
		return
	}
	respondJSON(w, http.StatusOK, cartJSON(snapshot))
}

// clearCart empties the caller's cart
func (r *Router) clearCart(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	r.carts.Clear(userID)
	respondJSON(w, http.StatusOK, cartJSON(cart.Cart{}))
}
