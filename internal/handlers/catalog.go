package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/utils"
)

// listProducts returns the active catalog. Restricted products appear in
// the listing with their flag; the gate applies to detail view, cart and
// checkout, not to browsing the list.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	var products []models.Product
	if err := r.db.Where("active = ?", true).Order("name ASC").Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// getProduct returns one product by slug. Restricted products require an
// authorized caller; the response never says which document is missing.
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	slug := mux.Vars(req)["slug"]

	var product models.Product
	if err := r.db.Where("slug = ? AND active = ?", slug, true).First(&product).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.Restricted {
		userID, ok := r.optionalUserID(req)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Sign in to view restricted products")
			return
		}
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

	respondJSON(w, http.StatusOK, product)
}

// optionalUserID extracts the caller from a Bearer token when present.
// Used on routes that are public for unrestricted content.
func (r *Router) optionalUserID(req *http.Request) (string, bool) {
	authHeader := req.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	claims, err := utils.ValidateToken(parts[1], r.cfg.JWTSecret)
	if err != nil {
		return "", false
	}
	id, _ := claims["id"].(string)
	return id, id != ""
}
