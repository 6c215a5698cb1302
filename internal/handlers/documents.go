package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

// uploadDocument receives a regulatory document for one of the caller's
// three required slots. A re-upload overwrites the slot and resets it to
// pending, even when it was previously approved.
func (r *Router) uploadDocument(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	docType := models.DocumentType(mux.Vars(req)["type"])

	up, closeFile, err := uploadFromRequest(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	defer closeFile()

	rec, err := r.documents.Upload(req.Context(), userID, docType, up)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// listDocuments returns the caller's per-slot progress, including missing
// slots. This is the only place per-document status is exposed; everyone
// else just sees the authorization result.
func (r *Router) listDocuments(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())

	slots, err := r.documents.Progress(req.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	authorized, err := r.documents.IsAuthorized(req.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":    slots,
		"isAuthorized": authorized,
	})
}
