package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/passionatedev1128/everwell-sub001/internal/middleware"
	"github.com/passionatedev1128/everwell-sub001/internal/utils"
	ws "github.com/passionatedev1128/everwell-sub001/internal/websocket"
)

// listNotifications returns the caller's notifications, newest first.
// Archived entries are hidden unless ?archived=true.
func (r *Router) listNotifications(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	includeArchived := req.URL.Query().Get("archived") == "true"

	notifications, err := r.notifications.List(req.Context(), userID, includeArchived)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// markNotificationRead flags one notification as read
func (r *Router) markNotificationRead(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	id := mux.Vars(req)["id"]

	if err := r.notifications.MarkRead(req.Context(), userID, id); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// archiveNotification hides a notification from the default listing
func (r *Router) archiveNotification(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())
	id := mux.Vars(req)["id"]

	if err := r.notifications.Archive(req.Context(), userID, id); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// serveNotificationFeed upgrades to a websocket mirroring the caller's
// notifications. Browsers cannot set headers on upgrade requests, so the
// token travels as a query parameter.
func (r *Router) serveNotificationFeed(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "token query parameter required")
		return
	}
	claims, err := utils.ValidateToken(token, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	userID, _ := claims["id"].(string)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Invalid token claims")
		return
	}

	ws.ServeWs(r.hub, w, req, userID)
}
