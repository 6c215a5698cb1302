// Package notify dispatches user-visible notifications produced by
// workflow transitions. Emission is best-effort: a failed store or push
// never rolls back or fails the originating transition.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"gorm.io/datatypes"
)

// Store persists notifications and serves the pull listing
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string, includeArchived bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	Archive(ctx context.Context, userID, id string) error
}

// Pusher mirrors stored notifications to live connections
type Pusher interface {
	SendToUser(userID string, message interface{}) bool
}

// Emitter stores notifications and pushes them to connected clients
type Emitter struct {
	store  Store
	pusher Pusher
}

// NewEmitter creates an Emitter. pusher may be nil (store-only mode).
func NewEmitter(store Store, pusher Pusher) *Emitter {
	return &Emitter{store: store, pusher: pusher}
}

// Emit records a notification for the user. Fire-and-forget: failures are
// logged and swallowed so the triggering transition stays authoritative.
func (e *Emitter) Emit(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]interface{}) {
	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Printf("⚠️  Notification payload dropped for user %s: %v", userID, err)
		} else {
			n.Data = datatypes.JSON(raw)
		}
	}

	if err := e.store.Create(ctx, n); err != nil {
		log.Printf("⚠️  Failed to store notification for user %s: %v", userID, err)
		return
	}

	if e.pusher != nil {
		e.pusher.SendToUser(userID, n)
	}
}

// List returns the user's notifications, newest first
func (e *Emitter) List(ctx context.Context, userID string, includeArchived bool) ([]models.Notification, error) {
	return e.store.ListForUser(ctx, userID, includeArchived)
}

// MarkRead flags one of the user's notifications as read
func (e *Emitter) MarkRead(ctx context.Context, userID, id string) error {
	return e.store.MarkRead(ctx, userID, id)
}

// Archive hides one of the user's notifications from the default listing
func (e *Emitter) Archive(ctx context.Context, userID, id string) error {
	return e.store.Archive(ctx, userID, id)
}
