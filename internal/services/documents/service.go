// Package documents owns the regulatory document workflow: customer
// uploads feed review slots, admin reviews settle them, and every change
// recomputes the user's authorization in the same transaction.
package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/authz"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/storage"
)

// Store is the persistence contract for document slots. Implementations
// must apply SaveSlot atomically with the authorization flag update.
type Store interface {
	ListForUser(ctx context.Context, userID string) ([]models.DocumentRecord, error)
	GetSlot(ctx context.Context, userID string, t models.DocumentType) (*models.DocumentRecord, error)
	// SaveSlot upserts the (userID, type) record and persists the
	// recomputed authorization flag on the user row in one transaction.
	SaveSlot(ctx context.Context, rec *models.DocumentRecord, authorized bool) error
}

// Notifier is satisfied by notify.Emitter
type Notifier interface {
	Emit(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]interface{})
}

// Service drives the document slot state machine
type Service struct {
	store  Store
	files  storage.FileStore
	notify Notifier
}

// NewService wires the document workflow
func NewService(store Store, files storage.FileStore, notifier Notifier) *Service {
	return &Service{store: store, files: files, notify: notifier}
}

// Upload validates and stores a document file, then resets the (user, type)
// slot to pending. Re-upload overwrites the slot even when it was already
// approved: review always restarts. No notification is emitted; reviews are
// the only notification source for documents.
func (s *Service) Upload(ctx context.Context, userID string, t models.DocumentType, up storage.Upload) (*models.DocumentRecord, error) {
	if !t.Valid() {
		return nil, apperr.ValidationFailed(fmt.Sprintf("unknown document type %q", t))
	}
	if err := storage.Validate(up, storage.DocumentMIMETypes); err != nil {
		return nil, err
	}

	url, err := s.files.Save(ctx, "documents", up.Filename, up.Content)
	if err != nil {
		return nil, apperr.Internal("failed to store document file", err)
	}

	docs, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load document records", err)
	}

	rec := findSlot(docs, t)
	if rec == nil {
		rec = &models.DocumentRecord{UserID: userID, Type: t}
	}
	rec.URL = url
	rec.Status = models.DocumentStatusPending
	rec.UploadedAt = time.Now().UTC()
	rec.ReviewedAt = nil
	rec.ReviewerID = nil

	authorized := authz.IsAuthorized(replaceSlot(docs, *rec))
	if err := s.store.SaveSlot(ctx, rec, authorized); err != nil {
		return nil, apperr.Internal("failed to save document record", err)
	}
	return rec, nil
}

// Review settles a pending slot. Idempotent: reviewing into the current
// status is a silent no-op; a notification is emitted only when the status
// actually changed. Admin authority is enforced at the transport layer.
func (s *Service) Review(ctx context.Context, reviewerID, userID string, t models.DocumentType, decision models.DocumentStatus) (*models.DocumentRecord, bool, error) {
	if !t.Valid() {
		return nil, false, apperr.ValidationFailed(fmt.Sprintf("unknown document type %q", t))
	}
	if decision != models.DocumentStatusApproved && decision != models.DocumentStatusRejected {
		return nil, false, apperr.ValidationFailed("decision must be approved or rejected")
	}

	docs, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, false, apperr.Internal("failed to load document records", err)
	}
	rec := findSlot(docs, t)
	if rec == nil {
		return nil, false, apperr.NotFound("no document uploaded for this slot")
	}

	if rec.Status == decision {
		// Idempotent re-review: no mutation, no notification
		return rec, authz.IsAuthorized(docs), nil
	}

	now := time.Now().UTC()
	rec.Status = decision
	rec.ReviewedAt = &now
	rec.ReviewerID = &reviewerID

	authorized := authz.IsAuthorized(replaceSlot(docs, *rec))
	if err := s.store.SaveSlot(ctx, rec, authorized); err != nil {
		return nil, false, apperr.Internal("failed to save review", err)
	}

	s.emitReview(ctx, userID, rec, authorized)
	return rec, authorized, nil
}

// Progress returns the owner's per-slot view, with absent slots reported
// as missing.
func (s *Service) Progress(ctx context.Context, userID string) ([]authz.SlotStatus, error) {
	docs, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load document records", err)
	}
	return authz.Progress(docs), nil
}

// IsAuthorized recomputes the gate from live document rows
func (s *Service) IsAuthorized(ctx context.Context, userID string) (bool, error) {
	docs, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return false, apperr.Internal("failed to load document records", err)
	}
	return authz.IsAuthorized(docs), nil
}

func (s *Service) emitReview(ctx context.Context, userID string, rec *models.DocumentRecord, authorized bool) {
	label := documentLabel(rec.Type)
	data := map[string]interface{}{
		"documentType": rec.Type,
		"status":       rec.Status,
		"isAuthorized": authorized,
	}
	switch rec.Status {
	case models.DocumentStatusApproved:
		msg := fmt.Sprintf("Your %s was approved.", label)
		if authorized {
			msg += " All documents are approved; you can now purchase restricted products."
		}
		s.notify.Emit(ctx, userID, models.NotificationSuccess, "Document approved", msg, data)
	case models.DocumentStatusRejected:
		s.notify.Emit(ctx, userID, models.NotificationWarning, "Document rejected",
			fmt.Sprintf("Your %s was rejected. Please upload a new file.", label), data)
	}
}

func documentLabel(t models.DocumentType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func findSlot(docs []models.DocumentRecord, t models.DocumentType) *models.DocumentRecord {
	for i := range docs {
		if docs[i].Type == t {
			return &docs[i]
		}
	}
	return nil
}

// replaceSlot returns docs with rec substituted (or appended) so the gate
// sees the post-save state before the transaction commits.
func replaceSlot(docs []models.DocumentRecord, rec models.DocumentRecord) []models.DocumentRecord {
	out := make([]models.DocumentRecord, 0, len(docs)+1)
	replaced := false
	for _, d := range docs {
		if d.Type == rec.Type {
			out = append(out, rec)
			replaced = true
			continue
		}
		out = append(out, d)
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}
