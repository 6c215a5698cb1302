// Package authz computes whether a user may access restricted catalog
// actions. The gate is a pure predicate over the user's document records;
// it never reads the cached flag on the user row.
package authz

import (
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

// SlotStatusMissing marks a required slot with no uploaded document yet.
// It is reported only to the authenticated owner, never to other callers.
const SlotStatusMissing = "missing"

// IsAuthorized reports whether every required document slot has an
// approved record. Deterministic, recomputed on every call.
func IsAuthorized(docs []models.DocumentRecord) bool {
	byType := make(map[models.DocumentType]models.DocumentStatus, len(docs))
	for _, d := range docs {
		byType[d.Type] = d.Status
	}
	for _, required := range models.RequiredDocumentTypes {
		if byType[required] != models.DocumentStatusApproved {
			return false
		}
	}
	return true
}

// SlotStatus describes one required slot for the owner's self-service view
type SlotStatus struct {
	Type       models.DocumentType `json:"type"`
	Status     string              `json:"status"`
	UploadedAt *time.Time          `json:"uploadedAt,omitempty"`
	ReviewedAt *time.Time          `json:"reviewedAt,omitempty"`
}

// Progress returns the per-slot status for every required document type.
// Absent slots are reported as missing.
func Progress(docs []models.DocumentRecord) []SlotStatus {
	byType := make(map[models.DocumentType]models.DocumentRecord, len(docs))
	for _, d := range docs {
		byType[d.Type] = d
	}

	out := make([]SlotStatus, 0, len(models.RequiredDocumentTypes))
	for _, required := range models.RequiredDocumentTypes {
		slot := SlotStatus{Type: required, Status: SlotStatusMissing}
		if d, ok := byType[required]; ok {
			uploaded := d.UploadedAt
			slot.Status = string(d.Status)
			slot.UploadedAt = &uploaded
			slot.ReviewedAt = d.ReviewedAt
		}
		out = append(out, slot)
	}
	return out
}
