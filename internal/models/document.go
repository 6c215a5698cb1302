package models

import (
	"time"
)

// DocumentType is one of the fixed regulatory document slots every
// customer must fill before purchasing restricted products.
type DocumentType string

const (
	DocumentMedicalPrescription DocumentType = "medical_prescription"
	DocumentImportAuthorization DocumentType = "import_authorization"
	DocumentProofOfResidence    DocumentType = "proof_of_residence"
)

// RequiredDocumentTypes lists every slot needed for authorization.
// All three are required; there is no partial authorization.
var RequiredDocumentTypes = []DocumentType{
	DocumentMedicalPrescription,
	DocumentImportAuthorization,
	DocumentProofOfResidence,
}

// Valid reports whether t is a known document type
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentMedicalPrescription, DocumentImportAuthorization, DocumentProofOfResidence:
		return true
	}
	return false
}

// DocumentStatus defines the review state of a document slot
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// DocumentRecord is the single authoritative record for a (user, type)
// slot. Re-uploads overwrite the record and reset it to pending; there is
// no history list.
type DocumentRecord struct {
	ID     string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string         `gorm:"type:uuid;not null;uniqueIndex:idx_document_slot" json:"userId"`
	Type   DocumentType   `gorm:"not null;uniqueIndex:idx_document_slot" json:"type"`
	URL    string         `gorm:"not null" json:"url"`
	Status DocumentStatus `gorm:"default:'pending';index" json:"status"`

	UploadedAt time.Time  `json:"uploadedAt"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	ReviewerID *string    `gorm:"type:uuid" json:"reviewerId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for DocumentRecord model
func (DocumentRecord) TableName() string {
	return "document_records"
}
