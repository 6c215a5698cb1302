// Package storage abstracts the file backend used for regulatory documents
// and payment proofs. The backend itself is an external collaborator; only
// the validation rules and the Save contract belong to the workflow.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
)

// MaxUploadSize is the hard limit for any uploaded file
const MaxUploadSize = 10 << 20 // 10MB

// DocumentMIMETypes lists the content types accepted for regulatory
// document uploads (PDF, Word, images).
var DocumentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PaymentProofMIMETypes lists the content types accepted for payment proofs
var PaymentProofMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Upload describes an incoming file before validation
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Validate checks size and content type. Failures are ValidationFailed and
// require a new user action; nothing is retried automatically.
func Validate(up Upload, allowed map[string]bool) error {
	if up.Size <= 0 {
		return apperr.ValidationFailed("uploaded file is empty")
	}
	if up.Size > MaxUploadSize {
		return apperr.ValidationFailed("file too large (max 10MB)")
	}
	mediaType := up.ContentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	if !allowed[mediaType] {
		return apperr.ValidationFailed(fmt.Sprintf("unsupported file type %q", mediaType))
	}
	return nil
}

// FileStore persists uploaded files and returns an opaque URL reference
type FileStore interface {
	Save(ctx context.Context, folder, filename string, content io.Reader) (string, error)
}

// LocalStore writes files under a base directory. Used for development;
// production deployments plug a remote backend behind FileStore.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the base directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the file with a uuid-prefixed name so re-uploads never
// clobber earlier files on disk even though the record slot is overwritten.
func (s *LocalStore) Save(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	name := uuid.New().String() + "_" + sanitizeFilename(filename)
	dir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + folder + "/" + name, nil
}

// sanitizeFilename strips path separators and spaces from user filenames
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "file"
	}
	return name
}
