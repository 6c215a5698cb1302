package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
)

func upload(contentType string, size int64) Upload {
	return Upload{
		Filename:    "receipt.pdf",
		ContentType: contentType,
		Size:        size,
		Content:     strings.NewReader("content"),
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		up      Upload
		allowed map[string]bool
		wantErr bool
	}{
		{"valid pdf proof", upload("application/pdf", 1024), PaymentProofMIMETypes, false},
		{"valid jpeg with charset", upload("image/jpeg; charset=binary", 1024), PaymentProofMIMETypes, false},
		{"word doc as proof", upload("application/msword", 1024), PaymentProofMIMETypes, true},
		{"word doc as document", upload("application/msword", 1024), DocumentMIMETypes, false},
		{"oversize", upload("application/pdf", MaxUploadSize+1), PaymentProofMIMETypes, true},
		{"exactly max size", upload("application/pdf", MaxUploadSize), PaymentProofMIMETypes, false},
		{"empty", upload("application/pdf", 0), PaymentProofMIMETypes, true},
		{"executable", upload("application/x-msdownload", 1024), DocumentMIMETypes, true},
	}

	for _, tc := range cases {
		err := Validate(tc.up, tc.allowed)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr && err != nil && apperr.KindOf(err) != apperr.KindValidationFailed {
			t.Errorf("%s: expected validation_failed kind, got %s", tc.name, apperr.KindOf(err))
		}
	}
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	url, err := store.Save(context.Background(), "documents", "my prescription.pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/documents/") {
		t.Errorf("Unexpected URL: %s", url)
	}
	if strings.Contains(url, " ") {
		t.Errorf("URL should not contain spaces: %s", url)
	}

	name := strings.TrimPrefix(url, "/uploads/documents/")
	data, err := os.ReadFile(filepath.Join(dir, "documents", name))
	if err != nil {
		t.Fatalf("Stored file not readable: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("Stored content mismatch: %q", data)
	}
}

func TestLocalStoreSave_UniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	url1, err := store.Save(context.Background(), "documents", "same.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	url2, err := store.Save(context.Background(), "documents", "same.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if url1 == url2 {
		t.Error("Re-uploads should never clobber earlier files on disk")
	}
}
