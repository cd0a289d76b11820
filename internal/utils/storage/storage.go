package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrStoreFile    = errors.New("failed to store file")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage persists uploaded sample photos. Stored files are never removed
// by the application: a replaced or deleted product leaves its old image behind.
type FileStorage interface {
	// Store writes src under a freshly generated "<uuid>_<originalName>" name
	// and returns that name.
	Store(ctx context.Context, src io.Reader, originalName string, contentType string) (string, error)
	// Open returns the bytes stored under storedName.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
}

// GenerateFileName prefixes the base of originalName with a random uuid.
func GenerateFileName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return uuid.New().String() + "_" + base
}

// isSafeName rejects names that could escape the storage root.
func isSafeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
