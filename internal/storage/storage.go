// Package storage persists uploaded résumé files in object storage.
package storage

import (
	"context"
	"io"
)

// Object identifies a stored file.
type Object struct {
	Key  string
	URL  string
	Size int64
}

// UploadInput describes a single object to store.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores and removes résumé objects.
type Service interface {
	Upload(ctx context.Context, in UploadInput) (Object, error)
	Delete(ctx context.Context, key string) error
}
