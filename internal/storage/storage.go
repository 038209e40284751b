// Package storage keeps archived quote uploads in an S3-compatible object store.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// QuotePrefix is the key prefix under which uploaded quotes are archived.
const QuotePrefix = "quotes"

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used by the archive.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// QuoteKey builds the object key for an archived upload: quotes/YYYY/MM/<id><ext>.
// The extension is lowercased and anything that is not a short alphanumeric suffix is dropped.
func QuoteKey(id, filename string, at time.Time) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if !validExt(ext) {
		ext = ""
	}
	return path.Join(QuotePrefix, at.UTC().Format("2006/01"), id+ext)
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
