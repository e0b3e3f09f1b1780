// Package media stores uploaded files and removes the ones records no longer reference.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrRemote is returned by Open when the file is served from its public URL.
var ErrRemote = errors.New("media: file is served remotely")

// Store persists files under keys such as "images/<name>.png".
type Store interface {
	// Save writes r under key and returns the public path records keep.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the file behind a public path produced by Save.
	Remove(ctx context.Context, publicPath string) error
	// Owns reports whether publicPath was produced by this store.
	Owns(publicPath string) bool
	// Open reads a stored file, or returns ErrRemote.
	Open(ctx context.Context, publicPath string) (io.ReadCloser, error)
	Name() string
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = path.Clean("/" + key)
	return strings.TrimPrefix(key, "/")
}
