package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps files under a static directory served by the HTTP router.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create static dir: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Name() string { return "local" }

// Root returns the directory files are written to.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	key = normalizeKey(key)
	if key == "" {
		return "", fmt.Errorf("empty media key")
	}
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return "/" + key, nil
}

func (s *LocalStore) Owns(publicPath string) bool {
	_, ok := s.resolve(publicPath)
	return ok
}

func (s *LocalStore) Remove(_ context.Context, publicPath string) error {
	p, ok := s.resolve(publicPath)
	if !ok {
		return fmt.Errorf("path %q is not a local media path", publicPath)
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, publicPath string) (io.ReadCloser, error) {
	p, ok := s.resolve(publicPath)
	if !ok {
		return nil, os.ErrNotExist
	}
	return os.Open(p)
}

// resolve maps "/uploads/x.pdf" to a file inside root.
func (s *LocalStore) resolve(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, "/") || strings.HasPrefix(publicPath, "//") {
		return "", false
	}
	key := normalizeKey(publicPath)
	if key == "" {
		return "", false
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return p, true
}
