package media

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Directories files are stored under.
const (
	DirImages  = "images"
	DirUploads = "uploads"
	DirContact = "uploads/contact"
)

// Stored describes an accepted upload.
type Stored struct {
	Path         string
	Filename     string
	OriginalName string
	Size         int64
	MimeType     string
}

// Handler validates uploads and moves them into the active store.
type Handler struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log, now: time.Now}
}

// Store returns the backing store.
func (h *Handler) Store() Store { return h.store }

// Check validates fh against rule without storing it.
func (h *Handler) Check(fh *multipart.FileHeader, rule Rule) error {
	return rule.Check(fh)
}

// Accept validates fh and stores it under dir with a generated name.
func (h *Handler) Accept(ctx context.Context, fh *multipart.FileHeader, rule Rule, dir string) (*Stored, error) {
	if err := rule.Check(fh); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := h.fileName(rule.Prefix, fh.Filename)
	mimeType := fh.Header.Get("Content-Type")
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); mt != "" && (mimeType == "" || mimeType == "application/octet-stream") {
		mimeType = mt
	}

	publicPath, err := h.store.Save(ctx, path.Join(dir, name), src, fh.Size, mimeType)
	if err != nil {
		return nil, err
	}
	return &Stored{
		Path:         publicPath,
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		MimeType:     mimeType,
	}, nil
}

// Owns reports whether p was produced by the active store.
func (h *Handler) Owns(p string) bool {
	return p != "" && h.store.Owns(p)
}

// Discard removes p best-effort. Paths the store did not produce are left alone.
func (h *Handler) Discard(ctx context.Context, p string) {
	if !h.Owns(p) {
		return
	}
	if err := h.store.Remove(ctx, p); err != nil {
		h.log.Warn("media cleanup failed", zap.String("path", p), zap.Error(err))
	}
}

// DiscardAll removes every path best-effort.
func (h *Handler) DiscardAll(ctx context.Context, paths []string) {
	for _, p := range paths {
		h.Discard(ctx, p)
	}
}

// Open reads a stored file; remote stores return ErrRemote.
func (h *Handler) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	return h.store.Open(ctx, p)
}

func (h *Handler) fileName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if prefix == "" {
		return uuid.NewString() + ext
	}
	return prefix + "-" + strconv.FormatInt(h.now().UnixMilli(), 10) + "-" + strconv.Itoa(rand.IntN(1e9)) + ext
}
