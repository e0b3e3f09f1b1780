package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/folio-space/core/internal/pkg/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultHTTPCacheTTL     = 30 * time.Second
	defaultHTTPCacheMaxBody = 1 << 20 // 1 MiB
	cacheHitHeader          = "x-cache"
	privateCacheControl     = "private, max-age=0, no-cache, no-store, must-revalidate"
)

type HTTPCacheOptions struct {
	TTL          time.Duration
	Disable      bool
	SkipPaths    []string
	MaxBodyBytes int
	Logger       *zap.Logger
}

type cachedHTTPResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
	Body        []byte `json:"-"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body         []byte
	maxBodyBytes int
	overflow     bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.maxBodyBytes <= 0 || w.overflow || len(data) == 0 {
		return
	}
	remaining := w.maxBodyBytes - len(w.body)
	if remaining <= 0 {
		w.overflow = true
		return
	}
	if len(data) > remaining {
		w.body = append(w.body, data[:remaining]...)
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

func normalizeHTTPCacheOptions(opts HTTPCacheOptions) HTTPCacheOptions {
	if opts.TTL <= 0 {
		opts.TTL = defaultHTTPCacheTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultHTTPCacheMaxBody
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// purgeGuard keeps a read that started before a purge from storing its
// body after the purge. Purges take the write lock; stores check the
// generation under the read lock.
type purgeGuard struct {
	mu         sync.RWMutex
	generation uint64
}

func (g *purgeGuard) current() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.generation
}

func (g *purgeGuard) purge(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
	g.generation++
}

// storeIf runs fn only when no purge happened since generation started.
func (g *purgeGuard) storeIf(started uint64, fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.generation == started {
		fn()
	}
}

// HTTPCache serves anonymous GETs from store and empties it after any
// successful write so the next read sees the change.
func HTTPCache(store cache.Store, opts HTTPCacheOptions) gin.HandlerFunc {
	options := normalizeHTTPCacheOptions(opts)
	guard := &purgeGuard{}
	return func(c *gin.Context) {
		if options.Disable || store == nil {
			c.Next()
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			if status := c.Writer.Status(); status > 0 && status < http.StatusBadRequest {
				guard.purge(func() {
					if err := store.Purge(context.WithoutCancel(c.Request.Context())); err != nil {
						options.Logger.Warn("http cache purge failed", zap.Error(err))
					}
				})
			}
			return
		}

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || shouldSkipCachePath(path, options.SkipPaths) {
			c.Next()
			return
		}

		if HasCredentials(c) {
			c.Header("Cache-Control", privateCacheControl)
			c.Next()
			return
		}

		cacheKey := c.Request.URL.RequestURI()
		if payload, ok := readCachedResponse(c.Request.Context(), store, cacheKey); ok {
			c.Header(cacheHitHeader, "hit")
			c.Data(payload.Status, payload.ContentType, payload.Body)
			c.Abort()
			return
		}

		started := guard.current()
		buffer := &cacheBodyWriter{
			ResponseWriter: c.Writer,
			maxBodyBytes:   options.MaxBodyBytes,
		}
		c.Writer = buffer
		c.Next()

		status := c.Writer.Status()
		if status <= 0 {
			status = http.StatusOK
		}
		if !isCacheableResponse(status, c.Writer.Header()) || buffer.overflow || len(buffer.body) == 0 {
			return
		}

		payload := cachedHTTPResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		guard.storeIf(started, func() {
			if err := store.Set(c.Request.Context(), cacheKey, raw, options.TTL); err != nil {
				options.Logger.Warn("http cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		})
	}
}

func readCachedResponse(ctx context.Context, store cache.Store, cacheKey string) (cachedHTTPResponse, bool) {
	raw, ok := store.Get(ctx, cacheKey)
	if !ok || len(raw) == 0 {
		return cachedHTTPResponse{}, false
	}
	var payload cachedHTTPResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return cachedHTTPResponse{}, false
	}
	if payload.Status <= 0 {
		payload.Status = http.StatusOK
	}
	if payload.ContentType == "" {
		payload.ContentType = "application/json; charset=utf-8"
	}
	body, err := base64.StdEncoding.DecodeString(payload.BodyBase64)
	if err != nil {
		return cachedHTTPResponse{}, false
	}
	payload.Body = body
	return payload, true
}

func shouldSkipCachePath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

func isCacheableResponse(status int, headers http.Header) bool {
	if status != http.StatusOK {
		return false
	}
	if headers.Get("Content-Disposition") != "" {
		return false
	}
	cacheControl := strings.ToLower(headers.Get("Cache-Control"))
	return !strings.Contains(cacheControl, "no-cache") &&
		!strings.Contains(cacheControl, "no-store") &&
		!strings.Contains(cacheControl, "private")
}
