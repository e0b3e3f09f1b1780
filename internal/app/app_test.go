package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/folio-space/core/internal/pkg/cache"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := media.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	cfg := &config.AppConfig{
		Port:           5000,
		Env:            "production",
		AllowedOrigins: []string{"https://example.com", "*.example.org", "localhost:*"},
		Cache:          config.CacheConfig{TTLSeconds: 30},
		Media:          config.MediaConfig{Driver: config.MediaLocal, MaxUploadMB: 1},
		Paths:          config.PathsConfig{Logs: t.TempDir()},
	}
	return Build(zap.NewNop(), cfg, Deps{
		DB:    dbtest.New(t),
		Media: store,
		Cache: cache.NewMemory(time.Minute),
	})
}

func TestRoutesMounted(t *testing.T) {
	r := newTestApp(t).Router()

	w := contenttest.JSON(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/api/skills", "/api/projects", "/api/certifications", "/api/education", "/api/interests"} {
		w := contenttest.JSON(r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
	assert.JSONEq(t, `{}`, contenttest.JSON(r, http.MethodGet, "/api/profile", "", nil).Body.String())

	w = contenttest.JSON(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":404,"message":"Not Found"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, contenttest.JSON(r, http.MethodPost, "/api/skills", "", map[string]string{"name": "Go"}).Code)
}

func TestWritesInvalidateReadCache(t *testing.T) {
	r := newTestApp(t).Router()
	token := contenttest.Token(t)

	first := contenttest.JSON(r, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	hit := contenttest.JSON(r, http.MethodGet, "/api/skills", "", nil)
	assert.Equal(t, "hit", hit.Header().Get("x-cache"))

	require.Equal(t, http.StatusCreated, contenttest.JSON(r, http.MethodPost, "/api/skills", token, map[string]any{"name": "Go", "logo": "l"}).Code)

	after := contenttest.JSON(r, http.MethodGet, "/api/skills", "", nil)
	assert.Empty(t, after.Header().Get("x-cache"))
	list := contenttest.Decode[[]models.SkillModel](t, after)
	assert.Len(t, list, 1)
}

func TestUploadedMediaIsServed(t *testing.T) {
	r := newTestApp(t).Router()
	w := contenttest.Multipart(r, http.MethodPost, "/api/certifications", contenttest.Token(t),
		map[string]string{"title": "CKA", "issuer": "CNCF", "year": "2024"},
		contenttest.Upload{Field: "image", Name: "c.png", ContentType: "image/png", Body: contenttest.PNG})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cert := contenttest.Decode[models.CertificationModel](t, w)

	req := httptest.NewRequest(http.MethodGet, cert.Image, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contenttest.PNG, rec.Body.Bytes())
}

func TestCORS(t *testing.T) {
	r := newTestApp(t).Router()
	preflight := func(origin string) string {
		req := httptest.NewRequest(http.MethodOptions, "/api/skills", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Header().Get("Access-Control-Allow-Origin")
	}
	assert.Equal(t, "https://example.com", preflight("https://example.com"))
	assert.Equal(t, "https://blog.example.org", preflight("https://blog.example.org"))
	assert.Equal(t, "http://localhost:5173", preflight("http://localhost:5173"))
	assert.Empty(t, preflight("https://evil.test"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("*.example.com", "a.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.com.evil"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))
	assert.False(t, matchOriginPattern("localhost:*", "localhost.evil:3000"))
	assert.True(t, allowOrigin([]string{"https://example.com"}, "https://example.com"))
}
