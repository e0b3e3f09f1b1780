// Package contenttest drives module handlers over HTTP in tests.
package contenttest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registrar is satisfied by every module handler.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc)
}

// Router mounts h under /api behind the real auth middleware.
func Router(h Registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"), middleware.Auth())
	return r
}

// Token returns a valid admin bearer token.
func Token(t testing.TB) string {
	t.Helper()
	token, err := jwt.Sign("admin-id", "admin@example.com", time.Hour)
	require.NoError(t, err)
	return token
}

// Media returns a handler over a local store rooted in a temp dir.
func Media(t testing.TB) (*media.Handler, string) {
	t.Helper()
	root := t.TempDir()
	store, err := media.NewLocalStore(root)
	require.NoError(t, err)
	return media.NewHandler(store, zap.NewNop()), root
}

// FailWrites makes every later create and update on db fail.
func FailWrites(t testing.TB, db *gorm.DB) {
	t.Helper()
	fail := func(tx *gorm.DB) { _ = tx.AddError(errors.New("write refused")) }
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("contenttest:fail_create", fail))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("contenttest:fail_update", fail))
}

// Exists reports whether the public path p resolves to a file under root.
func Exists(root, p string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "/"))))
	return err == nil
}

// Files lists every regular file under root, relative and slash separated.
func Files(t testing.TB, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return out
}

// JSON sends body as JSON. An empty token sends no Authorization header.
func JSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return send(r, req, token)
}

// Upload is one file part of a multipart request.
type Upload struct {
	Field       string
	Name        string
	ContentType string
	Body        []byte
}

// Multipart sends fields and files as multipart/form-data.
func Multipart(r http.Handler, method, path, token string, fields map[string]string, files ...Upload) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Name+`"`)
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, _ := w.CreatePart(h)
		_, _ = part.Write(f.Body)
	}
	_ = w.Close()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return send(r, req, token)
}

func send(r http.Handler, req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a response body into T.
func Decode[T any](t testing.TB, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// PNG is a tiny body for image uploads.
var PNG = []byte("\x89PNG\r\n\x1a\nfake")
