package health

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/folio-space/core/internal/pkg/logging"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	enabled bool
	err     error
	sent    []mail.Message
}

func (m *fakeMailer) Enabled() bool     { return m.enabled }
func (m *fakeMailer) Recipient() string { return "owner@example.com" }
func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func TestLivenessAndReadiness(t *testing.T) {
	db := dbtest.New(t)
	r := contenttest.Router(NewHandler(db, t.TempDir(), nil))

	w := contenttest.JSON(r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Server is running"}`, w.Body.String())

	w = contenttest.JSON(r, http.MethodGet, "/api/health/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":true}`, w.Body.String())

	database.Close(db)
	w = contenttest.JSON(r, http.MethodGet, "/api/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// liveness never depends on the store
	assert.Equal(t, http.StatusOK, contenttest.JSON(r, http.MethodGet, "/api/health", "", nil).Code)
}

func TestEmailTest(t *testing.T) {
	db := dbtest.New(t)
	token := contenttest.Token(t)

	r := contenttest.Router(NewHandler(db, t.TempDir(), &fakeMailer{}))
	assert.Equal(t, http.StatusUnauthorized, contenttest.JSON(r, http.MethodGet, "/api/health/email/test", "", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, contenttest.JSON(r, http.MethodGet, "/api/health/email/test", token, nil).Code)

	m := &fakeMailer{enabled: true}
	r = contenttest.Router(NewHandler(db, t.TempDir(), m))
	require.Equal(t, http.StatusOK, contenttest.JSON(r, http.MethodGet, "/api/health/email/test", token, nil).Code)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, m.sent[0].To)

	m.err = errors.New("auth failed")
	w := contenttest.JSON(r, http.MethodGet, "/api/health/email/test", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "auth failed")
}

func TestLogFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	today := logging.DailyFilename(now)
	old := logging.DailyFilename(now.AddDate(0, 0, -1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, today), []byte("today"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, old), []byte("yesterday"), 0o644))

	h := NewHandler(dbtest.New(t), dir, nil)
	h.now = func() time.Time { return now }
	r := contenttest.Router(h)
	token := contenttest.Token(t)

	items := contenttest.Decode[[]logItem](t, contenttest.JSON(r, http.MethodGet, "/api/health/log/list", token, nil))
	assert.Len(t, items, 2)

	w := contenttest.JSON(r, http.MethodGet, "/api/health/log?filename=../"+old, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yesterday", w.Body.String())

	assert.Equal(t, http.StatusNoContent, contenttest.JSON(r, http.MethodDelete, "/api/health/log?filename="+old, token, nil).Code)
	assert.Equal(t, http.StatusNoContent, contenttest.JSON(r, http.MethodDelete, "/api/health/log?filename="+today, token, nil).Code)

	_, err := os.Stat(filepath.Join(dir, old))
	assert.True(t, os.IsNotExist(err))
	b, err := os.ReadFile(filepath.Join(dir, today))
	require.NoError(t, err)
	assert.Empty(t, b, "today's log is truncated, not removed")

	assert.Equal(t, http.StatusBadRequest, contenttest.JSON(r, http.MethodGet, "/api/health/log", token, nil).Code)
}
