package resume

import (
	"net/http"
	"testing"
	"time"

	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/contenttest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	db := dbtest.New(t)
	mh, root := contenttest.Media(t)
	return contenttest.Router(NewHandler(NewService(db, mh))), db, root
}

func pdf(name string) contenttest.Upload {
	return contenttest.Upload{Field: "resume", Name: name, ContentType: "application/pdf", Body: []byte("%PDF-1.7 " + name)}
}

func TestResumeRejectsNonPDFBeforeWriting(t *testing.T) {
	r, db, root := setup(t)
	w := contenttest.Multipart(r, http.MethodPost, "/api/resume", contenttest.Token(t), nil,
		contenttest.Upload{Field: "resume", Name: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Body: []byte("PK")})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please upload a PDF file")

	w = contenttest.Multipart(r, http.MethodPost, "/api/resume", contenttest.Token(t), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.ResumeModel{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Empty(t, contenttest.Files(t, root))
}

func TestResumeAppendAndCurrent(t *testing.T) {
	r, _, root := setup(t)
	token := contenttest.Token(t)

	w := contenttest.JSON(r, http.MethodGet, "/api/resume", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No resume found")

	w = contenttest.Multipart(r, http.MethodPost, "/api/resume", token, nil, pdf("old.pdf"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := contenttest.Decode[models.ResumeModel](t, w)
	assert.Regexp(t, `^/uploads/resume-\d+-\d+\.pdf$`, first.Path)
	assert.Equal(t, "old.pdf", first.OriginalName)
	assert.Equal(t, "application/pdf", first.MimeType)

	time.Sleep(5 * time.Millisecond)
	w = contenttest.Multipart(r, http.MethodPost, "/api/resume", token, nil, pdf("new.pdf"))
	require.Equal(t, http.StatusCreated, w.Code)
	second := contenttest.Decode[models.ResumeModel](t, w)

	current := contenttest.Decode[models.ResumeModel](t, contenttest.JSON(r, http.MethodGet, "/api/resume", "", nil))
	assert.Equal(t, second.ID, current.ID)

	assert.Equal(t, http.StatusUnauthorized, contenttest.JSON(r, http.MethodGet, "/api/resume/history", "", nil).Code)
	history := contenttest.Decode[[]models.ResumeModel](t, contenttest.JSON(r, http.MethodGet, "/api/resume/history", token, nil))
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)

	w = contenttest.JSON(r, http.MethodGet, "/api/resume/download", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="new.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7 new.pdf", w.Body.String())

	w = contenttest.JSON(r, http.MethodDelete, "/api/resume/"+second.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Resume deleted successfully"}`, w.Body.String())
	assert.False(t, contenttest.Exists(root, second.Path))
	assert.True(t, contenttest.Exists(root, first.Path))

	current = contenttest.Decode[models.ResumeModel](t, contenttest.JSON(r, http.MethodGet, "/api/resume", "", nil))
	assert.Equal(t, first.ID, current.ID)

	w = contenttest.JSON(r, http.MethodDelete, "/api/resume/"+second.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Resume not found")
}
