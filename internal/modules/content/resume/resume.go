package resume

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UploadResumeDTO struct {
	Resume *multipart.FileHeader `json:"-" form:"resume"`
}

// Service keeps every uploaded resume; the newest one is current.
type Service struct {
	db    *gorm.DB
	media *media.Handler
	rule  media.Rule
	now   func() time.Time
}

func NewService(db *gorm.DB, mh *media.Handler) *Service {
	return &Service{db: db, media: mh, rule: media.ResumeRule(), now: time.Now}
}

func (s *Service) Current(ctx context.Context) (*models.ResumeModel, error) {
	var r models.ResumeModel
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("No resume found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &r, nil
}

// History lists every resume, newest first.
func (s *Service) History(ctx context.Context) ([]models.ResumeModel, error) {
	items := make([]models.ResumeModel, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

// Upload validates and stores a PDF, then records it as the new current resume.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader) (*models.ResumeModel, error) {
	if binding.File(fh) == nil {
		return nil, apperr.Validation(s.rule.TypeMessage)
	}
	stored, err := s.media.Accept(ctx, fh, s.rule, media.DirUploads)
	if err != nil {
		return nil, err
	}
	r := models.ResumeModel{
		Filename:     stored.Filename,
		OriginalName: stored.OriginalName,
		Path:         stored.Path,
		Size:         stored.Size,
		MimeType:     stored.MimeType,
		UploadDate:   s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		s.media.Discard(ctx, stored.Path)
		return nil, apperr.Store(err)
	}
	return &r, nil
}

// Delete removes one resume record, then its file best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	var r models.ResumeModel
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Resume not found")
		}
		return apperr.Store(err)
	}
	if err := s.db.WithContext(ctx).Delete(&r).Error; err != nil {
		return apperr.Store(err)
	}
	s.media.Discard(ctx, r.Path)
	return nil
}

// Open reads the current resume's file. Remote stores return media.ErrRemote.
func (s *Service) Open(ctx context.Context) (*models.ResumeModel, io.ReadCloser, error) {
	r, err := s.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.media.Open(ctx, r.Path)
	if err != nil {
		return r, nil, err
	}
	return r, rc, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/resume")
	g.GET("", h.current)
	g.GET("/download", h.download)

	a := g.Group("", authMW)
	a.GET("/history", h.history)
	a.POST("", h.upload)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) current(c *gin.Context) {
	r, err := h.svc.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, r)
}

func (h *Handler) download(c *gin.Context) {
	r, rc, err := h.svc.Open(c.Request.Context())
	switch {
	case errors.Is(err, media.ErrRemote):
		c.Redirect(http.StatusFound, r.Path)
		return
	case errors.Is(err, os.ErrNotExist):
		response.NotFoundMsg(c, "File not found on server")
		return
	case err != nil:
		response.Error(c, err)
		return
	}
	defer rc.Close()

	name := strings.ReplaceAll(r.OriginalName, `"`, "")
	if name == "" {
		name = "resume.pdf"
	}
	c.DataFromReader(http.StatusOK, -1, "application/pdf", rc, map[string]string{
		"Content-Disposition": `inline; filename="` + name + `"`,
	})
}

func (h *Handler) history(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) upload(c *gin.Context) {
	var dto UploadResumeDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	r, err := h.svc.Upload(c.Request.Context(), dto.Resume)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, r)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Resume deleted successfully")
}
