package contact

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxAttachments caps the files one submission may carry.
const MaxAttachments = 5

const notifyTimeout = 20 * time.Second

type SubmitContactDTO struct {
	Name        string                  `json:"name"    form:"name"    binding:"required"`
	Email       string                  `json:"email"   form:"email"   binding:"required,email"`
	Subject     string                  `json:"subject" form:"subject" binding:"required"`
	Message     string                  `json:"message" form:"message" binding:"required"`
	Attachments []*multipart.FileHeader `json:"-"       form:"attachments"`
}

// Notifier forwards a stored submission to the site owner.
type Notifier interface {
	SendContactNotify(ctx context.Context, data mail.ContactNotifyData) error
}

// Notifiers fans a submission out to every channel. Every channel is tried.
type Notifiers []Notifier

func (ns Notifiers) SendContactNotify(ctx context.Context, data mail.ContactNotifyData) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.SendContactNotify(ctx, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Service struct {
	db     *gorm.DB
	media  *media.Handler
	notify Notifier
	log    *zap.Logger
	rule   media.Rule
	site   string
}

func NewService(db *gorm.DB, mh *media.Handler, notify Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, media: mh, notify: notify, log: log, rule: media.ContactRule()}
}

// WithSiteName sets the site name shown in notification mails.
func (s *Service) WithSiteName(name string) *Service {
	s.site = name
	return s
}

// Submit validates every attachment before storing any, persists the
// message, then notifies the owner. A failed notification is only logged.
func (s *Service) Submit(ctx context.Context, dto *SubmitContactDTO) (*models.ContactModel, error) {
	for _, f := range []struct{ name, value string }{
		{"name", dto.Name}, {"email", dto.Email}, {"subject", dto.Subject}, {"message", dto.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperr.Validationf("%s is required", f.name)
		}
	}
	files := binding.Files(dto.Attachments)
	if len(files) > MaxAttachments {
		return nil, apperr.Validationf("You can attach at most %d files", MaxAttachments)
	}
	for _, fh := range files {
		if err := s.media.Check(fh, s.rule); err != nil {
			return nil, err
		}
	}

	stored := make([]*media.Stored, 0, len(files))
	written := make([]string, 0, len(files))
	for _, fh := range files {
		st, err := s.media.Accept(ctx, fh, s.rule, media.DirContact)
		if err != nil {
			s.media.DiscardAll(ctx, written)
			return nil, err
		}
		stored = append(stored, st)
		written = append(written, st.Path)
	}

	msg := models.ContactModel{
		Name:        strings.TrimSpace(dto.Name),
		Email:       strings.TrimSpace(dto.Email),
		Subject:     strings.TrimSpace(dto.Subject),
		Message:     dto.Message,
		Attachments: make([]models.Attachment, 0, len(stored)),
	}
	for _, st := range stored {
		msg.Attachments = append(msg.Attachments, models.Attachment{Filename: st.OriginalName, Path: st.Path})
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		s.media.DiscardAll(ctx, written)
		return nil, apperr.Store(err)
	}

	s.forward(ctx, &msg)
	return &msg, nil
}

func (s *Service) forward(ctx context.Context, msg *models.ContactModel) {
	if s.notify == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	data := mail.ContactNotifyData{
		Name:     msg.Name,
		Email:    msg.Email,
		Subject:  msg.Subject,
		Message:  msg.Message,
		SiteName: s.site,
	}
	for _, a := range msg.Attachments {
		data.Attachments = append(data.Attachments, a.Filename)
		if content, ok := s.read(ctx, a.Path); ok {
			data.Files = append(data.Files, mail.Attachment{Filename: a.Filename, Content: content})
		}
	}
	if err := s.notify.SendContactNotify(ctx, data); err != nil {
		s.log.Warn("contact notification failed", zap.String("contact_id", msg.ID), zap.Error(err))
	}
}

// read loads a stored attachment for mailing. Remote files are listed by name only.
func (s *Service) read(ctx context.Context, path string) ([]byte, bool) {
	rc, err := s.media.Open(ctx, path)
	if err != nil {
		if !errors.Is(err, media.ErrRemote) {
			s.log.Warn("read contact attachment", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		s.log.Warn("read contact attachment", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return b, true
}

// List returns every message, newest first.
func (s *Service) List(ctx context.Context) ([]models.ContactModel, error) {
	items := make([]models.ContactModel, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return items, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/contact")
	g.POST("", h.submit)
	g.GET("", authMW, h.list)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitContactDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := h.svc.Submit(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Message sent successfully!", "contact": msg})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}
