package certification

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCertificationDTO struct {
	Title     string                `json:"title"  form:"title"  binding:"required"`
	Issuer    string                `json:"issuer" form:"issuer" binding:"required"`
	Year      string                `json:"year"   form:"year"   binding:"required"`
	Image     string                `json:"image"  form:"image"`
	ImageFile *multipart.FileHeader `json:"-"      form:"image"`
	Order     int                   `json:"order"  form:"order"`
}

type UpdateCertificationDTO struct {
	Title     *string               `json:"title"  form:"title"`
	Issuer    *string               `json:"issuer" form:"issuer"`
	Year      *string               `json:"year"   form:"year"`
	Image     *string               `json:"image"  form:"image"`
	ImageFile *multipart.FileHeader `json:"-"      form:"image"`
	Order     *int                  `json:"order"  form:"order"`
}

type Service struct {
	items *content.Collection[models.CertificationModel]
	image content.ImageField
}

func NewService(db *gorm.DB, mh *media.Handler, rule media.Rule) *Service {
	return &Service{
		items: content.NewCollection[models.CertificationModel](db, "Certification"),
		image: content.ImageField{Media: mh, Rule: rule, Dir: media.DirImages},
	}
}

func (s *Service) List(ctx context.Context) ([]models.CertificationModel, error) {
	return s.items.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.CertificationModel, error) {
	return s.items.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, dto *CreateCertificationDTO) (*models.CertificationModel, error) {
	if err := content.Require(
		content.Field{Name: "title", Value: dto.Title},
		content.Field{Name: "issuer", Value: dto.Issuer},
		content.Field{Name: "year", Value: dto.Year},
	); err != nil {
		return nil, err
	}
	if binding.File(dto.ImageFile) == nil {
		if err := content.Require(content.Field{Name: "image", Value: dto.Image}); err != nil {
			return nil, err
		}
	}
	image, upload, err := s.image.Resolve(ctx, dto.ImageFile, &dto.Image)
	if err != nil {
		return nil, err
	}

	item := models.CertificationModel{
		Ordered: models.Ordered{Order: dto.Order},
		Title:   strings.TrimSpace(dto.Title),
		Issuer:  strings.TrimSpace(dto.Issuer),
		Year:    strings.TrimSpace(dto.Year),
		Image:   *image,
	}
	err = content.Commit(ctx, s.image.Media, "", upload, func() error {
		return s.items.Create(ctx, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateCertificationDTO) (*models.CertificationModel, error) {
	updates := content.Updates{}
	for _, f := range []struct {
		column string
		value  *string
	}{{"title", dto.Title}, {"issuer", dto.Issuer}, {"year", dto.Year}} {
		if err := updates.RequiredText(f.column, f.column, f.value); err != nil {
			return nil, err
		}
	}
	updates.Int("sort_order", dto.Order)
	if err := s.image.Check(dto.ImageFile); err != nil {
		return nil, err
	}

	current, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if binding.File(dto.ImageFile) == nil && dto.Image != nil {
		if err := updates.RequiredText("image", "image", dto.Image); err != nil {
			return nil, err
		}
	}
	image, upload, err := s.image.Resolve(ctx, dto.ImageFile, dto.Image)
	if err != nil {
		return nil, err
	}
	if image != nil {
		updates["image"] = *image
	}

	var item *models.CertificationModel
	err = content.Commit(ctx, s.image.Media, content.Replaced(current.Image, image), upload, func() error {
		var err error
		item, err = s.items.Update(ctx, id, updates)
		return err
	})
	return item, err
}

// Delete removes the record first; its image goes afterwards, best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.image.Media.Discard(ctx, item.Image)
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/certifications")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCertificationDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCertificationDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Certification deleted")
}
