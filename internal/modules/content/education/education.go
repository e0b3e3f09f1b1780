package education

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

type CreateEducationDTO struct {
	Degree      string                `json:"degree"      form:"degree"      binding:"required"`
	Institution string                `json:"institution" form:"institution" binding:"required"`
	Period      string                `json:"period"      form:"period"      binding:"required"`
	Description string                `json:"description" form:"description" binding:"required"`
	Logo        string                `json:"logo"        form:"logo"`
	LogoFile    *multipart.FileHeader `json:"-"           form:"image"`
	Order       int                   `json:"order"       form:"order"`
}

type UpdateEducationDTO struct {
	Degree      *string               `json:"degree"      form:"degree"`
	Institution *string               `json:"institution" form:"institution"`
	Period      *string               `json:"period"      form:"period"`
	Description *string               `json:"description" form:"description"`
	Logo        *string               `json:"logo"        form:"logo"`
	LogoFile    *multipart.FileHeader `json:"-"           form:"image"`
	Order       *int                  `json:"order"       form:"order"`
}

type Service struct {
	items *content.Collection[models.EducationModel]
	logo  content.ImageField
}

func NewService(db *gorm.DB, mh *media.Handler, rule media.Rule) *Service {
	return &Service{
		items: content.NewCollection[models.EducationModel](db, "Education entry"),
		logo:  content.ImageField{Media: mh, Rule: rule, Dir: media.DirImages},
	}
}

func (s *Service) List(ctx context.Context) ([]models.EducationModel, error) {
	return s.items.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.EducationModel, error) {
	return s.items.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, dto *CreateEducationDTO) (*models.EducationModel, error) {
	if err := content.Require(
		content.Field{Name: "degree", Value: dto.Degree},
		content.Field{Name: "institution", Value: dto.Institution},
		content.Field{Name: "period", Value: dto.Period},
		content.Field{Name: "description", Value: dto.Description},
	); err != nil {
		return nil, err
	}
	logo, upload, err := s.logo.Resolve(ctx, dto.LogoFile, &dto.Logo)
	if err != nil {
		return nil, err
	}

	item := models.EducationModel{
		Ordered:     models.Ordered{Order: dto.Order},
		Degree:      strings.TrimSpace(dto.Degree),
		Institution: strings.TrimSpace(dto.Institution),
		Period:      strings.TrimSpace(dto.Period),
		Description: strings.TrimSpace(dto.Description),
		Logo:        *logo,
	}
	err = content.Commit(ctx, s.logo.Media, "", upload, func() error {
		return s.items.Create(ctx, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateEducationDTO) (*models.EducationModel, error) {
	updates := content.Updates{}
	for _, f := range []struct {
		column string
		value  *string
	}{{"degree", dto.Degree}, {"institution", dto.Institution}, {"period", dto.Period}, {"description", dto.Description}} {
		if err := updates.RequiredText(f.column, f.column, f.value); err != nil {
			return nil, err
		}
	}
	updates.Int("sort_order", dto.Order)
	if err := s.logo.Check(dto.LogoFile); err != nil {
		return nil, err
	}

	current, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	logo, upload, err := s.logo.Resolve(ctx, dto.LogoFile, dto.Logo)
	if err != nil {
		return nil, err
	}
	if logo != nil {
		updates["logo"] = *logo
	}

	var item *models.EducationModel
	err = content.Commit(ctx, s.logo.Media, content.Replaced(current.Logo, logo), upload, func() error {
		var err error
		item, err = s.items.Update(ctx, id, updates)
		return err
	})
	return item, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.logo.Media.Discard(ctx, item.Logo)
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/education")
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
	var dto CreateEducationDTO
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
	var dto UpdateEducationDTO
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
	response.Message(c, "Education entry deleted")
}
