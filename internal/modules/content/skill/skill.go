package skill

import (
	"context"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateSkillDTO struct {
	Name  string `json:"name"  form:"name"  binding:"required"`
	Logo  string `json:"logo"  form:"logo"  binding:"required"`
	Order int    `json:"order" form:"order"`
}

type UpdateSkillDTO struct {
	Name  *string `json:"name"  form:"name"`
	Logo  *string `json:"logo"  form:"logo"`
	Order *int    `json:"order" form:"order"`
}

type Service struct {
	items *content.Collection[models.SkillModel]
}

func NewService(db *gorm.DB) *Service {
	return &Service{items: content.NewCollection[models.SkillModel](db, "Skill")}
}

func (s *Service) List(ctx context.Context) ([]models.SkillModel, error) {
	return s.items.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.SkillModel, error) {
	return s.items.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, dto *CreateSkillDTO) (*models.SkillModel, error) {
	if err := content.Require(
		content.Field{Name: "name", Value: dto.Name},
		content.Field{Name: "logo", Value: dto.Logo},
	); err != nil {
		return nil, err
	}
	item := models.SkillModel{
		Ordered: models.Ordered{Order: dto.Order},
		Name:    strings.TrimSpace(dto.Name),
		Logo:    strings.TrimSpace(dto.Logo),
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateSkillDTO) (*models.SkillModel, error) {
	updates := content.Updates{}
	if err := updates.RequiredText("name", "name", dto.Name); err != nil {
		return nil, err
	}
	if err := updates.RequiredText("logo", "logo", dto.Logo); err != nil {
		return nil, err
	}
	updates.Int("sort_order", dto.Order)
	return s.items.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.items.Delete(ctx, id)
	return err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/skills")
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
	var dto CreateSkillDTO
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
	var dto UpdateSkillDTO
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
	response.Message(c, "Skill deleted")
}
