package project

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

type CreateProjectDTO struct {
	Title       string             `json:"title"       form:"title"       binding:"required"`
	Description string             `json:"description" form:"description" binding:"required"`
	Tags        models.StringArray `json:"tags"        form:"tags"`
	CodeLink    string             `json:"codeLink"    form:"codeLink"`
	DemoLink    string             `json:"demoLink"    form:"demoLink"`
	Order       int                `json:"order"       form:"order"`
}

func (d *CreateProjectDTO) NormalizeForm() { d.Tags = models.FormList(d.Tags) }

type UpdateProjectDTO struct {
	Title       *string            `json:"title"       form:"title"`
	Description *string            `json:"description" form:"description"`
	Tags        models.StringArray `json:"tags"        form:"tags"`
	CodeLink    *string            `json:"codeLink"    form:"codeLink"`
	DemoLink    *string            `json:"demoLink"    form:"demoLink"`
	Order       *int               `json:"order"       form:"order"`
}

func (d *UpdateProjectDTO) NormalizeForm() { d.Tags = models.FormList(d.Tags) }

type Service struct {
	items *content.Collection[models.ProjectModel]
}

func NewService(db *gorm.DB) *Service {
	return &Service{items: content.NewCollection[models.ProjectModel](db, "Project")}
}

func (s *Service) List(ctx context.Context) ([]models.ProjectModel, error) {
	return s.items.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.ProjectModel, error) {
	return s.items.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, dto *CreateProjectDTO) (*models.ProjectModel, error) {
	if err := content.Require(
		content.Field{Name: "title", Value: dto.Title},
		content.Field{Name: "description", Value: dto.Description},
	); err != nil {
		return nil, err
	}
	item := models.ProjectModel{
		Ordered:     models.Ordered{Order: dto.Order},
		Title:       strings.TrimSpace(dto.Title),
		Description: strings.TrimSpace(dto.Description),
		Tags:        models.CleanList(dto.Tags),
		CodeLink:    strings.TrimSpace(dto.CodeLink),
		DemoLink:    strings.TrimSpace(dto.DemoLink),
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	updates := content.Updates{}
	if err := updates.RequiredText("title", "title", dto.Title); err != nil {
		return nil, err
	}
	if err := updates.RequiredText("description", "description", dto.Description); err != nil {
		return nil, err
	}
	updates.List("tags", dto.Tags)
	updates.Text("code_link", dto.CodeLink)
	updates.Text("demo_link", dto.DemoLink)
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
	g := rg.Group("/projects")
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
	var dto CreateProjectDTO
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
	var dto UpdateProjectDTO
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
	response.Message(c, "Project deleted")
}
