package profile

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db    *gorm.DB
	photo content.ImageField
}

func NewService(db *gorm.DB, mh *media.Handler, rule media.Rule) *Service {
	return &Service{db: db, photo: content.ImageField{Media: mh, Rule: rule, Dir: media.DirUploads}}
}

// Get returns the profile, or nil when none has been written yet.
func (s *Service) Get(ctx context.Context) (*models.ProfileModel, error) {
	var p models.ProfileModel
	err := s.db.WithContext(ctx).Order("created_at ASC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &p, nil
}

// Upsert creates the profile or updates the existing one field by field.
// A new photo upload wins over deletePhoto; either releases the old photo
// once the record is saved.
func (s *Service) Upsert(ctx context.Context, dto *UpsertProfileDTO) (*models.ProfileModel, error) {
	about, err := dto.about()
	if err != nil {
		return nil, err
	}
	if err := s.photo.Check(dto.PhotoFile); err != nil {
		return nil, err
	}

	updates := content.Updates{}
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"name", dto.Name}, {"title", dto.Title}, {"subtitle", dto.Subtitle},
		{"email", dto.Email}, {"phone", dto.Phone}, {"github", dto.GitHub},
		{"linkedin", dto.LinkedIn}, {"location", dto.Location},
		{"education", dto.Education}, {"focus", dto.Focus},
	} {
		updates.Text(f.column, f.value)
	}
	if about != nil {
		updates.Text("about_paragraph1", about.Paragraph1)
		updates.Text("about_paragraph2", about.Paragraph2)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	oldPhoto := ""
	if current != nil {
		oldPhoto = current.Photo
	}

	photo, upload, err := s.photo.Resolve(ctx, dto.PhotoFile, dto.Photo)
	if err != nil {
		return nil, err
	}
	if upload == nil && dto.DeletePhoto {
		cleared := ""
		photo = &cleared
	}
	if photo != nil {
		updates["photo"] = *photo
	}

	var out *models.ProfileModel
	err = content.Commit(ctx, s.photo.Media, content.Replaced(oldPhoto, photo), upload, func() error {
		if current == nil {
			var err error
			out, err = s.create(ctx, updates)
			return err
		}
		if len(updates) > 0 {
			if err := s.db.WithContext(ctx).Model(current).Updates(map[string]any(updates)).Error; err != nil {
				return apperr.Store(err)
			}
		}
		var err error
		out, err = s.Get(ctx)
		return err
	})
	return out, err
}

// create inserts the first profile under ProfileID. When another request
// inserted it first, updates are applied to that row instead.
func (s *Service) create(ctx context.Context, updates content.Updates) (*models.ProfileModel, error) {
	p := newProfile(updates)
	p.ID = models.ProfileID
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return nil, apperr.Store(res.Error)
	}
	if res.RowsAffected == 1 {
		return p, nil
	}
	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.ProfileModel{}).
			Where("id = ?", models.ProfileID).
			Updates(map[string]any(updates)).Error
		if err != nil {
			return nil, apperr.Store(err)
		}
	}
	return s.Get(ctx)
}

func newProfile(u content.Updates) *models.ProfileModel {
	str := func(column string) string {
		v, _ := u[column].(string)
		return v
	}
	return &models.ProfileModel{
		Name:      str("name"),
		Title:     str("title"),
		Subtitle:  str("subtitle"),
		Email:     str("email"),
		Phone:     str("phone"),
		GitHub:    str("github"),
		LinkedIn:  str("linkedin"),
		Photo:     str("photo"),
		Location:  str("location"),
		Education: str("education"),
		Focus:     str("focus"),
		About: models.About{
			Paragraph1: str("about_paragraph1"),
			Paragraph2: str("about_paragraph2"),
		},
	}
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile")
	g.GET("", h.get)

	a := g.Group("", authMW)
	a.POST("", h.upsert)
	a.PUT("", h.upsert)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if p == nil {
		response.OK(c, gin.H{})
		return
	}
	response.OK(c, p)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertProfileDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.svc.Upsert(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}
