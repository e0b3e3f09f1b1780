// Package seed bootstraps a fresh store: the admin credential and a
// placeholder profile.
package seed

import (
	"context"
	"fmt"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls a seed run.
type Options struct {
	// Reset hard-deletes the profile and every content collection first.
	Reset bool
}

// Result reports what a seed run changed.
type Result struct {
	AdminCreated   bool
	ProfileCreated bool
	Cleared        int64
}

var resetModels = []any{
	&models.ProfileModel{},
	&models.SkillModel{},
	&models.ProjectModel{},
	&models.CertificationModel{},
	&models.EducationModel{},
	&models.InterestModel{},
}

// Run upserts the configured admin and creates a starter profile when none exists.
func Run(ctx context.Context, db *gorm.DB, admin config.AdminConfig, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	res := &Result{}

	if opts.Reset {
		for _, m := range resetModels {
			tx := db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(m)
			if tx.Error != nil {
				return nil, fmt.Errorf("reset: %w", tx.Error)
			}
			res.Cleared += tx.RowsAffected
		}
		log.Info("content cleared", zap.Int64("rows", res.Cleared))
	}

	a, created, err := auth.NewService(db).UpsertAdmin(ctx, admin.Email, admin.Username, admin.Password)
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	res.AdminCreated = created
	log.Info("admin ready", zap.String("email", a.Email), zap.Bool("created", created))

	var n int64
	if err := db.WithContext(ctx).Model(&models.ProfileModel{}).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		insert := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(starterProfile(a.Email))
		if insert.Error != nil {
			return nil, fmt.Errorf("profile: %w", insert.Error)
		}
		res.ProfileCreated = insert.RowsAffected == 1
		if res.ProfileCreated {
			log.Info("starter profile created")
		}
	}
	return res, nil
}

func starterProfile(email string) *models.ProfileModel {
	return &models.ProfileModel{
		Base:     models.Base{ID: models.ProfileID},
		Name:     "Your Name",
		Title:    "Software Engineer",
		Subtitle: "Welcome to my portfolio",
		Email:    email,
		Location: "Earth",
		Focus:    "Building things for the web",
		About: models.About{
			Paragraph1: "Write a short introduction here.",
			Paragraph2: "Edit this profile from the admin console.",
		},
	}
}
