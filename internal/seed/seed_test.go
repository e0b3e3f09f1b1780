package seed

import (
	"context"
	"testing"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = config.AdminConfig{Email: "Owner@Example.com", Username: "owner", Password: "admin123"}

func TestRunIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	first, err := Run(ctx, db, admin, Options{}, nil)
	require.NoError(t, err)
	assert.True(t, first.AdminCreated)
	assert.True(t, first.ProfileCreated)

	second, err := Run(ctx, db, admin, Options{}, nil)
	require.NoError(t, err)
	assert.False(t, second.AdminCreated)
	assert.False(t, second.ProfileCreated)

	var profiles, admins int64
	require.NoError(t, db.Model(&models.ProfileModel{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.AdminModel{}).Count(&admins).Error)
	assert.EqualValues(t, 1, profiles)
	assert.EqualValues(t, 1, admins)

	res, err := auth.NewService(db).Login(ctx, "owner@example.com", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestRunReset(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.SkillModel{Name: "Go", Logo: "go.svg"}).Error)
	require.NoError(t, db.Create(&models.ProfileModel{Name: "Old"}).Error)
	require.NoError(t, db.Create(&models.ContactModel{Name: "V", Email: "v@example.com", Subject: "s", Message: "m"}).Error)

	res, err := Run(ctx, db, admin, Options{Reset: true}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Cleared)
	assert.True(t, res.ProfileCreated)

	var skills, contacts int64
	require.NoError(t, db.Unscoped().Model(&models.SkillModel{}).Count(&skills).Error)
	require.NoError(t, db.Model(&models.ContactModel{}).Count(&contacts).Error)
	assert.Zero(t, skills)
	assert.EqualValues(t, 1, contacts)

	var p models.ProfileModel
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "Your Name", p.Name)
}
