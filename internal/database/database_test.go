package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/database/dbtest"
	"github.com/folio-space/core/internal/models"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site.db")
	db, err := database.Open(config.DriverSQLite, path, logger.Silent)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db))
	assert.NoError(t, database.Ping(context.Background(), db))
	assert.FileExists(t, path)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("postgres", "x", logger.Silent)
	assert.Error(t, err)
}

func TestDuplicateAdminEmail(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.AdminModel{Username: "a", Email: "a@example.com", Password: "x"}).Error)

	err := db.Create(&models.AdminModel{Username: "b", Email: "a@example.com", Password: "y"}).Error
	require.Error(t, err)
	assert.True(t, database.IsDuplicateError(err))
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, database.IsDuplicateError(nil))
	assert.False(t, database.IsDuplicateError(errors.New("boom")))
	assert.True(t, database.IsDuplicateError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, database.IsDuplicateError(&gomysql.MySQLError{Number: 1045}))
}

func TestListOrderTiesByCreation(t *testing.T) {
	db := dbtest.New(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"b", "a", "c"} {
		s := models.SkillModel{Name: name, Logo: "/l.svg"}
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if name == "c" {
			s.Order = -1
		}
		require.NoError(t, db.Create(&s).Error)
	}

	var got []models.SkillModel
	require.NoError(t, db.Order(models.ListOrder).Find(&got).Error)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].Name, got[1].Name, got[2].Name})
}
