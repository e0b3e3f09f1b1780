package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credential and issues an 8 hour session token. Unknown
// emails and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var admin models.AdminModel
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, apperr.InvalidCredentials("")
		}
		return nil, apperr.Store(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials("")
	}

	token, err := jwtpkg.Sign(admin.ID, admin.Email, jwtpkg.DefaultTTL)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &LoginResult{Token: token, Admin: toInfo(&admin)}, nil
}

func (s *Service) find(ctx context.Context, id string) (*models.AdminModel, error) {
	var admin models.AdminModel
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Admin not found")
		}
		return nil, apperr.Store(err)
	}
	return &admin, nil
}

func (s *Service) Me(ctx context.Context, id string) (*AdminInfo, error) {
	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toInfo(admin)
	return &info, nil
}

func (s *Service) PasswordInfo(ctx context.Context, id string) (*PasswordInfo, error) {
	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	info := &PasswordInfo{HasPassword: admin.Password != ""}
	if info.HasPassword {
		info.PasswordMasked = strings.Repeat("•", maskLength)
	}
	return info, nil
}

// ChangePassword replaces the stored hash. Tokens already issued stay valid until they expire.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < minPasswordLength {
		return apperr.Validation("New password must be at least 6 characters long")
	}
	admin, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(current)); err != nil {
		return apperr.InvalidCredentials("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return apperr.Store(err)
	}
	res := s.db.WithContext(ctx).Model(&models.AdminModel{}).Where("id = ?", admin.ID).Update("password", string(hash))
	if res.Error != nil {
		return apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Admin not found")
	}
	return nil
}

// UpsertAdmin creates the administrator or resets the existing one's
// username and password. created reports which happened.
func (s *Service) UpsertAdmin(ctx context.Context, email, username, password string) (admin *models.AdminModel, created bool, err error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, apperr.Validation("admin email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, false, apperr.Store(err)
	}

	var existing models.AdminModel
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		existing.Username = username
		existing.Password = string(hash)
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, apperr.Store(err)
		}
		return &existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, apperr.Store(err)
	}

	admin = &models.AdminModel{Username: username, Email: email, Password: string(hash)}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if database.IsDuplicateError(err) {
			// lost a race with a concurrent seed
			return s.UpsertAdmin(ctx, email, username, password)
		}
		return nil, false, apperr.Store(err)
	}
	return admin, true, nil
}

func toInfo(a *models.AdminModel) AdminInfo {
	return AdminInfo{ID: a.ID, Username: a.Username, Email: a.Email}
}
