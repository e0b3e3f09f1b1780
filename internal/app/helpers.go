package app

import (
	"strings"

	"github.com/folio-space/core/internal/config"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	}
	if jwtpkg.UsingDefaultSecret() {
		logger.Warn("jwt_secret is not set or uses the development default; set JWT_SECRET before deploying")
	}
}
