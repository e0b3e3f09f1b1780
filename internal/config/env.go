package config

import (
	"strconv"
	"strings"
)

// applyEnv overlays environment variables on top of the file config.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			setString(dst, v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	num("PORT", &cfg.Port)
	str("APP_ENV", &cfg.Env)
	str("JWT_SECRET", &cfg.JWTSecret)
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}

	str("DATABASE_DRIVER", &cfg.Database.Driver)
	str("DATABASE_URL", &cfg.Database.DSN)

	if v, ok := lookup("REDIS_URL"); ok && strings.TrimSpace(v) != "" {
		cfg.Redis.URL = strings.TrimSpace(v)
		cfg.Redis.Enable = true
	}

	str("MEDIA_DRIVER", &cfg.Media.Driver)
	str("MEDIA_PUBLIC_BASE_URL", &cfg.Media.PublicBaseURL)
	str("S3_BUCKET", &cfg.Media.S3.Bucket)
	str("S3_REGION", &cfg.Media.S3.Region)
	str("S3_ENDPOINT", &cfg.Media.S3.Endpoint)
	str("S3_ACCESS_KEY_ID", &cfg.Media.S3.AccessKeyID)
	str("S3_SECRET_ACCESS_KEY", &cfg.Media.S3.SecretAccessKey)
	str("CLOUDINARY_URL", &cfg.Media.Cloudinary.URL)

	str("EMAIL_HOST", &cfg.Mail.Host)
	num("EMAIL_PORT", &cfg.Mail.Port)
	str("EMAIL_USER", &cfg.Mail.User)
	str("EMAIL_PASSWORD", &cfg.Mail.Pass)
	str("RECIPIENT_EMAIL", &cfg.Mail.Recipient)
	str("RESEND_API_KEY", &cfg.Mail.ResendKey)
	str("RESEND_FROM_EMAIL", &cfg.Mail.From)
	_, userSet := lookup("EMAIL_USER")
	_, resendSet := lookup("RESEND_API_KEY")
	if (userSet && cfg.Mail.User != "" && cfg.Mail.Pass != "") || (resendSet && cfg.Mail.ResendKey != "") {
		cfg.Mail.Enable = true
	}

	str("BARK_KEY", &cfg.Notify.BarkKey)
	str("BARK_SERVER", &cfg.Notify.BarkServer)
	str("SITE_NAME", &cfg.Notify.SiteName)

	str("ADMIN_EMAIL", &cfg.Admin.Email)
	str("ADMIN_USERNAME", &cfg.Admin.Username)
	str("ADMIN_PASSWORD", &cfg.Admin.Password)

	str("STATIC_DIR", &cfg.Paths.Static)
	str("LOG_DIR", &cfg.Paths.Logs)
}
