package mail

import (
	"github.com/folio-space/core/internal/config"
)

// BuildMailConfig constructs a mail.Config from the application config.
func BuildMailConfig(cfg *config.AppConfig) Config {
	if cfg == nil {
		return Config{}
	}
	mc := Config{
		Enable:    cfg.Mail.Enable,
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		User:      cfg.Mail.User,
		Pass:      cfg.Mail.Pass,
		From:      cfg.Mail.From,
		Recipient: cfg.Mail.Recipient,
	}
	if cfg.Mail.ResendKey != "" {
		mc.UseResend = true
		mc.ResendKey = cfg.Mail.ResendKey
		if mc.From == "" {
			mc.From = "onboarding@resend.dev"
		}
	}
	return mc
}
