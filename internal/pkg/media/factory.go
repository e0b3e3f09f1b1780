package media

import (
	"fmt"

	"github.com/folio-space/core/internal/config"
)

// NewStore builds the store selected by media.driver.
func NewStore(cfg *config.AppConfig) (Store, error) {
	switch cfg.Media.Driver {
	case config.MediaS3:
		return NewS3Store(cfg.Media.S3, cfg.Media.PublicBaseURL), nil
	case config.MediaCloudinary:
		return NewCloudinaryStore(cfg.Media.Cloudinary.URL, cfg.Media.Cloudinary.Folder)
	case config.MediaLocal, "":
		return NewLocalStore(cfg.StaticDir())
	default:
		return nil, fmt.Errorf("unsupported media driver %q", cfg.Media.Driver)
	}
}
