package app

import (
	"path/filepath"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/contact"
	"github.com/folio-space/core/internal/modules/content/certification"
	"github.com/folio-space/core/internal/modules/content/education"
	"github.com/folio-space/core/internal/modules/content/interest"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/modules/content/project"
	"github.com/folio-space/core/internal/modules/content/resume"
	"github.com/folio-space/core/internal/modules/content/skill"
	"github.com/folio-space/core/internal/modules/health"
	"github.com/folio-space/core/internal/pkg/media"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// routeRegistrar is implemented by every module handler.
type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc)
}

// Paths the public read cache never serves.
var httpCacheSkipPaths = []string{
	apiPrefix + "/health*",
	apiPrefix + "/auth*",
	apiPrefix + "/resume/download",
	apiPrefix + "/resume/history",
	apiPrefix + "/contact",
}

func (a *App) registerRoutes() {
	r := a.router
	db := a.deps.DB
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	if local, ok := a.deps.Media.(*media.LocalStore); ok {
		r.Static("/"+media.DirUploads, filepath.Join(local.Root(), media.DirUploads))
		r.Static("/"+media.DirImages, filepath.Join(local.Root(), media.DirImages))
	}

	api := r.Group(apiPrefix)
	api.Use(middleware.HTTPCache(a.deps.Cache, middleware.HTTPCacheOptions{
		TTL:       a.cfg.CacheTTL(),
		Disable:   a.cfg.Cache.Disable,
		SkipPaths: httpCacheSkipPaths,
		Logger:    a.logger.Named("cache"),
	}))

	imageRule := media.ImageRule(a.cfg.MaxUploadBytes())
	handlers := []routeRegistrar{
		health.NewHandler(db, a.cfg.LogDir(), a.deps.Mailer),
		auth.NewHandler(auth.NewService(db)),
		profile.NewHandler(profile.NewService(db, a.media, imageRule)),
		skill.NewHandler(skill.NewService(db)),
		project.NewHandler(project.NewService(db)),
		certification.NewHandler(certification.NewService(db, a.media, imageRule)),
		education.NewHandler(education.NewService(db, a.media, imageRule)),
		interest.NewHandler(interest.NewService(db, a.media, imageRule)),
		resume.NewHandler(resume.NewService(db, a.media)),
		contact.NewHandler(contact.NewService(db, a.media, contact.Notifiers{a.deps.Mailer, a.deps.Push}, a.logger.Named("contact")).
			WithSiteName(a.cfg.Notify.SiteName)),
	}
	for _, h := range handlers {
		h.RegisterRoutes(api, authMW)
	}
}
