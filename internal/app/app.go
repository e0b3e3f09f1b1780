package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/bark"
	"github.com/folio-space/core/internal/pkg/cache"
	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/pkg/media"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the external resources the HTTP surface runs on.
type Deps struct {
	DB     *gorm.DB
	Media  media.Store
	Cache  cache.Store // nil disables the public read cache
	Mailer *mail.Sender
	Push   *bark.Service
	Redis  *pkgredis.Client
}

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	deps   Deps
	media  *media.Handler
	logger *zap.Logger
}

// New connects the store, media backend, cache and mailer, then builds the router.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	applyRuntimeSettings(cfg, logger)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	store, err := media.NewStore(cfg)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("media: %w", err)
	}

	deps := Deps{
		DB:     db,
		Media:  store,
		Mailer: mail.New(mail.BuildMailConfig(cfg)),
		Push:   bark.New(cfg.Notify.BarkKey, cfg.Notify.BarkServer, cfg.Notify.SiteName),
	}
	if cfg.Redis.Enable {
		rc, err := pkgredis.Connect(cfg.Redis.URLValue())
		if err != nil {
			database.Close(db)
			return nil, fmt.Errorf("redis: %w", err)
		}
		deps.Redis = rc
		deps.Cache = cache.NewRedis(rc)
	} else {
		deps.Cache = cache.NewMemory(cfg.CacheTTL())
	}

	logger.Info("app ready",
		zap.String("env", cfg.Env),
		zap.String("database", cfg.Database.Driver),
		zap.String("media", store.Name()),
		zap.Bool("redis", cfg.Redis.Enable),
		zap.Bool("mail", deps.Mailer.Enabled()),
		zap.Bool("push", deps.Push.Enabled()),
	)
	return Build(logger, cfg, deps), nil
}

// Build wires the router over already-open dependencies.
func Build(logger *zap.Logger, cfg *config.AppConfig, deps Deps) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	a := &App{
		cfg:    cfg,
		router: router,
		deps:   deps,
		media:  media.NewHandler(deps.Media, logger.Named("media")),
		logger: logger,
	}
	a.registerRoutes()
	return a
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the store and cache connections.
func (a *App) Shutdown() {
	if a.deps.Redis != nil {
		if err := a.deps.Redis.Close(); err != nil {
			a.logger.Warn("redis close", zap.Error(err))
		}
	}
	database.Close(a.deps.DB)
}
