package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/emotional-truth/portal-api/docs"
	"github.com/emotional-truth/portal-api/internal/api/handler"
	"github.com/emotional-truth/portal-api/internal/api/middleware"
	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
	"github.com/emotional-truth/portal-api/internal/infrastructure/config"
)

// Deps bundles the wired services the router exposes. Services are built
// in main after the state bootstrap so the router never sees a half-loaded
// cache.
type Deps struct {
	Accounts ports.AccountService
	Ads      ports.AdService
	Settings ports.SettingsService
	Assets   ports.AssetService
	Prefs    ports.PreferenceService
	Sessions ports.SessionStore
	Mongo    *mongo.Database
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Accounts)
	userHandler := handler.NewUserHandler(deps.Accounts)
	adHandler := handler.NewAdHandler(deps.Ads)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	assetHandler := handler.NewAssetHandler(deps.Assets)
	prefHandler := handler.NewPreferenceHandler(deps.Prefs)

	authed := middleware.Auth(cfg.JWTSecret, deps.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/recover", authHandler.Recover)
	e.POST("/v1/auth/logout", authHandler.Logout, authed)
	e.GET("/v1/auth/me", authHandler.Me, authed)

	// --- User management (admin panel) ---
	users := e.Group("/v1/users", authed, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Ads: the carousel is visible to every signed-in user, managing
	// it is admin-only ---
	e.GET("/v1/ads", adHandler.List, authed)
	e.POST("/v1/ads", adHandler.Create, authed, adminOnly)
	e.PUT("/v1/ads/:id", adHandler.Update, authed, adminOnly)
	e.DELETE("/v1/ads/:id", adHandler.Delete, authed, adminOnly)

	// --- Site settings: the logo is public (login page renders it) ---
	e.GET("/v1/settings/logo", settingsHandler.Logo)
	e.PUT("/v1/settings/logo", settingsHandler.UpdateLogo, authed, adminOnly)
	e.PUT("/v1/settings/admin-password", settingsHandler.UpdateAdminPassword, authed, adminOnly)

	// --- Assets: uploads are admin-only, downloads back the public URLs ---
	e.POST("/v1/assets/:bucket", assetHandler.Upload, authed, adminOnly)
	e.GET("/assets/:bucket/:key", assetHandler.Download)

	// --- Preferences ---
	e.GET("/v1/preferences/language", prefHandler.Language, authed)
	e.PUT("/v1/preferences/language", prefHandler.SetLanguage, authed)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
