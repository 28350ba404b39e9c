package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/founderflow/founderflow/internal/api/handler"
	"github.com/founderflow/founderflow/internal/api/middleware"
	"github.com/founderflow/founderflow/internal/core/ports"
	"github.com/founderflow/founderflow/internal/core/service"
	mongodb "github.com/founderflow/founderflow/internal/infrastructure/db/mongo"
	redisdedup "github.com/founderflow/founderflow/internal/infrastructure/db/redis"
	"github.com/founderflow/founderflow/internal/infrastructure/storage"
	"github.com/founderflow/founderflow/internal/pkg/config"
	"github.com/founderflow/founderflow/internal/webhook"
)

// Deps carries the externally constructed dependencies the router wires
// together. The notifier is started by the caller; the router only enqueues.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Cfg      *config.Config
	Mailer   ports.Mailer
	Notifier service.TaskNotifier
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))
	e.Use(echoprometheus.NewMiddleware("founderflow"))

	cfg := deps.Cfg

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	roleRepo := mongodb.NewRoleRepository(deps.Mongo)
	profileRepo := mongodb.NewProfileRepository(deps.Mongo)
	projectRepo := mongodb.NewProjectRepository(deps.Mongo)
	taskRepo := mongodb.NewTaskRepository(deps.Mongo)
	financeRepo := mongodb.NewFinanceRepository(deps.Mongo)

	// --- Services ---
	resolver := service.NewRoleResolver(roleRepo, deps.Log)
	authService := service.NewAuthService(userRepo, profileRepo, resolver, deps.Mailer,
		cfg.JWTSecret, cfg.TokenTTL, cfg.Email.AuthURL, deps.Log)
	projectService := service.NewProjectService(projectRepo, deps.Log)
	taskService := service.NewTaskService(taskRepo, projectRepo, deps.Notifier, deps.Log)
	financeService := service.NewFinanceService(financeRepo, deps.Log)
	dashboardService := service.NewDashboardService(projectRepo, taskRepo, financeRepo, deps.Log)
	adminService := service.NewUserAdminService(userRepo, profileRepo, roleRepo, taskRepo, resolver, deps.Log)

	avatarStore := storage.NewAvatarStore(afero.NewOsFs(), cfg.Avatar.Dir, cfg.Avatar.BaseURL)
	profileService := service.NewProfileService(profileRepo, avatarStore, deps.Log)

	dedup := redisdedup.NewDedupChecker(deps.Redis)
	webhookService := service.NewEmailWebhookService(deps.Mailer, dedup, cfg.Email.AuthURL, deps.Log)

	var verifier *webhook.Verifier
	if cfg.Email.HookSecret != "" {
		v, err := webhook.NewVerifier(cfg.Email.HookSecret)
		if err != nil {
			return nil, err
		}
		verifier = v
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	financeHandler := handler.NewFinanceHandler(financeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(adminService)
	profileHandler := handler.NewProfileHandler(profileService)
	webhookHandler := handler.NewWebhookHandler(webhookService, verifier, deps.Log)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/reset-password", authHandler.ResetPassword)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMW)
	v1.GET("/projects", projectHandler.List)
	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.GET("/projects/:id/tasks", taskHandler.ListByProject)
	v1.POST("/projects/:id/tasks", taskHandler.Create)
	v1.GET("/tasks", taskHandler.List)
	v1.GET("/dashboard/stats", dashboardHandler.Stats)
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)
	v1.POST("/profile/avatar", profileHandler.UploadAvatar)

	// Admin-only surfaces. The delete endpoint takes no RBAC middleware: its
	// service re-resolves the caller's role from the store and owns the exact
	// 403 body.
	v1.GET("/finance", financeHandler.List, middleware.RBAC("admin"))
	v1.POST("/finance", financeHandler.Create, middleware.RBAC("admin"))
	v1.GET("/members", adminHandler.ListMembers, middleware.RBAC("admin"))
	v1.POST("/users/delete", adminHandler.DeleteUser)

	// --- Webhooks (signature-verified, no JWT) ---
	e.POST("/webhooks/send-email", webhookHandler.SendEmail)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// Locally stored avatars are served straight from disk.
	e.Static("/avatars", cfg.Avatar.Dir)

	return e, nil
}
