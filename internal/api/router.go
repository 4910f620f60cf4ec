package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuselect/voting-portal/internal/api/handler"
	"github.com/campuselect/voting-portal/internal/api/middleware"
	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/service"
	"github.com/campuselect/voting-portal/internal/infrastructure/config"
	mongodb "github.com/campuselect/voting-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/campuselect/voting-portal/internal/infrastructure/db/redis"
	"github.com/campuselect/voting-portal/internal/infrastructure/qr"

	_ "github.com/campuselect/voting-portal/docs"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("voting"))

	// --- Repositories ---
	voterRepo := mongodb.NewVoterRepository(db)
	credentialRepo := mongodb.NewCredentialRepository(db)
	candidateRepo := mongodb.NewCandidateRepository(db)
	voteRepo := mongodb.NewVoteRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	notifier := redisdb.NewValidationNotifier(rdb)

	// --- Services ---
	ttl := cfg.Credential.TTL
	authService := service.NewAuthService(voterRepo, cfg.JWTSecret, cfg.Credential.TokenTTL)
	credentialService := service.NewCredentialService(credentialRepo, voterRepo, ttl, log)
	resolverService := service.NewResolverService(credentialRepo, log)
	validationService := service.NewValidationService(credentialRepo, voterRepo, resolverService, auditRepo, notifier, ttl, log)
	voteService := service.NewVoteService(voteRepo, voterRepo, candidateRepo, credentialRepo, ttl, log)
	candidateService := service.NewCandidateService(candidateRepo, log)
	auditService := service.NewAuditService(auditRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	credentialHandler := handler.NewCredentialHandler(credentialService, validationService, qr.NewEncoder())
	validationHandler := handler.NewValidationHandler(resolverService, validationService)
	voteHandler := handler.NewVoteHandler(voteService)
	candidateHandler := handler.NewCandidateHandler(candidateService)
	auditHandler := handler.NewAuditHandler(auditService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	voterOnly := middleware.RBAC(domain.RoleVoter)
	staff := middleware.RBAC(domain.RoleStaff, domain.RoleAdmin, domain.RoleSuperAdmin)
	admin := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
	reviewer := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleMonitor)

	v1.POST("/credentials", credentialHandler.Issue, voterOnly)
	v1.GET("/credentials/active", credentialHandler.Active, voterOnly)
	v1.GET("/credentials/active/qr", credentialHandler.ActiveQR, voterOnly)
	v1.GET("/credentials/status", credentialHandler.Status, voterOnly)

	v1.POST("/validations/resolve", validationHandler.Resolve, staff)
	v1.POST("/validations", validationHandler.Validate, staff)

	v1.POST("/votes", voteHandler.Cast, voterOnly)

	v1.GET("/candidates", candidateHandler.List)
	v1.POST("/candidates", candidateHandler.Create, admin)
	v1.PATCH("/candidates/:id", candidateHandler.Update, admin)

	v1.GET("/audit", auditHandler.List, reviewer)

	return e
}
