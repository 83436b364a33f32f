package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/handler"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/middleware"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/service"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, programCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cat := catalog.Default()
	programClient := infra.NewProgramClient(cfg.ProgramServiceURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	occasionRepo := repository.NewOccasionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	occasionSvc := service.NewOccasionService(occasionRepo, cat, programClient, dispatcher, cfg)
	librarySvc := service.NewLibraryService(programClient, programCB, rdb)
	reportSvc := service.NewReportService(reportRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	occasionsH := handler.NewOccasionsHandler(occasionSvc)
	catalogH := handler.NewCatalogHandler(cat)
	libraryH := handler.NewLibraryHandler(librarySvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, programCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: lion (floor operator), chairman, admin — declared per-endpoint
		anyRole := middleware.RequireRole("lion", "chairman", "admin")
		officers := middleware.RequireRole("chairman", "admin")

		occ := v1.Group("/occasions")
		{
			occ.POST("", anyRole, occasionsH.Create)
			occ.GET("", anyRole, occasionsH.List)
			occ.GET("/:id", anyRole, occasionsH.Get)
			occ.PUT("/:id", anyRole, occasionsH.Update)
			occ.GET("/:id/summary", anyRole, occasionsH.Summary)
			occ.POST("/:id/submit", anyRole, occasionsH.Submit)
			// Finalization locks the record and starts the report pipeline
			occ.POST("/:id/finalize", officers, occasionsH.Finalize)
			occ.GET("/:id/export", anyRole, occasionsH.Export)
			occ.POST("/import", officers, occasionsH.Import)
		}

		ref := v1.Group("/catalog", anyRole)
		{
			ref.GET("/paper-types", catalogH.PaperTypes)
			ref.GET("/pos-items", catalogH.POSItems)
			ref.GET("/session-types", catalogH.SessionTypes)
			ref.GET("/programs/:sessionType", catalogH.Program)
		}

		v1.GET("/pulltabs/library/:id", anyRole, libraryH.Lookup)

		reports := v1.Group("/reports", officers)
		{
			reports.GET("/:occasion_id", reportsH.GetByOccasion)
			reports.GET("/pdf/:id", reportsH.DownloadPDF)
			reports.POST("/:id/retry", reportsH.Retry)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
