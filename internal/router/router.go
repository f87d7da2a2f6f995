package router

import (
	"time"

	"github.com/sahilo5/delval-report-management/internal/config"
	"github.com/sahilo5/delval-report-management/internal/handler"
	"github.com/sahilo5/delval-report-management/internal/middleware"
	"github.com/sahilo5/delval-report-management/internal/model"
	"github.com/sahilo5/delval-report-management/internal/repository"
	"github.com/sahilo5/delval-report-management/internal/service"
	"github.com/sahilo5/delval-report-management/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// dashboardRoutes maps each role to the frontend landing page served to it
// after login.
var dashboardRoutes = map[string]string{
	model.RoleAssemblyEngineer: "/dashboard/assembly-engineer",
	model.RoleAssembler:        "/dashboard/assembler",
	model.RoleTester:           "/dashboard/tester",
	model.RolePaintingEngineer: "/dashboard/painting-engineer",
	model.RolePainter:          "/dashboard/painter",
	model.RoleBlaster:          "/dashboard/blaster",
	model.RoleNamePlatePrinter: "/dashboard/name-plate-printer",
	model.RoleFinisher:         "/dashboard/finisher",
	model.RoleQAEngineer:       "/dashboard/qa-engineer",
	model.RoleAdmin:            "/dashboard/admin",
}

// allRoles covers every production role, for endpoints the whole floor reads.
var allRoles = []string{
	model.RoleAssemblyEngineer,
	model.RoleAssembler,
	model.RoleTester,
	model.RolePaintingEngineer,
	model.RolePainter,
	model.RoleBlaster,
	model.RoleNamePlatePrinter,
	model.RoleFinisher,
	model.RoleQAEngineer,
	model.RoleAdmin,
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	unitRepo := repository.NewUnitRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	orderSvc := service.NewOrderService(orderRepo, unitRepo)
	unitSvc := service.NewUnitService(orderRepo, unitRepo, rdb, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, unitSvc)
	unitsH := handler.NewUnitsHandler(unitSvc)
	reportsH := handler.NewReportsHandler(unitSvc)
	dashboardH := handler.NewDashboardHandler(unitSvc, dashboardRoutes)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

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
		// Order intake is restricted to the assembly office.
		v1.POST("/orders/intake", middleware.RequireRole(model.RoleAssemblyEngineer, model.RoleAdmin), ordersH.Intake)

		// Every role on the floor reads the order list and detail views.
		v1.GET("/orders", middleware.RequireRole(allRoles...), ordersH.List)
		v1.GET("/orders/:order_no", middleware.RequireRole(allRoles...), ordersH.Detail)

		// Stage advancement — the per-stage role gate lives in the service,
		// so the route only requires an authenticated production role.
		v1.POST("/orders/:order_no/advance", middleware.RequireRole(allRoles...), ordersH.Advance)

		// Heat annexure reports
		reports := v1.Group("/orders/:order_no", middleware.RequireRole(model.RoleAssemblyEngineer, model.RoleQAEngineer, model.RoleAdmin))
		{
			reports.GET("/report", reportsH.HTML)
			reports.GET("/report.pdf", reportsH.PDF)
		}

		// Unit progress — assemblers and their engineers
		units := v1.Group("/units", middleware.RequireRole(model.RoleAssembler, model.RoleAssemblyEngineer, model.RoleAdmin))
		{
			units.PUT("/:series/:id/fields", unitsH.SaveFields)
			units.POST("/:series/:id/complete", unitsH.Complete)
		}

		// Dashboards
		v1.GET("/dashboard", middleware.RequireRole(allRoles...), dashboardH.Route)
		v1.GET("/dashboard/summary", middleware.RequireRole(allRoles...), dashboardH.Summary)

		// User administration — admin only
		users := v1.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
