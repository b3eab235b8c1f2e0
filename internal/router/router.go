package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-match-api/internal/handler"
	"github.com/noah-isme/course-match-api/internal/middleware"
	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	"github.com/noah-isme/course-match-api/pkg/config"
	"github.com/noah-isme/course-match-api/pkg/logger"
	"github.com/noah-isme/course-match-api/pkg/middleware/cors"
	"github.com/noah-isme/course-match-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Courses       *handler.CourseHandler
	Lecturers     *handler.LecturerHandler
	Students      *handler.StudentHandler
	Matches       *handler.MatchHandler
	Registrations *handler.RegistrationHandler
	Dashboard     *handler.DashboardHandler
}

// New assembles the gin engine with middleware, system endpoints and the
// versioned API routes.
func New(cfg *config.Config, log *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestid.Middleware())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(cors.New(cfg.CORS.AllowedOrigins))
	engine.Use(middleware.Metrics(metrics))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group(cfg.APIPrefix)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", middleware.JWT(auth), h.Auth.Logout)
		authGroup.GET("/me", middleware.JWT(auth), h.Auth.Me)
		authGroup.PUT("/password", middleware.JWT(auth), h.Auth.ChangePassword)
	}

	courses := api.Group("/courses", middleware.JWT(auth))
	{
		courses.GET("", h.Courses.List)
		courses.GET("/:id", h.Courses.Get)
		courses.GET("/:id/registrations", middleware.RequireRoles(models.RoleAdmin, models.RoleLecturer), h.Registrations.ByCourse)
		courses.POST("", middleware.RequireRoles(models.RoleAdmin), h.Courses.Create)
		courses.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), h.Courses.Update)
		courses.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Courses.Delete)
	}

	lecturers := api.Group("/lecturers", middleware.JWT(auth))
	{
		lecturers.GET("", h.Lecturers.List)
		lecturers.GET("/:id", h.Lecturers.Get)
		lecturers.GET("/:id/matches", h.Lecturers.Matches)
		lecturers.POST("", middleware.RequireRoles(models.RoleAdmin), h.Lecturers.Create)
		lecturers.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), h.Lecturers.Update)
		lecturers.PATCH("/:id/availability", middleware.RequireRoles(models.RoleAdmin, models.RoleLecturer), h.Lecturers.SetAvailability)
		lecturers.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Lecturers.Delete)
	}

	students := api.Group("/students", middleware.JWT(auth))
	{
		students.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleLecturer), h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.GET("/:id/registrations", h.Students.Registrations)
		students.POST("", middleware.RequireRoles(models.RoleAdmin), h.Students.Create)
		students.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), h.Students.Update)
		students.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Students.Delete)
	}

	matches := api.Group("/matches", middleware.JWT(auth))
	{
		matches.GET("", h.Matches.List)
		matches.GET("/unmatched", h.Matches.Unmatched)
		matches.POST("/auto", middleware.RequireRoles(models.RoleAdmin), h.Matches.AutoMatch)
		matches.POST("/rematch", middleware.RequireRoles(models.RoleAdmin), h.Matches.Rematch)
		matches.POST("/cleanup", middleware.RequireRoles(models.RoleAdmin), h.Matches.Cleanup)
		matches.POST("", middleware.RequireRoles(models.RoleAdmin), h.Matches.Create)
		matches.PATCH("/:id", middleware.RequireRoles(models.RoleAdmin), h.Matches.Update)
		matches.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Matches.Delete)
	}

	registrations := api.Group("/registrations", middleware.JWT(auth))
	{
		registrations.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Registrations.Register)
		registrations.POST("/:id/drop", middleware.RequireRoles(models.RoleAdmin, models.RoleStudent), h.Registrations.Drop)
		registrations.POST("/:id/complete", middleware.RequireRoles(models.RoleAdmin, models.RoleLecturer), h.Registrations.Complete)
	}

	dashboard := api.Group("/dashboard", middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin))
	{
		dashboard.GET("/summary", h.Dashboard.Summary)
		dashboard.GET("/export/matches", h.Dashboard.ExportMatches)
	}

	return engine
}
