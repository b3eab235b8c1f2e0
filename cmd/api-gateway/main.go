// @title Course Match API
// @version 1.0
// @description Course, lecturer and student management with automatic lecturer-course matching.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-match-api/api/swagger"
	"github.com/noah-isme/course-match-api/internal/handler"
	"github.com/noah-isme/course-match-api/internal/repository"
	"github.com/noah-isme/course-match-api/internal/router"
	"github.com/noah-isme/course-match-api/internal/service"
	"github.com/noah-isme/course-match-api/pkg/cache"
	"github.com/noah-isme/course-match-api/pkg/config"
	"github.com/noah-isme/course-match-api/pkg/database"
	"github.com/noah-isme/course-match-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lecturerRepo := repository.NewLecturerRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	metricsSvc := service.NewMetricsService()
	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, log)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Matching.ViewCacheTTL, log, true)
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, log)
	courseSvc := service.NewCourseService(courseRepo, matchRepo, registrationRepo, cacheSvc, validate, log)
	lecturerSvc := service.NewLecturerService(lecturerRepo, userRepo, cacheSvc, validate, log)
	studentSvc := service.NewStudentService(studentRepo, userRepo, validate, log)
	matchSvc := service.NewMatchService(matchRepo, courseRepo, lecturerRepo, cacheSvc, metricsSvc, validate, log, cfg.Matching.ViewCacheTTL)
	registrationSvc := service.NewRegistrationService(registrationRepo, courseRepo, studentRepo, matchRepo, cacheSvc, validate, log)
	dashboardSvc := service.NewDashboardService(courseRepo, lecturerRepo, studentRepo, matchRepo, cacheSvc, log, cfg.Dashboard.CacheTTL)
	exportSvc := service.NewExportService(matchSvc, courseRepo, lecturerRepo, log)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Courses:       handler.NewCourseHandler(courseSvc),
		Lecturers:     handler.NewLecturerHandler(lecturerSvc, matchSvc),
		Students:      handler.NewStudentHandler(studentSvc, registrationSvc),
		Matches:       handler.NewMatchHandler(matchSvc),
		Registrations: handler.NewRegistrationHandler(registrationSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc, exportSvc),
	}

	engine := router.New(cfg, log, authSvc, metricsSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
