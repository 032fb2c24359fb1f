package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-screener/internal/extractor"
	applog "github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/fadilmartias/resume-screener/internal/storage"
	"github.com/fadilmartias/resume-screener/internal/usecase"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zl, err := applog.New(appConfig.LogJSON, appConfig.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: appConfig.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				return util.ErrorResponse(c, util.ErrorResponseFormat{
					Code:    e.Code,
					Message: e.Message,
				})
			}
			if apperror.KindOf(err) == apperror.KindInternal {
				zl.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return util.AppErrorResponse(c, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zl)

	parser, err := extractor.NewParser(config.LoadPDFConfig(), zl.Named("pdf"))
	if err != nil {
		zl.Fatal("building pdf parser", zap.Error(err))
	}
	ext := extractor.New(parser, extractor.WithLogger(zl.Named("extractor")))

	ver, err := verifier.NewFromConfig(config.LoadVerifierConfig(), zl)
	if err != nil {
		zl.Fatal("building verifier", zap.Error(err))
	}
	defer ver.Close()

	analyzer, embedder, err := service.NewAnalyzer(ctx, config.LoadAIConfig(), zl.Named("ai"))
	if err != nil {
		zl.Fatal("building analyzer", zap.Error(err))
	}

	blobs, err := storage.NewFromConfig(config.LoadBlobConfig(), appConfig.BaseURL, zl.Named("blob"))
	if err != nil {
		zl.Fatal("building blob store", zap.Error(err))
	}
	if disk, ok := blobs.(*storage.DiskStore); ok {
		app.Static("/uploads", disk.Dir())
	}

	profileRepo := repository.NewProfileRepository(db)
	resumeRepo := repository.NewResumeRepository(db)

	screeningUC := usecase.NewScreeningUsecase(ext, analyzer, ver, blobs, profileRepo, resumeRepo, zl.Named("screening"))
	profileUC := usecase.NewProfileUsecase(profileRepo, zl.Named("profiles"))
	resumeUC := usecase.NewResumeUsecase(profileRepo, resumeRepo, embedder, zl.Named("resumes"))

	authConfig := config.LoadAuthConfig()
	if authConfig.JWTSecret == "" {
		zl.Warn("JWT_SECRET not set, authenticated routes will reject every request")
	}
	auth := middleware.NewAuth(authConfig.JWTSecret, authConfig.Audience)

	handler.NewScreeningHandler(screeningUC, auth).RegisterRoutes(app)
	handler.NewResumeHandler(resumeUC, auth).RegisterRoutes(app)
	handler.NewProfileHandler(profileUC, auth).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zl.Debug("active goroutines", zap.Int("count", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
}

func ConnectDB(zl *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zl.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zl.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	} else {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	}

	for _, ext := range []string{"vector", "uuid-ossp"} {
		if err := db.Exec(fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS "%s"`, ext)).Error; err != nil {
			zl.Fatal("creating extension", zap.String("extension", ext), zap.Error(err))
		}
	}

	if err := db.AutoMigrate(&model.Profile{}, &model.Resume{}); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	return db
}
