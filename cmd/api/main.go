package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"resume-analyzer-backend/config"
	_ "resume-analyzer-backend/docs" // Important for Swagger
	v1 "resume-analyzer-backend/internal/delivery/http/v1"
	"resume-analyzer-backend/internal/taxonomy"
	"resume-analyzer-backend/internal/usecase"
	"resume-analyzer-backend/pkg/email"
	"resume-analyzer-backend/pkg/extract"
	"resume-analyzer-backend/pkg/logger"
	"resume-analyzer-backend/pkg/redis"
	"resume-analyzer-backend/pkg/security"
	"resume-analyzer-backend/pkg/security/antivirus"
	"resume-analyzer-backend/pkg/storage"
	"resume-analyzer-backend/pkg/validation"
)

// @title           Resume Analyzer API
// @version         1.0
// @description     Scores a resume against a job description by weighted keyword overlap and emails or exports the report.
// @host            localhost:5000
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	secLog := security.InitSecurityLogger("resume-analyzer", env)
	defer secLog.Sync()
	logger.Log.Info("Starting resume analyzer", "port", cfg.Port, "env", env)

	if err := validation.RegisterGinValidators(); err != nil {
		logger.Log.Error("Failed to register validators", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// 3. Load Taxonomy (S3 object, local file, or built-in lists)
	var (
		objects taxonomy.ObjectGetter
		store   *storage.S3Store
	)
	if cfg.TaxonomyS3Bucket != "" {
		store, err = storage.NewS3Store(ctx, storage.S3ClientConfig{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		objects = store
	}
	loaded, err := taxonomy.Load(ctx, taxonomy.Source{
		File:     cfg.TaxonomyFile,
		Bucket:   cfg.TaxonomyS3Bucket,
		Key:      cfg.TaxonomyS3Key,
		Mode:     cfg.ScoringMode,
		Fallback: cfg.TaxonomyFallback,
	}, objects)
	if err != nil {
		logger.Log.Error("Failed to load taxonomy", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Taxonomy loaded",
		"origin", loaded.Origin,
		"mode", loaded.Mode,
		"keywords", loaded.Taxonomy.Size(),
	)

	// 4. Setup Redis (optional; rate limiting falls back to memory)
	redisState := "disabled"
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
			redisState = "unavailable"
		} else {
			defer redis.Close()
			redisState = "ok"
		}
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - report emails will be unavailable")
	}

	// 6. Setup Antivirus
	scanner := antivirus.New(cfg.ClamAVAddress)
	logger.Log.Info("Antivirus scanner selected", "scanner", scanner.Name())

	// 7. Setup UseCases
	reportUC := usecase.NewReportUsecase(emailService, loaded.Taxonomy, secLog)
	analysisUC := usecase.NewAnalysisUsecase(
		extract.New(cfg.ExtractionTimeout),
		scanner,
		loaded.Matcher(),
		reportUC,
		cfg.MaxUploadBytes,
		secLog,
	)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthProbe{
		"redis": func(ctx context.Context) string {
			if redisState != "ok" {
				return redisState
			}
			if err := redis.HealthCheck(ctx); err != nil {
				return "unavailable"
			}
			return "ok"
		},
		"email": func(context.Context) string {
			if emailService.IsConfigured() {
				return "configured"
			}
			return "not_configured"
		},
		"antivirus": func(ctx context.Context) string {
			if scanner.Available(ctx) {
				return scanner.Name()
			}
			return "unavailable"
		},
		"taxonomy": func(context.Context) string {
			return loaded.Origin
		},
		"storage": func(ctx context.Context) string {
			if store == nil {
				return "disabled"
			}
			if err := store.Ping(ctx, cfg.TaxonomyS3Bucket); err != nil {
				return "unavailable"
			}
			return "ok"
		},
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AnalysisUC: analysisUC,
		ReportUC:   reportUC,
		HealthUC:   healthUC,
		Taxonomy:   loaded.Info(),
		Config:     cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
