package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/shenikar/incident_reporting_system/docs"
	"github.com/shenikar/incident_reporting_system/internal/ai"
	"github.com/shenikar/incident_reporting_system/internal/config"
	v1 "github.com/shenikar/incident_reporting_system/internal/handler/http/v1"
	"github.com/shenikar/incident_reporting_system/internal/repository"
	"github.com/shenikar/incident_reporting_system/internal/scheduler"
	"github.com/shenikar/incident_reporting_system/internal/service"
	"github.com/shenikar/incident_reporting_system/internal/webhook"
	"github.com/shenikar/incident_reporting_system/migrations"
	"github.com/shenikar/incident_reporting_system/pkg/logger"
	"github.com/shenikar/incident_reporting_system/pkg/postgres"
	redisclient "github.com/shenikar/incident_reporting_system/pkg/redis"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, webhook worker and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Загрузка конфигурации
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on start")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger, skipMigrations bool) error {
	// Запуск миграций
	if !skipMigrations {
		log.Info("Running database migrations...")
		if err := postgres.MigrateUp(migrations.FS, cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info("Database migrations applied successfully")
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Gemini необязателен: без ключа эндпоинты классификации отвечают 503
	var classifier service.Classifier
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		classifier = gemini
		log.WithField("model", cfg.GeminiModel).Info("Gemini classifier enabled")
	} else {
		log.Warn("GEMINI_API_KEY is not set, classification endpoints are disabled")
	}

	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)

	// Репозитории
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	userRepo := repository.NewUserRepository(dbpool)
	tipsCache := repository.NewSafetyTipsCache(redisClient, cfg.SafetyTipsTTL)

	// Сервисы
	incidentService := service.NewIncidentService(incidentRepo, userRepo, log, cfg, webhookPublisher)
	userService := service.NewUserService(userRepo, log)
	assistantService := service.NewAssistantService(classifier, tipsCache, incidentService, log, cfg)

	jobs := scheduler.New(log)
	if classifier != nil && cfg.SafetyTipsRefreshCron != "" {
		if err := jobs.Add(cfg.SafetyTipsRefreshCron, "refresh_safety_tips", assistantService.RefreshSafetyTips); err != nil {
			return err
		}
	}

	// Настройка Gin роутера
	handler := v1.NewHandler(incidentService, userService, assistantService, log, cfg)
	router := gin.Default()
	router.Use(v1.RequestIDMiddleware(), v1.NewCORSMiddleware(cfg.CORSAllowedOrigins))
	handler.RegisterRoutes(router.Group(cfg.APIBasePath))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("Server gracefully stopped")
		return nil
	})
	g.Go(func() error { return webhookWorker.Run(gctx) })
	g.Go(func() error { return jobs.Run(gctx) })

	return g.Wait()
}
