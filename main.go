package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Gopikasanthosh455/placement-app/internal/cache"
	"github.com/Gopikasanthosh455/placement-app/internal/config"
	"github.com/Gopikasanthosh455/placement-app/internal/events"
	"github.com/Gopikasanthosh455/placement-app/internal/handlers"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories/casdoor"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories/postgres"
	"github.com/Gopikasanthosh455/placement-app/internal/services"
	"github.com/Gopikasanthosh455/placement-app/internal/utils"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
	"github.com/Gopikasanthosh455/placement-app/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Redis is optional; without it profiles are not cached and sign-out is unavailable
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis disabled", "error", err)
			redisClient = nil
		}
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		CasdoorConfig: casdoor.CasdoorConfig{
			Endpoint:         cfg.Casdoor.Endpoint,
			ClientID:         cfg.Casdoor.ClientID,
			ClientSecret:     cfg.Casdoor.ClientSecret,
			Certificate:      cfg.Casdoor.Cert,
			OrganizationName: cfg.Casdoor.Organization,
			ApplicationName:  cfg.Casdoor.Application,
		},
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	publisher, subscriber, err := setupEvents(cfg, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize events: %v", err)
	}

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	notifier := events.NewJobPostedNotifier(
		subscriber,
		events.NewSMTPMailer(events.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, slogLogger),
		cfg.NotifyRecipients,
		cfg.Kafka.TopicPrefix,
		slogLogger,
	)
	go func() {
		if err := notifier.Run(notifierCtx); err != nil {
			logger.Error("Job notifier stopped", "error", err)
		}
	}()

	serviceManager := services.NewServiceManager(
		db,
		repoManager.GetRepository(),
		cache.NewCacheManager(redisClient),
		publisher,
		slogLogger,
		validator.New(),
		services.ServiceManagerConfig{
			PublicBaseURL: cfg.PublicBaseURL,
			ShortlistSize: cfg.ShortlistSize,
		},
	)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "kafka", cfg.Kafka.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// closes the publisher, which also ends an in-process subscription
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}
	stopNotifier()
	if err := subscriber.Close(); err != nil {
		logger.Warn("Failed to close subscriber", "error", err)
	}

	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Server exited")
}

// setupEvents uses Kafka when brokers are configured, otherwise a single
// in-process pub/sub shared by the publisher and the notifier
func setupEvents(cfg *config.Config, logger *slog.Logger) (events.EventPublisher, message.Subscriber, error) {
	if !cfg.Kafka.Enabled() {
		pubSub := events.NewInProcessPubSub(logger)
		return events.NewWatermillPublisher(pubSub, cfg.Kafka.TopicPrefix, logger), pubSub, nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, logger)
	if err != nil {
		return nil, nil, err
	}
	subscriber, err := events.NewKafkaSubscriber(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, logger)
	if err != nil {
		_ = publisher.Close()
		return nil, nil, err
	}
	return publisher, subscriber, nil
}
