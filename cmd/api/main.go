package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/mq"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.Env)
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, lg)
	if err != nil {
		return err
	}

	// ======================================================
	// REDIS (optional)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			if cfg.NotifyBackend == "asynq" {
				return err
			}
			lg.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	channels, closers := buildChannels(cfg, lg)
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()

	sink := buildSink(cfg, lg)
	notifier, shutdownWorker := buildDispatcher(cfg, channels, sink, lg)

	// ======================================================
	// AUDIT
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), lg)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   lg,
		Redis:    rdb,
		Notifier: notifier,
		Audit:    auditDispatcher,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http shutdown", zap.Error(err))
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		lg.Warn("notification shutdown", zap.Error(err))
	}
	shutdownWorker()
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		lg.Warn("audit shutdown", zap.Error(err))
	}
	return nil
}

// buildChannels creates one channel per configured collaborator. A missing
// setting disables that channel.
func buildChannels(cfg *config.Config, lg *zap.Logger) ([]notification.Channel, []func() error) {
	var (
		channels []notification.Channel
		closers  []func() error
	)

	if cfg.ResendAPIKey != "" {
		client := notification.NewResendClient(cfg.ResendAPIKey)
		channels = append(channels, notification.NewCustomerEmail(client, cfg.EmailFrom))
		if cfg.OperatorEmail != "" {
			channels = append(channels, notification.NewOperatorEmail(client, cfg.EmailFrom, cfg.OperatorEmail))
		} else {
			lg.Info("operator email disabled", zap.String("missing", "OPERATOR_EMAIL"))
		}
	} else {
		lg.Info("email channels disabled", zap.String("missing", "RESEND_API_KEY"))
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioWhatsAppFrom != "" {
		channels = append(channels, notification.NewWhatsApp(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom))
	} else {
		lg.Info("whatsapp channel disabled", zap.String("missing", "TWILIO_*"))
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramOperatorChatID != 0 {
		tg, err := notification.NewTelegram(cfg.TelegramBotToken, cfg.TelegramOperatorChatID)
		if err != nil {
			lg.Warn("telegram channel disabled", zap.Error(err))
		} else {
			channels = append(channels, tg)
		}
	} else {
		lg.Info("telegram channel disabled", zap.String("missing", "TELEGRAM_*"))
	}

	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange, "clinic-scheduler")
		if err != nil {
			lg.Warn("event channel disabled", zap.Error(err))
		} else {
			channels = append(channels, notification.NewEventChannel(pub))
			closers = append(closers, pub.Close)
		}
	} else {
		lg.Info("event channel disabled", zap.String("missing", "RABBIT_URL"))
	}

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	lg.Info("notification channels", zap.Strings("enabled", names))

	return channels, closers
}

func buildSink(cfg *config.Config, lg *zap.Logger) notification.Sink {
	sinks := notification.MultiSink{notification.NewLogSink(lg)}
	if cfg.DeadLetterBucket != "" {
		client := notification.NewS3Client(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		sinks = append(sinks, notification.NewS3Sink(client, cfg.DeadLetterBucket, cfg.DeadLetterPrefix))
	}
	return sinks
}

func buildDispatcher(
	cfg *config.Config,
	channels []notification.Channel,
	sink notification.Sink,
	lg *zap.Logger,
) (notification.Dispatcher, func()) {

	if len(channels) == 0 {
		return notification.Nop{}, func() {}
	}

	policy := notification.RetryPolicy{
		MaxAttempts: cfg.NotifyMaxAttempts,
		Backoff:     cfg.NotifyRetryBackoff,
		Timeout:     cfg.NotifyTimeout,
	}

	if cfg.NotifyBackend == "asynq" {
		opt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}

		worker := notification.NewWorker(opt, notification.WorkerConfig{
			Concurrency: cfg.NotifyWorkers,
			Retry:       policy,
		}, channels, sink, lg)
		if err := worker.Start(); err != nil {
			lg.Error("notification worker failed to start, using in-process delivery", zap.Error(err))
		} else {
			names := make([]string, 0, len(channels))
			for _, ch := range channels {
				names = append(names, ch.Name())
			}
			return notification.NewAsynqDispatcher(opt, names, policy, sink, lg), worker.Shutdown
		}
	}

	return notification.NewMemoryDispatcher(notification.MemoryConfig{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
		Retry:     policy,
	}, channels, sink, lg), func() {}
}
