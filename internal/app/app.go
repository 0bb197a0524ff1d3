package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/httpapi"
	natsadapter "github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/repository/cache"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const serviceName = "property_service"

// App owns the service's external connections and the HTTP server.
type App struct {
	cfg    *config.Config
	logger *logger.Logger

	mongoClient    *mongo.Client
	propertyCache  *cache.PropertyCache
	natsPublisher  *natsadapter.Publisher
	tracerProvider *sdktrace.TracerProvider

	httpServer *http.Server
}

// New wires every adapter and usecase from configuration. Failures during
// wiring tear down whatever was already connected.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.Named("PropertyService").With(zap.String("env", cfg.Env))
	log.Info("starting initialization")

	a := &App{cfg: cfg, logger: log}

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracer.InitTracer(ctx, cfg.Tracing.OTLPEndpoint, serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		a.tracerProvider = tp
	}

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		a.closePartial(ctx)
		return nil, err
	}
	a.mongoClient = mongoClient
	db := mongoClient.Database(cfg.MongoDB.Database)
	propertyRepo := mongodb.NewPropertyRepository(db, log)

	propertyCache, err := cache.NewPropertyCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	if err != nil {
		a.closePartial(ctx)
		return nil, err
	}
	a.propertyCache = propertyCache

	blobStorage, err := s3.NewS3Storage(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL, log)
	if err != nil {
		a.closePartial(ctx)
		return nil, err
	}

	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL, log)
	if err != nil {
		a.closePartial(ctx)
		return nil, err
	}
	a.natsPublisher = publisher

	// Mail is optional: without SMTP settings bookings simply skip the
	// owner notification email.
	var mailer domain.EmailSender
	if smtpSender, errMail := email.NewSMTPSender(cfg.SMTP, log); errMail != nil {
		log.Warn("SMTP sender not configured, booking emails disabled", zap.Error(errMail))
	} else {
		mailer = smtpSender
	}

	propertyUC := usecase.NewPropertyUsecase(propertyRepo, propertyCache, blobStorage, publisher, cfg.MinIO.KeyPrefix, log)
	bookingUC := usecase.NewBookingUsecase(propertyRepo, propertyCache, publisher, mailer, log)

	mm := metrics.NewMetricsManager(serviceName)
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, log, mm.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	handler := httpapi.NewPropertyHandler(propertyUC, bookingUC, mm, log)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, log)

	a.httpServer = &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	log.Info("initialization complete")
	return a, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.logger.Error("HTTP server failed", zap.Error(err))
		a.shutdown(context.Background())
		return err
	case sig := <-quit:
		a.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	a.shutdown(shutdownCtx)
	a.logger.Info("service stopped")
	return nil
}

func (a *App) shutdown(ctx context.Context) {
	if a.natsPublisher != nil {
		a.natsPublisher.Close()
	}
	if a.propertyCache != nil {
		if err := a.propertyCache.Close(); err != nil {
			a.logger.Error("failed to close redis client", zap.Error(err))
		}
	}
	if a.mongoClient != nil {
		disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.mongoClient.Disconnect(disconnectCtx); err != nil {
			a.logger.Error("failed to disconnect mongodb client", zap.Error(err))
		}
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.logger.Error("failed to shut down tracer provider", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// closePartial releases connections acquired before a wiring failure.
func (a *App) closePartial(ctx context.Context) {
	a.shutdown(ctx)
}
