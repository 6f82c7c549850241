// Conference Central API
//
// @title Conference Central API
// @version 1.0
// @description Conference organization and registration: conferences, sessions, speakers, profiles and wishlists.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/metrics"
	"conferencecentral/internal/adapters/tasks"
	deliveryhttp "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/dynamo"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	conferences   domain.ConferenceRepository
	profiles      domain.ProfileRepository
	speakers      domain.SpeakerRepository
	sessions      domain.SessionRepository
	registrations domain.RegistrationStore
	ping          func(context.Context) error
	close         func() error
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		table := cfg.DynamoDB.Table
		if cfg.DynamoDB.CreateTable {
			if err := dynamo.EnsureTable(ctx, client, table); err != nil {
				return nil, err
			}
		}
		logger.Info("using dynamodb storage", "table", table)
		return &repositories{
			conferences:   dynamo.NewConferenceRepository(client, table),
			profiles:      dynamo.NewProfileRepository(client, table),
			speakers:      dynamo.NewSpeakerRepository(client, table),
			sessions:      dynamo.NewSessionRepository(client, table),
			registrations: dynamo.NewRegistrationStore(client, table),
			ping: func(ctx context.Context) error {
				_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
				return err
			},
			close: func() error { return nil },
		}, nil
	default:
		db, err := postgres.Open(ctx, cfg.DBUrl, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("using postgres storage")
		return &repositories{
			conferences:   postgres.NewConferenceRepository(db),
			profiles:      postgres.NewProfileRepository(db),
			speakers:      postgres.NewSpeakerRepository(db),
			sessions:      postgres.NewSessionRepository(db),
			registrations: postgres.NewRegistrationStore(db),
			ping:          db.PingContext,
			close:         db.Close,
		}, nil
	}
}

func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.CacheStore, func(context.Context) error, error) {
	if cfg.CacheDriver == config.CacheRedis {
		rdb, err := cache.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis cache", "addr", cfg.Redis.Addr)
		return cache.NewRedisStore(rdb, cfg.CacheTTL), func(ctx context.Context) error { return rdb.Ping(ctx).Err() }, nil
	}
	logger.Info("using in-process cache")
	return cache.NewMemoryStore(cfg.CacheTTL), nil, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer repos.close()

	store, cachePing, err := openCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	var (
		recorder       domain.Metrics = metrics.Noop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder, metricsHandler = prom, prom.Handler()
	}

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipTLS,
		},
	}, logger)

	dispatcher := tasks.NewDispatcher(tasks.Config{
		Workers:     cfg.Tasks.Workers,
		QueueSize:   cfg.Tasks.QueueSize,
		MaxAttempts: cfg.Tasks.MaxAttempts,
	}, recorder, logger)

	timeout := cfg.RequestTimeout
	conferenceService := services.NewConferenceService(repos.conferences, repos.profiles, repos.registrations, dispatcher, recorder, logger, timeout)
	profileService := services.NewProfileService(repos.profiles, timeout)
	sessionService := services.NewSessionService(repos.sessions, repos.speakers, repos.conferences, dispatcher, logger, timeout)
	wishlistService := services.NewWishlistService(repos.profiles, repos.sessions, repos.speakers, timeout)
	announcementService := services.NewAnnouncementService(repos.conferences, store, recorder, timeout)
	featuredService := services.NewFeaturedSpeakerService(repos.sessions, repos.speakers, store, recorder, timeout)

	dispatcher.Register(domain.TaskSendConfirmationEmail, services.ConfirmationEmailHandler(services.NewEmailService(mailer, renderer, logger)))
	dispatcher.Register(domain.TaskStoreFeaturedSpeaker, featuredService.HandleTask)

	checks := map[string]func(context.Context) error{"storage": repos.ping}
	if cachePing != nil {
		checks["cache"] = cachePing
	}

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Conference:   controllers.NewConferenceController(logger, conferenceService),
		Profile:      controllers.NewProfileController(logger, profileService, wishlistService),
		Session:      controllers.NewSessionController(logger, sessionService, featuredService),
		Announcement: controllers.NewAnnouncementController(logger, announcementService, cfg.CronToken),
		Health:       controllers.NewHealthController(logger, checks),
	}, deliveryhttp.RouterConfig{
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Metrics:        recorder,
		MetricsHandler: metricsHandler,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error {
		return tasks.RunPeriodic(gctx, "set_announcement", cfg.AnnouncementInterval, logger, func(ctx context.Context) error {
			_, err := announcementService.Refresh(ctx)
			return err
		})
	})
	return g.Wait()
}
