package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mypaws/adoption-service/internal/api/http"
	"github.com/mypaws/adoption-service/internal/api/http/handlers"
	"github.com/mypaws/adoption-service/internal/auth"
	"github.com/mypaws/adoption-service/internal/config"
	"github.com/mypaws/adoption-service/internal/events"
	"github.com/mypaws/adoption-service/internal/gateway"
	"github.com/mypaws/adoption-service/internal/imaging"
	"github.com/mypaws/adoption-service/internal/observability"
	"github.com/mypaws/adoption-service/internal/persistence"
	"github.com/mypaws/adoption-service/internal/repository"
	"github.com/mypaws/adoption-service/internal/service"
	"github.com/mypaws/adoption-service/internal/storage"
	"github.com/mypaws/adoption-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if cfg.Postgres.SeedReference {
		if err := persistence.SeedReferenceData(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to seed reference data", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	pool := pg.PoolHandle()
	repos := repository.NewSet(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	refdataRepo := repository.NewReferenceRepository(pool)
	uow := repository.NewUnitOfWork(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.AccessTokenTTLMin)
	policy := auth.NewPolicy(cfg.Admin.BootstrapEmails)
	authMiddleware := auth.NewMiddleware(tokenManager, repos.Users)

	store, err := buildStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}
	processor := imaging.NewProcessor(cfg.Image.MaxEdgePixels, cfg.Image.WebPQuality)
	razorpay := gateway.NewRazorpayGateway(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret)

	eligibility := service.NewEligibilityService(repos.AdoptionListings, repos.BreederListings, repos.Usages)
	authService := service.NewAuthService(cfg.Auth.BcryptCost, cfg.Auth.RefreshTokenTTLHours, service.AuthDependencies{
		Users:  repos.Users,
		Tokens: tokenManager,
		Policy: policy,
		Redis:  redisStore.Client,
	})
	adoptionService := service.NewAdoptionService(cfg.Payment.UsageValidityDays, service.AdoptionDependencies{
		UnitOfWork:  uow,
		Listings:    repos.AdoptionListings,
		Pets:        repos.Pets,
		Reference:   refdataRepo,
		Eligibility: eligibility,
		Dispatcher:  dispatcher,
	})
	breederService := service.NewBreederService(cfg.Payment.UsageValidityDays, service.BreederDependencies{
		UnitOfWork:   uow,
		Applications: repos.Applications,
		Profiles:     repos.BreederProfiles,
		Listings:     repos.BreederListings,
		Pets:         repos.Pets,
		Reference:    refdataRepo,
		Eligibility:  eligibility,
		Dispatcher:   dispatcher,
	})
	paymentService := service.NewPaymentService(service.PaymentConfig{
		Currency:          cfg.Payment.Currency,
		UsageValidityDays: cfg.Payment.UsageValidityDays,
		FeaturedDays:      cfg.Payment.FeaturedDays,
	}, service.PaymentDependencies{
		UnitOfWork:      uow,
		PaymentRepo:     repos.Payments,
		Adoptions:       repos.AdoptionListings,
		BreederListings: repos.BreederListings,
		Profiles:        repos.BreederProfiles,
		Eligibility:     eligibility,
		Gateway:         razorpay,
		Dispatcher:      dispatcher,
	})
	favoriteService := service.NewFavoriteService(favoriteRepo, repos.AdoptionListings)
	imageService := service.NewImageService(processor, store, cfg.Image.MaxUploadBytes)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		Adoptions: repos.AdoptionListings,
		Breeders:  repos.BreederListings,
		Profiles:  repos.BreederProfiles,
		Favorites: favoriteRepo,
		Usages:    repos.Usages,
		Payments:  repos.Payments,
	})
	adminService := service.NewAdminService(repos.Users, repos.Usages)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)
	worker.StartMetricsRecorder(dispatcher, metrics)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Image.MaxUploadBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redisStore, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService, cfg.App.IsProduction()),
		Adoptions:      handlers.NewAdoptionHandler(adoptionService),
		Breeders:       handlers.NewBreederHandler(breederService),
		Payments:       handlers.NewPaymentHandler(paymentService),
		Favorites:      handlers.NewFavoriteHandler(favoriteService),
		Images:         handlers.NewImageHandler(imageService),
		Lookups:        handlers.NewLookupHandler(refdataRepo),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Admin:          handlers.NewAdminHandler(adoptionService, breederService, adminService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.RateLimit(cfg.RateLimit, redisStore.Client),
	})

	if cfg.Storage.Backend == "local" {
		app.Static("/uploads", cfg.Storage.LocalDir)
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildStorage(ctx context.Context, cfg config.StorageConfig) (storage.Service, error) {
	if cfg.Backend == "s3" {
		return storage.NewS3Service(ctx, cfg.AWSRegion, cfg.S3Bucket)
	}
	return storage.NewLocalService(cfg.LocalDir, cfg.PublicURL)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
