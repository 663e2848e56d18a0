// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/technest/admin-dashboard/config"
	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/application/usecase/auth"
	"github.com/technest/admin-dashboard/internal/application/usecase/dashboard"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	"github.com/technest/admin-dashboard/internal/infra/server/router"
	"github.com/technest/admin-dashboard/internal/integration/adapters"
	"github.com/technest/admin-dashboard/internal/integration/cache"
	"github.com/technest/admin-dashboard/internal/integration/entrypoint/controller"
	"github.com/technest/admin-dashboard/internal/integration/entrypoint/middleware"
	"github.com/technest/admin-dashboard/internal/integration/feed"
	"github.com/technest/admin-dashboard/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Dashboard *dashboard.Dashboard
	Session   *adapters.SessionAuthSignal

	feed        *feed.DocumentFeed
	notifier    feed.Notifier
	rateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case summaries are mirrored in memory and
// the Redis notifier is unavailable.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create change notifier
	notifier, publisher, err := newNotifier(ctx, cfg, redisClient)
	if err != nil {
		return nil, err
	}

	// Create repositories
	var repoOpts []persistence.RepositoryOption
	if publisher != nil {
		repoOpts = append(repoOpts, persistence.WithChangePublisher(publisher))
	}
	documentRepo := persistence.NewDocumentRepository(db, repoOpts...)
	userDirectory := persistence.NewUserDirectory(documentRepo)
	adminRepo := persistence.NewAdminRepository(documentRepo)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	session := adapters.NewSessionAuthSignal()

	var summaryCache adapter.KeyValueCache = cache.NewMemoryCache()
	if redisClient != nil {
		summaryCache = cache.NewRedisCache(redisClient, cfg.Dashboard.CacheTTL)
	}

	documentFeed := feed.NewDocumentFeed(documentRepo,
		feed.WithPollInterval(cfg.Feed.PollInterval),
		feed.WithCollections(entity.CollectionUsers, entity.CollectionOrders, entity.CollectionChats),
	)

	// Create dashboard
	dash, err := dashboard.NewDashboard(documentFeed, session, userDirectory, dashboard.Config{
		Earnings: dashboard.EarningsConfig{
			WindowMonths: cfg.Dashboard.EarningsWindowMonths,
			TargetStatus: cfg.Dashboard.EarningsStatus,
		},
		RefreshAckDelay:   cfg.Dashboard.RefreshAckDelay,
		CachePrefix:       cfg.Dashboard.CachePrefix,
		LookupConcurrency: cfg.Dashboard.LookupConcurrency,
	}, dashboard.WithCache(summaryCache))
	if err != nil {
		if notifier != nil {
			_ = notifier.Close()
		}
		return nil, fmt.Errorf("invalid dashboard configuration: %w", err)
	}

	// Create auth use cases
	loginUseCase := auth.NewLoginAdminUseCase(adminRepo, passwordService, tokenService, session)
	logoutUseCase := auth.NewLogoutAdminUseCase(session)

	// Create controllers
	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	healthController := controller.NewHealthController(checks)
	authController := controller.NewAuthController(loginUseCase, logoutUseCase)
	dashboardController := controller.NewDashboardController(dash, cfg.Server.StreamHeartbeat)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(cfg.Server.LoginMaxAttempts, cfg.Server.LoginWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, authController, dashboardController, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Dashboard:   dash,
		Session:     session,
		feed:        documentFeed,
		notifier:    notifier,
		rateLimiter: loginRateLimiter,
	}, nil
}

// Start runs the background loops until ctx is cancelled.
func (i *Injector) Start(ctx context.Context) {
	go i.Dashboard.Run(ctx)
	go i.rateLimiter.RunCleanup(ctx)
	if i.notifier != nil {
		go i.feed.Watch(ctx, i.notifier)
	}
}

// Close releases the change notifier.
func (i *Injector) Close() error {
	if i.notifier == nil {
		return nil
	}
	return i.notifier.Close()
}

// newNotifier builds the configured change notifier. The publisher is set
// when writes must be announced by the application itself.
func newNotifier(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (feed.Notifier, persistence.ChangePublisher, error) {
	switch cfg.Feed.Notifier {
	case config.NotifierPostgres:
		n, err := feed.NewPostgresNotifier(cfg.Database.URL, feed.ChangeChannel)
		if err != nil {
			return nil, nil, err
		}
		return n, nil, nil
	case config.NotifierRedis:
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis notifier requires REDIS_URL")
		}
		n, err := feed.NewRedisNotifier(ctx, redisClient)
		if err != nil {
			return nil, nil, err
		}
		return n, n, nil
	default:
		slog.Info("No change notifier configured, relying on polling",
			"poll_interval", cfg.Feed.PollInterval,
		)
		return nil, nil, nil
	}
}
