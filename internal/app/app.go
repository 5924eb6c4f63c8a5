package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/config"
	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/handler"
	"github.com/prperemyshlev/donor-service/internal/repository"
	"github.com/prperemyshlev/donor-service/internal/service"
	"github.com/prperemyshlev/donor-service/internal/utils"
	"github.com/prperemyshlev/donor-service/pkg/observability"
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth     *handler.AuthHandler
	user     *handler.UserHandler
	donation *handler.DonationHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres())
	queryTimeout := cfg.Postgres.QueryTimeout.Duration

	jwtManager := utils.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)
	guard := utils.NewRoleGuard(jwtManager)

	blacklistService := service.NewTokenBlacklistService(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(map[string]Pinger{
		"postgres": infra.Postgres(),
		"redis":    infra.Redis(),
	})

	metrics, err := service.NewMetrics(infra.MeterProvider().Meter(serviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	logger := infra.Logger()
	authService := service.NewAuthService(repos.User, jwtManager, blacklistService, metrics, logger, cfg.Security.BCryptCost, queryTimeout)
	userService := service.NewUserService(repos.User, repos.Profile, metrics, logger, cfg.Security.BCryptCost, queryTimeout)
	donationService := service.NewDonationService(repos.User, repos.Donation, infra.Publisher(), metrics, logger, queryTimeout)

	h := handlers{
		auth:     handler.NewAuthHandler(authService, cfg.IsProduction()),
		user:     handler.NewUserHandler(userService),
		donation: handler.NewDonationHandler(donationService),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.SetupValidation()

	router := gin.New()
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(gin.CustomRecovery(handler.Recovery))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.NoRoute(handler.NotFound)

	setupRoutes(router, cfg, h, guard, rateLimiter, logger, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	guard *utils.RoleGuard,
	rateLimiter handler.RateLimiter,
	logger *zap.Logger,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Blood donor server is running"})
	})
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	limit := func(scope string) gin.HandlerFunc {
		return handler.RateLimitMiddleware(
			rateLimiter,
			logger,
			cfg.Security.RateLimitRequests,
			cfg.Security.RateLimitWindow.Duration,
			handler.IPBasedKey(scope),
		)
	}
	requireUser := handler.AuthMiddleware(guard, domain.RoleUser)

	api := router.Group("/api")
	{
		api.POST("/login", limit("login"), h.auth.Login)
		api.POST("/refresh-token", h.auth.Refresh)
		api.POST("/logout", h.auth.Logout)

		api.POST("/user/register", limit("register"), h.user.Register)
		api.GET("/donor-list", h.user.ListDonors)
		api.GET("/my-profile", requireUser, h.user.GetMyProfile)
		api.PUT("/my-profile", requireUser, h.user.UpdateMyProfile)

		api.POST("/donation-request", requireUser, h.donation.CreateRequest)
		api.GET("/donation-request", requireUser, h.donation.ListRequests)
		api.POST("/donation-request/:requestId", requireUser, h.donation.UpdateRequestStatus)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		return errors.Join(serverErr, err)
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout.Duration)
	defer cancel()

	// drain in-flight requests before closing the stores they use
	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("HTTP server shutdown failed", zap.Error(err))
		return errors.Join(err, a.infra.Shutdown(ctx))
	}

	if err := a.infra.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
