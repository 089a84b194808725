package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"clinicbook/config"
	"clinicbook/cron"
	"clinicbook/handlers"
	"clinicbook/metrics"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/access"
	"clinicbook/services/availability"
	"clinicbook/services/booking"
	"clinicbook/services/payment"
	"clinicbook/services/tasks"
	"clinicbook/services/user"
	"clinicbook/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer utils.SyncLogger()

	if config.AppConfig.AccessTokenSecret == "" {
		logger.Fatal("main: ACCESS_TOKEN_SECRET must be set")
	}
	stripe.Key = config.AppConfig.StripeKey
	metrics.Register()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Stores.
	var st *stores
	if config.UsesMemoryStore() {
		logger.Warn("main: using in-memory store; data is lost on exit")
		st = newMemoryStores()
	} else {
		var err error
		if st, err = newMongoStores(ctx, logger); err != nil {
			logger.Fatal("main: failed to initialize store", zap.Error(err))
		}
	}
	defer st.close(context.Background())

	if config.AppConfig.SeedCatalog {
		if err := st.seedCatalog(ctx, logger); err != nil {
			logger.Fatal("main: failed to seed catalog", zap.Error(err))
		}
	}

	// Availability cache.
	var cacheClient *redis.Client
	var cache *availability.Cache
	if config.AppConfig.CacheEnabled {
		var err error
		if cacheClient, err = utils.NewCacheClient(ctx); err != nil {
			logger.Warn("main: availability cache disabled", zap.Error(err))
		} else {
			cache = availability.NewCache(cacheClient, config.AppConfig.AvailabilityCacheTTL)
			defer cacheClient.Close()
		}
	}
	utils.StartHealthMonitor(ctx, 15*time.Second, cacheClient, st.client)

	// Reconcile retry queue.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	var retry payment.RetryScheduler
	if config.AppConfig.ReconcileWorker {
		queue := asynq.NewClient(queueOpts)
		defer queue.Close()
		retry = &tasks.ReconcileScheduler{Client: queue}
	}

	// Services.
	availabilitySvc := availability.NewService(logger, st.catalog, cache,
		&availability.NaiveStrategy{Catalog: st.catalog, Bookings: st.bookings},
		&availability.AggregateStrategy{Catalog: st.catalog},
	)

	var invalidator booking.DateInvalidator
	if cache != nil {
		invalidator = cache
	}
	var slotCatalog = st.catalog
	if !config.AppConfig.EnforceSlotClaim {
		slotCatalog = nil
	}
	coordinator := booking.NewCoordinator(logger, st.bookings, slotCatalog, invalidator)
	reconciler := payment.NewReconciler(logger, st.payments, st.bookings, st.tx, retry)
	userService := user.NewUserService(st.users)
	signer := utils.NewTokenSigner(config.AppConfig.AccessTokenSecret, config.AppConfig.AccessTokenTTL)
	guard := access.NewGuard(logger, st.users, signer)

	if config.AppConfig.ReconcileWorker {
		worker, err := cron.InitReconcileWorker(queueOpts, reconciler, logger)
		if err != nil {
			logger.Fatal("main: failed to start reconcile worker", zap.Error(err))
		}
		defer worker.Shutdown()
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Guard:        guard,
		Availability: handlers.NewAvailabilityHandler(availabilitySvc),
		Booking:      handlers.NewBookingHandler(coordinator, guard),
		Auth:         handlers.NewAuthHandler(guard),
		User:         handlers.NewUserHandler(userService),
		Payment:      handlers.NewPaymentHandler(reconciler, payment.NewStripeIntents(config.AppConfig.PaymentCurrency)),
		Provider:     handlers.NewProviderHandler(st.providers),
		Health:       &handlers.HealthHandler{},
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Dentist running on port %s", port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
