package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"gebedsrooster/config"
	"gebedsrooster/cron"
	"gebedsrooster/database"
	mailRepo "gebedsrooster/database/repository/mail"
	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/handlers"
	"gebedsrooster/metrics"
	"gebedsrooster/middleware"
	"gebedsrooster/routes"
	"gebedsrooster/services/auth"
	"gebedsrooster/services/calendar"
	"gebedsrooster/services/notification"
	"gebedsrooster/services/registration"
	"gebedsrooster/services/schedule"
	"gebedsrooster/services/tasks"
	"gebedsrooster/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := config.AppConfig.ScheduleOptions()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid campaign configuration: %v", err)
	}
	grid, err := schedule.NewGrid(opts)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid campaign range: %v", err)
	}

	if err := utils.FirebaseInit(ctx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	checks := map[string]utils.HealthCheck{}
	cacheReady := false
	if err := utils.InitCache(); err != nil {
		logger.Sugar().Warnf("main: %v; change notifications and token cache disabled", err)
	} else {
		cacheReady = true
		checks["redis"] = func(ctx context.Context) error {
			return utils.GetCacheClient().Ping(ctx).Err()
		}
	}

	// repositories.
	var (
		regRepo        registrationRepo.RegistrationRepository
		mailRepository mailRepo.MailRepository
	)
	switch config.AppConfig.StoreBackend {
	case "mongo":
		db, err := database.InitDB()
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer database.Close(context.Background())
		checks["mongo"] = database.Ping

		var notifier registrationRepo.ChangeNotifier
		if cacheReady {
			notifier = registrationRepo.NewRedisChangeNotifier(utils.GetCacheClient(), registrationRepo.DefaultChangeChannel)
		}
		regRepo = registrationRepo.NewMongoRegistrationRepo(db, notifier)
		if ensurer, ok := regRepo.(registrationRepo.IndexEnsurer); ok {
			if err := ensurer.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: %v", err)
			}
		}
		mailRepository = mailRepo.NewMongoMailRepo(db)
	case "memory":
		logger.Warn("main: using the in-memory store, data is lost on restart")
		regRepo = registrationRepo.NewMemoryRegistrationRepo()
		mailRepository = mailRepo.NewMemoryMailRepo()
	default:
		fs, err := utils.NewFirestoreClient(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer fs.Close()
		regRepo = registrationRepo.NewFirestoreRegistrationRepo(fs)
		mailRepository = mailRepo.NewFirestoreMailRepo(fs)
	}

	// services.
	m := metrics.New()

	notificationService, err := notification.NewDefaultNotificationService(
		mailRepository, config.AppConfig.MailFrom, grid.Location(), m)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()
	reminderScheduler := tasks.NewAsynqReminderScheduler(queue, config.AppConfig.ReminderLead)

	registrationService := registration.NewDefaultRegistrationService(
		regRepo, grid, reminderScheduler, m, config.AppConfig.ReminderLead)
	calendarService := calendar.NewDefaultCalendarService(regRepo, grid, m)

	passwordGateway, err := auth.NewIdentityToolkitGateway(ctx, config.AppConfig.FirebaseAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	authService := auth.NewDefaultAuthService(
		auth.NewFirebaseAdmin(utils.AuthClient), passwordGateway, notificationService)

	stopWorker := cron.InitReminderWorker(ctx,
		tasks.NewReminderHandler(regRepo, notificationService, m), regRepo, reminderScheduler)
	defer stopWorker()

	utils.StartHealthMonitor(ctx, 30*time.Second, checks)

	var verifier middleware.TokenVerifier = authService
	authHandler := handlers.NewAuthHandler(authService)
	if cacheReady {
		cached := middleware.NewCachedTokenVerifier(authService, utils.NewRedisAuthCache(utils.GetCacheClient(), utils.AuthCacheTTL))
		verifier = cached
		authHandler.Tokens = cached
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewScheduleHandler(calendarService, m),
		handlers.NewRegistrationHandler(registrationService),
		authHandler,
		verifier,
		m.Handler(),
	)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(m))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.AllowedOrigins)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:        "0.0.0.0:" + port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
