package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hoteltriggers/config"
	"hoteltriggers/cron"
	"hoteltriggers/database"
	"hoteltriggers/database/repository"
	"hoteltriggers/handlers"
	"hoteltriggers/middleware"
	"hoteltriggers/routes"
	"hoteltriggers/services/ledger"
	"hoteltriggers/services/notification"
	"hoteltriggers/services/triggers"
	"hoteltriggers/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := utils.NewHealthMonitor(time.Minute, logger.Named("health"))

	// Firebase is needed for messaging unless pushes are dry-run, and always for the firestore backend.
	var fb *utils.FirebaseClients
	useFirestore := cfg.DocstoreBackend == config.BackendFirestore
	if useFirestore || !cfg.PushDryRun {
		var err error
		fb, err = utils.FirebaseInit(ctx, cfg, useFirestore)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase", zap.Error(err))
		}
		defer fb.Close()
	}

	var (
		store       database.DocumentStore
		mongoClient *mongo.Client
	)
	switch cfg.DocstoreBackend {
	case config.BackendFirestore:
		store = database.NewFirestoreStore(fb.Firestore)
	case config.BackendMongo:
		var err error
		mongoClient, err = database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("main: failed to connect to mongo", zap.Error(err))
		}
		defer mongoClient.Disconnect(context.Background())
		health.Add("mongo", func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) })
		store = database.NewMongoStore(mongoClient.Database(cfg.MongoDatabase))
	}

	var sender notification.PushSender
	if cfg.PushDryRun {
		sender = notification.NewLogSender(logger.Named("push"))
	} else {
		fcm, err := notification.NewFCMSender(fb.Messaging)
		if err != nil {
			logger.Fatal("main: failed to create push sender", zap.Error(err))
		}
		sender = fcm
	}

	var ldg ledger.Ledger
	if cfg.RedisAddr != "" {
		rc, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisLedgerDB)
		if err != nil {
			logger.Fatal("main: failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		health.Add("redis", func(ctx context.Context) error { return rc.Ping(ctx).Err() })
		ldg = ledger.NewRedisLedger(rc, cfg.LedgerTTL)
	}

	registry := triggers.NewRegistry(logger.Named("triggers"), ldg)
	if err := triggers.RegisterDefaults(registry, triggers.Deps{
		Repos:  repository.New(store),
		Sender: sender,
		Logger: logger.Named("triggers"),
	}); err != nil {
		logger.Fatal("main: failed to register triggers", zap.Error(err))
	}
	for _, b := range registry.Bindings() {
		logger.Info("trigger registered", zap.String("name", b.Name), zap.Stringer("pattern", b.Pattern), zap.Any("kinds", b.Kinds))
	}

	// The mongo backend has no hosted trigger platform: its change stream feeds an asynq queue.
	var worker *asynq.Server
	if cfg.DocstoreBackend == config.BackendMongo {
		redisOpts := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		queue := asynq.NewClient(redisOpts)
		defer queue.Close()

		var mux *asynq.ServeMux
		worker, mux = cron.NewTriggerWorker(redisOpts, cron.WorkerConfig{
			Concurrency: cfg.QueueConcurrency,
			Timeout:     cfg.HandlerTimeout,
		}, registry, logger.Named("worker"))
		cron.StartTriggerWorker(worker, mux, logger.Named("worker"))

		cron.NewWatcher(mongoClient.Database(cfg.MongoDatabase), queue, cfg.QueueMaxRetry, logger.Named("watcher")).Start(ctx)
	}

	health.Start(ctx)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger.Named("http")))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		HandleEvent:       handlers.NewEventHandler(registry, cfg.HandlerTimeout).HandleEvent,
		Health:            handlers.HealthHandler(health.Status),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
