package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/api"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/config"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/logging"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/profile"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/redis"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/assistant"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/session"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/storage"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/worker"
)

func main() {
	logger := logging.New()

	if err := godotenv.Load(); err == nil {
		logger.Debug(".env file loaded")
	}

	cfg, err := config.Load(os.Getenv("ECOHABIT_CONFIG"))
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	opts := assistant.Options{
		Logger:             logger,
		MaxSessionMessages: cfg.Chat.MaxSessionMessages,
		RetentionDays:      cfg.Chat.RetentionDays,
		ApologyReply:       cfg.Chat.ApologyReply,
		Language:           cfg.Chat.Language,
	}

	// Persistence is optional; without a configured database the service
	// runs memory-only.
	dbType := os.Getenv("ECOHABIT_DB")
	if dbType == "" && len(cfg.Databases) > 0 {
		dbType = "sqlite3"
	}
	if dbType != "" {
		db, err := storage.Open(dbType, cfg)
		if err != nil {
			logger.Fatalf("open database: %v", err)
		}
		defer db.Close()
		if err := storage.Migrate(db, dbType); err != nil {
			logger.Fatalf("migrate database: %v", err)
		}
		opts.Persistence = storage.NewStore(db)
		opts.Profiles = profile.NewSQLProvider(db)
		logger.WithField("driver", dbType).Info("persistence enabled")
	}

	store := session.NewMemoryStore()
	opts.Store = store

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; it only coordinates cache invalidation between
	// instances.
	if cfg.Redis.Host != "" {
		rdb, err := redis.NewClient(cfg)
		if err != nil {
			logger.Fatalf("create redis client: %v", err)
		}
		defer rdb.Close()
		invalidator := session.NewInvalidator(rdb, logger)
		invalidator.Listen(ctx, store)
		opts.Invalidator = invalidator
	}

	service, err := assistant.NewService(opts)
	if err != nil {
		logger.Fatalf("init assistant service: %v", err)
	}

	cleanupInterval := time.Duration(cfg.Chat.CleanupInterval) * time.Minute
	service.StartCleanupLoop(ctx, cleanupInterval)

	workerCfg := worker.DispatcherConfig{
		MinWorkers:        cfg.BasicConfig.MinWorkers,
		MaxWorkers:        cfg.BasicConfig.MaxWorkers,
		QueueSize:         cfg.BasicConfig.QueueSize,
		WorkerIdleTimeout: time.Duration(cfg.BasicConfig.WorkerIdleTimeout) * time.Minute,
	}
	handlers := api.NewHandler(service, workerCfg, logger)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}
	if err := router.Run(addr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
