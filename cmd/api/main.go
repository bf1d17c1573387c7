package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/veltra/pos-admin-service/config"
	"github.com/veltra/pos-admin-service/internal/audit"
	auditH "github.com/veltra/pos-admin-service/internal/audit/handler"
	auditRepoPkg "github.com/veltra/pos-admin-service/internal/audit/repository"
	"github.com/veltra/pos-admin-service/internal/auth"
	authH "github.com/veltra/pos-admin-service/internal/auth/handler"
	"github.com/veltra/pos-admin-service/internal/httpserver"
	"github.com/veltra/pos-admin-service/internal/idempotency"
	invH "github.com/veltra/pos-admin-service/internal/inventory/handler"
	invListenerPkg "github.com/veltra/pos-admin-service/internal/inventory/listener"
	invRepoPkg "github.com/veltra/pos-admin-service/internal/inventory/repository"
	invUCPkg "github.com/veltra/pos-admin-service/internal/inventory/usecase"
	prodH "github.com/veltra/pos-admin-service/internal/product/handler"
	prodRepoPkg "github.com/veltra/pos-admin-service/internal/product/repository"
	prodUCPkg "github.com/veltra/pos-admin-service/internal/product/usecase"
	saleH "github.com/veltra/pos-admin-service/internal/sale/handler"
	saleRepoPkg "github.com/veltra/pos-admin-service/internal/sale/repository"
	saleUCPkg "github.com/veltra/pos-admin-service/internal/sale/usecase"
	whH "github.com/veltra/pos-admin-service/internal/warehouse/handler"
	whRepoPkg "github.com/veltra/pos-admin-service/internal/warehouse/repository"
	whUCPkg "github.com/veltra/pos-admin-service/internal/warehouse/usecase"
	"github.com/veltra/pos-admin-service/pkg/broker"
	"github.com/veltra/pos-admin-service/pkg/cache"
	"github.com/veltra/pos-admin-service/pkg/logger"
	"github.com/veltra/pos-admin-service/pkg/postgres"
	"github.com/veltra/pos-admin-service/pkg/search"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.Config{
		IsDevelopment:     !cfg.Server.IsProduction(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.IsProduction() {
		logConfig.Encoding = "json"
		logConfig.Level = "info"
	}

	appLogger := logger.New(logConfig)
	defer appLogger.Sync()

	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("db_name", cfg.Postgres.DBName))

	var redisClient *cache.RedisClient
	if rc, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		appLogger.Warn("redis unavailable, caching and locks disabled", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
		appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("elasticsearch unavailable, search falls back to sql", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("connected to elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	auditRepo := auditRepoPkg.NewPGRepository(db)
	recorder := audit.NewRecorder(auditRepo, appLogger)

	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	whRepo := whRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)

	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, recorder, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, recorder, appLogger)
	whUC := whUCPkg.NewWarehouseUseCase(whRepo, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, recorder, appLogger)

	idemTTL := time.Duration(cfg.Idempotency.TTLSeconds) * time.Second
	var idemStore idempotency.Store
	if cfg.Idempotency.Backend == "redis" && redisClient != nil {
		idemStore = idempotency.NewRedisStore(redisClient, idemTTL)
		appLogger.Info("idempotency store backed by redis")
	} else {
		idemStore = idempotency.NewMemoryStore(idemTTL, cfg.Idempotency.MaxEntries)
	}

	roles := auth.NewRoleResolver(cfg.Auth, cfg.POS)
	codec := auth.NewCodec(cfg.Session, cfg.Server.IsProduction())
	gate := auth.NewPasswordGate(cfg.POS)
	guard := auth.NewGuard(codec, roles, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		listener := invListenerPkg.NewOrderListener(consumer, invUC, appLogger)
		go listener.Start(ctx)
		appLogger.Info("order event listener started",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpserver.NewRouter(guard, httpserver.Handlers{
		Auth:      authH.NewAuthHandler(codec, roles, gate, cfg.Server.IsProduction(), appLogger),
		Product:   prodH.NewProductHandler(prodUC, appLogger),
		Inventory: invH.NewInventoryHandler(invUC, appLogger),
		Warehouse: whH.NewWarehouseHandler(whUC, appLogger),
		Sale:      saleH.NewSaleHandler(saleUC, idemStore, appLogger),
		Audit:     auditH.NewAuditHandler(auditRepo, appLogger),
	})

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting http server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
