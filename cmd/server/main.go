package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gocloud.dev/blob"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mercato.backend/internal/config"
	"mercato.backend/internal/infrastructure/models"
	"mercato.backend/internal/infrastructure/repositories"
	"mercato.backend/internal/infrastructure/storage"
	"mercato.backend/internal/interfaces/http/handlers"
	"mercato.backend/internal/interfaces/http/middleware"
	"mercato.backend/internal/interfaces/http/validation"
	"mercato.backend/internal/usecases"
	"mercato.backend/pkg/jwt"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	openBucket      = storage.OpenFileBucket
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	shutdownSignal  = func() (<-chan os.Signal, func()) {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit, func() { signal.Stop(quit) }
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env, cfg.Log.Level)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	roleRepo := repositories.NewRoleRepository(db)
	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		if err := roleRepo.EnsureSeeded(ctx); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}
		logger.Info(ctx, "Schema migrated")
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	bucket, err := openBucket(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to open upload storage: %w", err)
	}
	avatars := storage.NewAvatarStore(bucket)
	defer avatars.Close()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	r := buildRouter(buildDeps(db, roleRepo, jwtService, sessionStore, avatars, cfg), cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	quit, stopSignals := shutdownSignal()
	defer stopSignals()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-quit:
		case <-done:
			return
		}
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Mercato backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

type avatarBucket interface {
	usecases.AvatarStorage
	Open(ctx context.Context, key string) (*blob.Reader, error)
}

func buildDeps(
	db *gorm.DB,
	roleRepo *repositories.RoleRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	avatars avatarBucket,
	cfg *config.Config,
) routeDeps {
	userRepo := repositories.NewUserRepository(db)
	roleRequestRepo := repositories.NewRoleRequestRepository(db)
	shopRepo := repositories.NewShopRepository(db)
	warehouseRepo := repositories.NewWarehouseRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, cfg.Security.SessionTTL)
	userUsecase := usecases.NewUserUsecase(userRepo, avatars, cfg.Upload.MaxAvatarBytes)
	roleUsecase := usecases.NewRoleUsecase(uow, roleRepo, roleRequestRepo, userRepo, notificationUsecase)
	shopUsecase := usecases.NewShopUsecase(shopRepo, notificationUsecase)
	warehouseUsecase := usecases.NewWarehouseUsecase(warehouseRepo, productRepo, notificationUsecase)
	productUsecase := usecases.NewProductUsecase(productRepo, shopRepo, warehouseRepo, categoryRepo)
	categoryUsecase := usecases.NewCategoryUsecase(categoryRepo)
	orderUsecase := usecases.NewOrderUsecase(uow, orderRepo, productRepo, shopRepo, warehouseRepo, notificationUsecase)
	cartUsecase := usecases.NewCartUsecase(cartRepo, wishlistRepo, productRepo)

	return routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		userHandler:         handlers.NewUserHandler(userUsecase, avatars),
		roleHandler:         handlers.NewRoleHandler(roleUsecase),
		shopHandler:         handlers.NewShopHandler(shopUsecase),
		warehouseHandler:    handlers.NewWarehouseHandler(warehouseUsecase),
		productHandler:      handlers.NewProductHandler(productUsecase),
		categoryHandler:     handlers.NewCategoryHandler(categoryUsecase),
		orderHandler:        handlers.NewOrderHandler(orderUsecase),
		cartHandler:         handlers.NewCartHandler(cartUsecase),
		notificationHandler: handlers.NewNotificationHandler(notificationUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService, sessionStore),
	}
}
