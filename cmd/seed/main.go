package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mercato.backend/internal/config"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	domainrepo "mercato.backend/internal/domain/repositories"
	pgsql "mercato.backend/internal/infrastructure/datasources/postgres"
	"mercato.backend/internal/infrastructure/models"
	"mercato.backend/internal/infrastructure/repositories"
	"mercato.backend/pkg/crypto"
	"mercato.backend/pkg/logger"
)

var (
	loadCfg      = config.Load
	openAdminSQL = pgsql.NewAdminConnection
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{})
	}
	hashPassword = crypto.HashPassword
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.Env, cfg.Log.Level)
	defer logger.Sync()

	if err := ensureDatabase(ctx, cfg.Database); err != nil {
		return err
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := repositories.NewRoleRepository(db).EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	logger.Info(ctx, "Roles seeded")

	return seedDeveloper(ctx, repositories.NewUserRepository(db), cfg.Seed)
}

// ensureDatabase creates the application database through the maintenance connection when missing.
func ensureDatabase(ctx context.Context, cfg config.DatabaseConfig) error {
	admin, err := openAdminSQL(cfg)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	if err := admin.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up database %s: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(cfg.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}
	logger.Info(ctx, "Database created", zap.String("name", cfg.DBName))
	return nil
}

// seedDeveloper creates the bootstrap Developer account unless it already exists.
func seedDeveloper(ctx context.Context, users domainrepo.UserRepository, cfg config.SeedConfig) error {
	if cfg.DeveloperPassword == "" {
		logger.Warn(ctx, "SEED_DEVELOPER_PASSWORD not set, skipping developer account")
		return nil
	}

	existing, err := users.GetByUsername(ctx, cfg.DeveloperUsername)
	switch {
	case err == nil:
		if existing.Role != entities.RoleDeveloper {
			return fmt.Errorf("user %s exists with role %s", cfg.DeveloperUsername, existing.Role)
		}
		logger.Info(ctx, "Developer account already present", zap.Int64("user_id", existing.ID))
		return nil
	case !errors.Is(err, domainerrors.ErrNotFound):
		return fmt.Errorf("failed to look up developer: %w", err)
	}

	hash, err := hashPassword(cfg.DeveloperPassword)
	if err != nil {
		return fmt.Errorf("failed to hash developer password: %w", err)
	}
	user := &entities.User{
		Username:     cfg.DeveloperUsername,
		PasswordHash: hash,
		Role:         entities.RoleDeveloper,
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create developer: %w", err)
	}
	logger.Info(ctx, "Developer account created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return nil
}
