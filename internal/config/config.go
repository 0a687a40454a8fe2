package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultJWTSecret  = "change-this-in-production"
	defaultSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	Security SecurityConfig `koanf:"security"`
	Upload   UploadConfig   `koanf:"upload"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Seed     SeedConfig     `koanf:"seed"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `koanf:"port"`
	Env             string        `koanf:"env"`
	ReadTimeout     time.Duration `koanf:"readTimeout"`
	WriteTimeout    time.Duration `koanf:"writeTimeout"`
	ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `koanf:"level"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	DBName       string `koanf:"name"`
	SSLMode      string `koanf:"sslMode"`
	AutoMigrate  bool   `koanf:"autoMigrate"`
	MaxOpenConns int    `koanf:"maxOpenConns"`
	MaxIdleConns int    `koanf:"maxIdleConns"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return c.urlFor(c.DBName)
}

// AdminURL points at the maintenance database, used to create DBName when missing.
func (c DatabaseConfig) AdminURL() string {
	return c.urlFor("postgres")
}

func (c DatabaseConfig) urlFor(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string `koanf:"url"`
	Password string `koanf:"password"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `koanf:"secret"`
	Expiry time.Duration `koanf:"expiry"`
	Issuer string        `koanf:"issuer"`
}

// SecurityConfig holds session encryption settings
type SecurityConfig struct {
	SessionEncryptionKey string        `koanf:"sessionEncryptionKey"`
	SessionTTL           time.Duration `koanf:"sessionTTL"`
}

// UploadConfig holds avatar storage settings
type UploadConfig struct {
	Dir            string `koanf:"dir"`
	MaxAvatarBytes int64  `koanf:"maxAvatarBytes"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// SeedConfig holds the bootstrap developer account used by cmd/seed
type SeedConfig struct {
	DeveloperUsername string `koanf:"developerUsername"`
	DeveloperPassword string `koanf:"developerPassword"`
}

// envKeys maps supported environment variables onto config paths.
var envKeys = map[string]string{
	"SERVER_PORT":               "server.port",
	"SERVER_ENV":                "server.env",
	"SERVER_READ_TIMEOUT":       "server.readTimeout",
	"SERVER_WRITE_TIMEOUT":      "server.writeTimeout",
	"SERVER_SHUTDOWN_TIMEOUT":   "server.shutdownTimeout",
	"LOG_LEVEL":                 "log.level",
	"DB_HOST":                   "database.host",
	"DB_PORT":                   "database.port",
	"DB_USER":                   "database.user",
	"DB_PASSWORD":               "database.password",
	"DB_NAME":                   "database.name",
	"DB_SSLMODE":                "database.sslMode",
	"DB_AUTO_MIGRATE":           "database.autoMigrate",
	"DB_MAX_OPEN_CONNS":         "database.maxOpenConns",
	"DB_MAX_IDLE_CONNS":         "database.maxIdleConns",
	"REDIS_URL":                 "redis.url",
	"REDIS_PASSWORD":            "redis.password",
	"JWT_SECRET":                "jwt.secret",
	"JWT_EXPIRY":                "jwt.expiry",
	"JWT_ISSUER":                "jwt.issuer",
	"SESSION_ENCRYPTION_KEY":    "security.sessionEncryptionKey",
	"SESSION_TTL":               "security.sessionTTL",
	"UPLOAD_DIR":                "upload.dir",
	"UPLOAD_MAX_AVATAR_BYTES":   "upload.maxAvatarBytes",
	"METRICS_ENABLED":           "metrics.enabled",
	"SEED_DEVELOPER_USERNAME":   "seed.developerUsername",
	"SEED_DEVELOPER_PASSWORD":   "seed.developerPassword",
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Env:             "development",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Password:     "postgres",
			DBName:       "mercato",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
		JWT: JWTConfig{
			Secret: defaultJWTSecret,
			Expiry: 2 * time.Hour,
			Issuer: "mercato",
		},
		Security: SecurityConfig{
			SessionEncryptionKey: defaultSessionKey,
			SessionTTL:           2 * time.Hour,
		},
		Upload: UploadConfig{
			Dir:            "uploads",
			MaxAvatarBytes: 10 << 20,
		},
		Metrics: MetricsConfig{Enabled: true},
		Seed: SeedConfig{
			DeveloperUsername: "developer",
		},
	}
}

// Load layers defaults, the optional YAML file named by CONFIG_FILE, then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok || value == "" {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Expiry <= 0 {
		return errors.New("jwt.expiry must be positive")
	}
	if c.Upload.MaxAvatarBytes <= 0 {
		return errors.New("upload.maxAvatarBytes must be positive")
	}
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be set in production")
		}
		if c.Security.SessionEncryptionKey == defaultSessionKey {
			return errors.New("SESSION_ENCRYPTION_KEY must be set in production")
		}
	}
	return nil
}
