package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultMaxResumeBytes is the single resume size limit shared by the referral
// form rules and the upload endpoint.
const DefaultMaxResumeBytes int64 = 5 * 1024 * 1024

// ErrMissingJWTSecret is returned by Load when no session signing secret is configured.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required")

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Dev       DevConfig       `mapstructure:"dev"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Host        string `mapstructure:"host"`
	Environment string `mapstructure:"environment"`
}

// IsProduction reports whether the server runs with production settings.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// DBConfig holds database specific configuration
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds the connection settings for the dashboard cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DashboardTTL time.Duration `mapstructure:"dashboard_ttl"`
}

// CORSConfig holds CORS specific configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig describes how identity-provider sessions are verified.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTAudience string `mapstructure:"jwt_audience"`
	CookieName  string `mapstructure:"cookie_name"`
}

// AIConfig selects the hosted language model.
type AIConfig struct {
	Provider string `mapstructure:"provider"` // openai or googleai
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

// StorageConfig holds resume blob storage settings.
type StorageConfig struct {
	ResumeDir      string        `mapstructure:"resume_dir"`
	MaxResumeBytes int64         `mapstructure:"max_resume_bytes"`
	UploadURLTTL   time.Duration `mapstructure:"upload_url_ttl"`
	PublicBaseURL  string        `mapstructure:"public_base_url"`
	SigningSecret  string        `mapstructure:"signing_secret"`
}

// DevConfig gates the development-only role tooling.
type DevConfig struct {
	SuperuserEmail string `mapstructure:"superuser_email"`
}

// SchedulerConfig holds the maintenance cron settings.
type SchedulerConfig struct {
	UploadCleanupSpec string        `mapstructure:"upload_cleanup_spec"`
	PendingUploadTTL  time.Duration `mapstructure:"pending_upload_ttl"`
}

// Load configuration from .env, config file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment.")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %v", err)
		}
	}

	v.SetEnvPrefix("API") // API_AUTH_JWT_SECRET, API_AI_API_KEY, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Configuration loaded: Server Port=%d, Env=%s, DB Host=%s, AI Provider=%s, Allowed Origins=%v",
		cfg.Server.Port, cfg.Server.Environment, cfg.DB.Host, cfg.AI.Provider, cfg.CORS.AllowedOrigins)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.environment", "development")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "referral_network")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dashboard_ttl", time.Minute)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("auth.cookie_name", "sb-access-token")
	v.SetDefault("auth.jwt_audience", "authenticated")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("storage.resume_dir", "./data/resumes")
	v.SetDefault("storage.max_resume_bytes", DefaultMaxResumeBytes)
	v.SetDefault("storage.upload_url_ttl", 15*time.Minute)
	v.SetDefault("storage.public_base_url", "http://localhost:8080")
	v.SetDefault("scheduler.upload_cleanup_spec", "@every 1h")
	v.SetDefault("scheduler.pending_upload_ttl", 24*time.Hour)
}

// applyEnvOverrides lets the plain variable names used by deployment manifests win over everything else.
func applyEnvOverrides(cfg *Config) {
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Server.Environment = env
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.DB.Port = port
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.DB.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if secret := os.Getenv("SUPABASE_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.AI.APIKey == "" {
		cfg.AI.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && cfg.AI.APIKey == "" && cfg.AI.Provider == "googleai" {
		cfg.AI.APIKey = key
	}
	if email := os.Getenv("DEV_SUPERUSER_EMAIL"); email != "" {
		cfg.Dev.SuperuserEmail = email
	}

	// Comma-separated string -> slice
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		cfg.CORS.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.CORS.AllowedOrigins {
			cfg.CORS.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.Storage.MaxResumeBytes <= 0 {
		c.Storage.MaxResumeBytes = DefaultMaxResumeBytes
	}
	if c.Storage.SigningSecret == "" {
		c.Storage.SigningSecret = c.Auth.JWTSecret
	}
	return nil
}
