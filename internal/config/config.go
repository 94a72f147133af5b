package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Host         string
		Port         int
		FrontendURLs []string
	}
	Log struct {
		Level  string
		Format string
	}
	Database struct {
		Driver string
		Path   string
		URL    string
	}
	Auth struct {
		JWTSecret     string
		JWTExpires    string
		TokenLifetime time.Duration
		CookieExpire  int
		CookieSecure  bool
		BcryptCost    int
	}
	Storage struct {
		Bucket          string
		KeyPrefix       string
		Region          string
		Endpoint        string
		PublicBaseURL   string
		AccessKeyID     string
		SecretAccessKey string
	}
	AWS struct {
		Profile string
	}
	Applications struct {
		EnforceOwnership bool
		MaxResumeBytes   int64
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// CookieLifetime returns how long the session cookie lives in the browser.
func (c Config) CookieLifetime() time.Duration {
	return time.Duration(c.Auth.CookieExpire) * 24 * time.Hour
}

var envBindings = map[string]string{
	"server.host":                   "HOST",
	"server.port":                   "PORT",
	"server.frontendurls":           "FRONTEND_URL",
	"log.level":                     "LOG_LEVEL",
	"log.format":                    "LOG_FORMAT",
	"database.driver":               "DB_DRIVER",
	"database.path":                 "DB_PATH",
	"database.url":                  "DATABASE_URL",
	"auth.jwtsecret":                "JWT_SECRET_KEY",
	"auth.jwtexpires":               "JWT_EXPIRES",
	"auth.cookieexpire":             "COOKIE_EXPIRE",
	"auth.cookiesecure":             "COOKIE_SECURE",
	"auth.bcryptcost":               "BCRYPT_COST",
	"storage.bucket":                "S3_BUCKET",
	"storage.keyprefix":             "S3_KEY_PREFIX",
	"storage.region":                "S3_REGION",
	"storage.endpoint":              "S3_ENDPOINT",
	"storage.publicbaseurl":         "S3_PUBLIC_BASE_URL",
	"storage.accesskeyid":           "S3_ACCESS_KEY_ID",
	"storage.secretaccesskey":       "S3_SECRET_ACCESS_KEY",
	"aws.profile":                   "AWS_PROFILE",
	"applications.enforceownership": "ENFORCE_APPLICATION_OWNERSHIP",
	"applications.maxresumebytes":   "MAX_RESUME_BYTES",
}

// Load reads configuration from environment variables, an optional .env
// file and an optional config file.
func Load() (Config, error) {
	// a missing .env is fine; real env vars win over its values
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.frontendurls", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/jobboard.db")
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwtexpires", "7d")
	v.SetDefault("auth.cookiesecure", true)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "resumes")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.publicbaseurl", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("applications.enforceownership", false)
	v.SetDefault("applications.maxresumebytes", 5<<20)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.FrontendURLs = splitList(v.GetString("server.frontendurls"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Database.Driver = strings.ToLower(v.GetString("database.driver"))
	cfg.Database.Path = v.GetString("database.path")
	cfg.Database.URL = v.GetString("database.url")
	cfg.Auth.JWTSecret = v.GetString("auth.jwtsecret")
	cfg.Auth.JWTExpires = v.GetString("auth.jwtexpires")
	cfg.Auth.CookieExpire = v.GetInt("auth.cookieexpire")
	cfg.Auth.CookieSecure = v.GetBool("auth.cookiesecure")
	cfg.Auth.BcryptCost = v.GetInt("auth.bcryptcost")
	cfg.Storage.Bucket = v.GetString("storage.bucket")
	cfg.Storage.KeyPrefix = v.GetString("storage.keyprefix")
	cfg.Storage.Region = v.GetString("storage.region")
	cfg.Storage.Endpoint = v.GetString("storage.endpoint")
	cfg.Storage.PublicBaseURL = v.GetString("storage.publicbaseurl")
	cfg.Storage.AccessKeyID = v.GetString("storage.accesskeyid")
	cfg.Storage.SecretAccessKey = v.GetString("storage.secretaccesskey")
	cfg.AWS.Profile = v.GetString("aws.profile")
	cfg.Applications.EnforceOwnership = v.GetBool("applications.enforceownership")
	cfg.Applications.MaxResumeBytes = v.GetInt64("applications.maxresumebytes")

	lifetime, err := ParseLifetime(cfg.Auth.JWTExpires)
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES: %w", err)
	}
	cfg.Auth.TokenLifetime = lifetime

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Auth.CookieExpire <= 0 {
		return errors.New("COOKIE_EXPIRE must be a positive number of days")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Server.Port)
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Applications.MaxResumeBytes <= 0 {
		return errors.New("MAX_RESUME_BYTES must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
