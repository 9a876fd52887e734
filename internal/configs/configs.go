package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	JWTSecret              string
	SessionCookieName      string
	SessionCookieSecure    bool
	LoginPageURL           string
	BcryptCost             int
	StorageDriver          string
	UploadDir              string
	S3Bucket               string
	S3Region               string
	S3Endpoint             string
	S3AccessKey            string
	S3SecretKey            string
	S3Prefix               string
	RateLimit              int
	AuthRateLimit          int
	RedisAddr              string
	RedisKeyPrefix         string
	LogLevel               string
	LogFormat              string
	LogFile                string
	ShutdownTimeoutSeconds int
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// SetDefaults registers every key with its default so that viper resolves
// it from the environment (APP_PORT, JWT_SECRET, ...) or a bound flag.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "3000")
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_dsn", "tasks.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_cookie_name", "jwt")
	v.SetDefault("session_cookie_secure", false)
	v.SetDefault("login_page_url", "/frontend/index.html")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("storage_driver", "local")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_prefix", "attachments/")
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("auth_rate_limit_per_minute", 10)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_key_prefix", "taskmanager:ratelimit:")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_file", "")
	v.SetDefault("shutdown_timeout_seconds", 20)
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", v.GetString("app_host"), v.GetString("app_port")),
		DatabaseDriver:         v.GetString("database_driver"),
		DatabaseDSN:            v.GetString("database_dsn"),
		JWTSecret:              v.GetString("jwt_secret"),
		SessionCookieName:      v.GetString("session_cookie_name"),
		SessionCookieSecure:    v.GetBool("session_cookie_secure"),
		LoginPageURL:           v.GetString("login_page_url"),
		BcryptCost:             v.GetInt("bcrypt_cost"),
		StorageDriver:          v.GetString("storage_driver"),
		UploadDir:              v.GetString("upload_dir"),
		S3Bucket:               v.GetString("s3_bucket"),
		S3Region:               v.GetString("s3_region"),
		S3Endpoint:             v.GetString("s3_endpoint"),
		S3AccessKey:            v.GetString("s3_access_key"),
		S3SecretKey:            v.GetString("s3_secret_key"),
		S3Prefix:               v.GetString("s3_prefix"),
		RateLimit:              v.GetInt("rate_limit_per_minute"),
		AuthRateLimit:          v.GetInt("auth_rate_limit_per_minute"),
		RedisAddr:              v.GetString("redis_addr"),
		RedisKeyPrefix:         v.GetString("redis_key_prefix"),
		LogLevel:               v.GetString("log_level"),
		LogFormat:              v.GetString("log_format"),
		LogFile:                v.GetString("log_file"),
		ShutdownTimeoutSeconds: v.GetInt("shutdown_timeout_seconds"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStorageOnly resolves the config for commands that never issue
// sessions, so JWT_SECRET may be empty.
func LoadStorageOnly(v *viper.Viper) (Config, error) {
	if v.GetString("jwt_secret") == "" {
		v.Set("jwt_secret", "unused")
	}
	return Load(v)
}

func validate(cfg Config) error {
	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", cfg.DatabaseDriver))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.SessionCookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	switch cfg.StorageDriver {
	case "local":
		if cfg.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR must not be empty"))
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET must not be empty when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be local or s3, got %q", cfg.StorageDriver))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.AuthRateLimit <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}

	return errors.Join(errs...)
}
