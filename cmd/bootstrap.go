package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/rueidis"
	"gorm.io/gorm"

	config "github.com/Augustwise/fullstack-task-manager/internal/configs"
	"github.com/Augustwise/fullstack-task-manager/internal/logging"
	"github.com/Augustwise/fullstack-task-manager/internal/ratelimit"
	"github.com/Augustwise/fullstack-task-manager/internal/storage"
)

func newLogger(cfg config.Config) (*slog.Logger, error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel
	lc.Format = cfg.LogFormat
	lc.FilePath = cfg.LogFile
	return logging.New(lc)
}

func openDatabase(cfg config.Config, migrate bool) (*gorm.DB, func(), error) {
	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = sqlDB.Close() }

	if migrate {
		if err := config.Migrate(db); err != nil {
			closeDB()
			return nil, nil, err
		}
	}
	return db, closeDB, nil
}

func newStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
	case "local":
		return storage.NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// limiters holds the global and the sign-in limiter. With REDIS_ADDR set
// the counters live in redis and are shared between instances.
type limiters struct {
	global ratelimit.Limiter
	auth   ratelimit.Limiter
	redis  rueidis.Client
}

func (l limiters) Close() {
	if l.redis != nil {
		l.redis.Close()
	}
}

func newLimiters(cfg config.Config, logger *slog.Logger) (limiters, error) {
	global := ratelimit.Options{Limit: cfg.RateLimit, Window: time.Minute}
	auth := ratelimit.Options{Limit: cfg.AuthRateLimit, Window: time.Minute}

	if cfg.RedisAddr == "" {
		logger.Info("using in-process rate limiter")
		return limiters{
			global: ratelimit.NewMemoryLimiter(global),
			auth:   ratelimit.NewMemoryLimiter(auth),
		}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return limiters{}, err
	}
	logger.Info("using redis rate limiter", "addr", cfg.RedisAddr)

	return limiters{
		global: ratelimit.NewRedisLimiter(client, cfg.RedisKeyPrefix+"global:", global),
		auth:   ratelimit.NewRedisLimiter(client, cfg.RedisKeyPrefix+"auth:", auth),
		redis:  client,
	}, nil
}
