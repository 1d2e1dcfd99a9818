package app

import (
	"context"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/dawnpage/internal/config"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/redis"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/store/file"
	"github.com/MrSnakeDoc/dawnpage/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/dawnpage/internal/store/redis"
)

// Storage is a configured backend together with its cache and cleanup.
type Storage struct {
	Kind    string
	Backend store.Backend
	Cache   store.Cache
	close   func() error
}

// Close releases the backend's connections, if any.
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage builds the backend selected by cfg.Storage. The redis backend
// waits for the server within the configured connect timeout.
func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("memory storage selected, configuration is lost on restart")
		b := memory.New()
		return &Storage{Kind: cfg.Storage, Backend: b, Cache: b}, nil

	case config.StorageRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s := redisstore.NewStore(client)
		return &Storage{Kind: cfg.Storage, Backend: s, Cache: s, close: client.Close}, nil

	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
		}
		b := file.New(cfg.DataDir)
		log.Info("file storage selected", logger.String("dir", cfg.DataDir))
		return &Storage{Kind: config.StorageFile, Backend: b, Cache: b}, nil
	}
}
