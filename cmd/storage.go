package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/database"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

// openStore 按配置选择状态存储，返回的cleanup负责释放连接
func openStore(ctx context.Context, cfg *configs.Config, log *logger.Logger) (store.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("Using in-memory state store, state is lost on restart")
		return store.NewMemoryStore(), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Using redis state store", "addr", cfg.Redis.Addr)
		return store.NewRedisStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case "gorm", "":
		db, err := database.Initialize(cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewGormStore(db), func() { database.Close(db, log) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
