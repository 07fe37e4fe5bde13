package cli

import (
	"fmt"
	"log/slog"

	"player-registry/config"
	"player-registry/storage"
	"player-registry/storage/memory"
	redisstore "player-registry/storage/redis"
	"player-registry/storage/sqlstore"
)

// openStore connects the backend selected by STORE_BACKEND. Postgres tables
// are migrated on open.
func openStore(cfg *config.Config) (storage.PlayerStore, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		store, err := sqlstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case config.BackendRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		return redisstore.New(redisCfg)
	case config.BackendMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func closeStore(store storage.PlayerStore) {
	if err := store.Close(); err != nil {
		logger.Warn("failed to close store", slog.String("error", err.Error()))
	}
}
