package kv

import (
	"fmt"

	"agora/internal/config"
)

// Open selects and opens the KV backend named by the configuration.
func Open(cfg *config.Config) (KV, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.StorePath)
	case config.BackendSQLite:
		return NewSQLite(cfg.SQLitePath)
	case config.BackendPostgres:
		return NewPostgres(cfg.PostgresDSN())
	case config.BackendRedis:
		return NewRedis(cfg.RedisURL)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
