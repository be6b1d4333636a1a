package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/core/ports"
	"github.com/kamal-hamza/inv-cli/pkg/config"
)

// Supported storage drivers
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Open builds the Store selected by cfg.Driver. dataDir holds file and sqlite data.
func Open(ctx context.Context, cfg config.StorageConfig, dataDir string, log logrus.FieldLogger) (ports.Store, error) {
	log = orDiscard(log)

	switch cfg.Driver {
	case DriverFile, "":
		log.WithField("dir", dataDir).Debug("using file storage")
		return NewFileStore(dataDir)

	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(dataDir, "inv.db")
		}
		log.WithField("path", path).Debug("using sqlite storage")
		return NewSQLiteStore(path, log)

	case DriverRedis:
		log.WithField("addr", cfg.RedisAddr).Debug("using redis storage")
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)

	case DriverMemory:
		log.Debug("using in-memory storage")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
