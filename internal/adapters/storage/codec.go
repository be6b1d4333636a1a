package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// Load returns the value stored under key, or def when nothing is stored,
// the backend read fails, or the payload is not valid JSON for T.
// Failures are logged and never returned: availability wins over corruption detection.
func Load[T any](ctx context.Context, store ports.Store, key string, def T, log logrus.FieldLogger) T {
	log = orDiscard(log)

	data, err := store.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			log.WithError(err).WithField("key", key).Warn("storage read failed, using default")
		}
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.WithError(err).WithField("key", key).Warn("stored value is corrupt, using default")
		return def
	}
	return value
}

// Save serializes value and writes it under key, replacing any prior value
func Save[T any](ctx context.Context, store ports.Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Write(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
