package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/pkg/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		driver      string
		expectType  any
		expectError bool
	}{
		{"default is file", "", &FileStore{}, false},
		{"file", DriverFile, &FileStore{}, false},
		{"sqlite", DriverSQLite, &SQLiteStore{}, false},
		{"memory", DriverMemory, &MemoryStore{}, false},
		{"unknown", "etcd", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, config.StorageConfig{Driver: tt.driver}, t.TempDir(), nil)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.expectType, store)
		})
	}
}
