package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// runStoreContract exercises the behaviour every Store backend must share
func runStoreContract(t *testing.T, store ports.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Read(ctx, "absent")
		assert.True(t, errors.Is(err, ports.ErrNotFound), "got %v", err)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "computers", []byte(`[{"id":"a"}]`)))
		data, err := store.Read(ctx, "computers")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"}]`, string(data))
	})

	t.Run("write replaces prior value", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "changes", []byte(`[{"id":"1"},{"id":"2"}]`)))
		require.NoError(t, store.Write(ctx, "changes", []byte(`[]`)))
		data, err := store.Read(ctx, "changes")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "computers", []byte(`["x"]`)))
		require.NoError(t, store.Write(ctx, "changes", []byte(`["y"]`)))

		a, err := store.Read(ctx, "computers")
		require.NoError(t, err)
		b, err := store.Read(ctx, "changes")
		require.NoError(t, err)
		assert.JSONEq(t, `["x"]`, string(a))
		assert.JSONEq(t, `["y"]`, string(b))
	})
}
