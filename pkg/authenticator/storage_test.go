package authenticator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/authenticator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := authenticator.NewMemoryStorage()

	_, err := storage.Get(ctx, "missing")
	assert.ErrorIs(t, err, authenticator.ErrKeyNotFound)

	require.NoError(t, storage.Set(ctx, "slot", "v1"))
	require.NoError(t, storage.Set(ctx, "slot", "v2"))

	value, err := storage.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}

func TestFileStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vault")
	storage := authenticator.NewFileStorage(dir)

	t.Run("missing key", func(t *testing.T) {
		_, err := storage.Get(ctx, "missing")
		assert.ErrorIs(t, err, authenticator.ErrKeyNotFound)
	})

	t.Run("directory created lazily", func(t *testing.T) {
		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err), "reads must not create the directory")

		require.NoError(t, storage.Set(ctx, "slot", "payload"))
		value, err := storage.Get(ctx, "slot")
		require.NoError(t, err)
		assert.Equal(t, "payload", value)
	})

	t.Run("secret-safe permissions", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "perms", "payload"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			info, err := entry.Info()
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		}
	})

	t.Run("separators sanitized", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "otpkit:accounts", "payload"))
		value, err := storage.Get(ctx, "otpkit:accounts")
		require.NoError(t, err)
		assert.Equal(t, "payload", value)

		_, err = os.Stat(filepath.Join(dir, "otpkit_accounts"))
		assert.NoError(t, err)
	})
}
