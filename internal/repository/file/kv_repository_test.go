package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wallet_client/internal/custom_err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	repo, err := NewKVRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "userData")
		assert.ErrorIs(t, err, custom_err.ErrNotFound)
	})

	t.Run("Set and survive a new instance", func(t *testing.T) {
		require.NoError(t, repo.SetMany(ctx, map[string][]byte{
			"userData":   []byte(`{"id":1}`),
			"walletData": []byte(`{"id":2}`),
		}))

		reopened, err := NewKVRepository(path)
		require.NoError(t, err)
		value, err := reopened.Get(ctx, "walletData")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":2}`, string(value))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "userData"))
		_, err := repo.Get(ctx, "userData")
		assert.ErrorIs(t, err, custom_err.ErrNotFound)

		_, err = repo.Get(ctx, "walletData")
		assert.NoError(t, err)
	})

	t.Run("Corrupt file is reported", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := repo.Get(ctx, "walletData")
		assert.ErrorIs(t, err, custom_err.ErrCorruptData)

		require.NoError(t, repo.Set(ctx, "authToken", []byte(`"t"`)))
		value, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, `"t"`, string(value))
	})
}
