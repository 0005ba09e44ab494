package redis

import (
	"context"
	"os"
	"testing"

	"wallet_client/internal/custom_err"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	addr := "127.0.0.1:6379"
	if env := os.Getenv("TEST_REDIS_ADDR"); env != "" {
		addr = env
	}

	ctx := context.Background()
	client, err := NewClient(ctx, addr, "", 0)
	require.NoError(t, err, "Failed to connect to redis")

	repo := NewKVRepository(client, "test:"+uuid.NewString()+":")
	defer repo.Close()

	_, err = repo.Get(ctx, "userData")
	assert.ErrorIs(t, err, custom_err.ErrNotFound)

	require.NoError(t, repo.SetMany(ctx, map[string][]byte{
		"userData":   []byte(`{"id":1}`),
		"walletData": []byte(`{"id":2}`),
	}))

	user, err := repo.Get(ctx, "userData")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(user))

	require.NoError(t, repo.Delete(ctx, "userData", "walletData"))
	_, err = repo.Get(ctx, "walletData")
	assert.ErrorIs(t, err, custom_err.ErrNotFound)
}
