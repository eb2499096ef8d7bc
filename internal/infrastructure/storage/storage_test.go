package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/infrastructure/blobstore"
	"nexusmarket/pkg/config"
)

func TestClientOptions(t *testing.T) {
	opts, err := ClientOptions(&config.Config{FirebaseServiceAccountJSON: `{"type":"service_account"}`})
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
	opts, err = ClientOptions(&config.Config{FirebaseServiceAccountPath: path})
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = ClientOptions(&config.Config{FirebaseServiceAccountPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	opts, err = ClientOptions(&config.Config{})
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestNewBlobStoreMemory(t *testing.T) {
	store, err := NewBlobStore(context.Background(), &config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &blobstore.Memory{}, store)
}

func TestNewBlobStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := NewBlobStore(ctx, &config.Config{
		StorageBackend: config.BackendRedis,
		RedisAddr:      mr.Addr(),
		StoragePrefix:  "test:",
	})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Update(ctx, "k", func(current []byte) ([]byte, error) {
		return []byte(`[]`), nil
	}))
	assert.True(t, mr.Exists("test:k"))
}

func TestNewBlobStoreRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewBlobStore(context.Background(), &config.Config{
		StorageBackend: config.BackendRedis,
		RedisAddr:      addr,
	})
	assert.Error(t, err)
}

func TestNewBlobStoreUnknown(t *testing.T) {
	_, err := NewBlobStore(context.Background(), &config.Config{StorageBackend: "tape"})
	assert.Error(t, err)
}
