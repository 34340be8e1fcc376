package quota

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tikscope/tikscope/internal/config"
)

func TestOpen_DefaultsToFileBackend(t *testing.T) {
	cfg := &config.Config{
		QuotaFile: filepath.Join(t.TempDir(), "quota.json"),
		VIPUsers:  []string{"42"},
	}

	store, err := Open(cfg)
	require.NoError(t, err)
	defer store.Close()

	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("Open() backend = %T, want *FileStore", store)
	}
	require.True(t, store.IsVIP("42"))
	require.False(t, store.IsVIP("7"))
}

func TestOpen_SelectsRedisBackend(t *testing.T) {
	cfg := &config.Config{
		QuotaFile: filepath.Join(t.TempDir(), "quota.json"),
		RedisAddr: "localhost:6379",
	}

	store, err := Open(cfg)
	require.NoError(t, err)
	defer store.Close()

	if _, ok := store.(*RedisStore); !ok {
		t.Fatalf("Open() backend = %T, want *RedisStore", store)
	}
}
