package driver_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/campaign/internal/config"
	"github.com/cory-johannsen/campaign/internal/storage/driver"
	"github.com/cory-johannsen/campaign/internal/storage/memory"
	"github.com/cory-johannsen/campaign/internal/storage/redis"
	"github.com/cory-johannsen/campaign/internal/storage/sqlite"
	"github.com/cory-johannsen/campaign/internal/storage/storetest"
)

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := driver.Open(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.Store{}, s)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	s, closeFn, err := driver.Open(ctx, config.Config{
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "c.db")},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &sqlite.Store{}, s)
	require.NoError(t, s.SaveCharacter(ctx, storetest.Character("pc_1", "Mira")))
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	s, closeFn, err := driver.Open(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: config.DriverRedis},
		Redis:   config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "t:"},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &redis.Store{}, s)

	require.NoError(t, s.SaveCharacter(context.Background(), storetest.Character("pc_1", "Mira")))
	assert.True(t, mr.Exists("t:character:pc_1"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, closeFn, err := driver.Open(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: config.DriverRedis},
		Redis:   config.RedisConfig{Addr: addr},
	}, zaptest.NewLogger(t))
	assert.Error(t, err)
	assert.NoError(t, closeFn())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, closeFn, err := driver.Open(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: "etcd"},
	}, zaptest.NewLogger(t))
	assert.Error(t, err)
	require.NotNil(t, closeFn)
}
