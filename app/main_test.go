package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruraljobs/portal/app/portal"
	"github.com/ruraljobs/portal/app/store"
)

func TestMakeStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		opts.Store.Type = "memory"
		st, err := makeStore(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &store.Memory{}, st)
	})

	t.Run("file", func(t *testing.T) {
		opts.Store.Type = "file"
		opts.Store.Path = filepath.Join(t.TempDir(), "data")
		st, err := makeStore(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &store.File{}, st)
	})

	t.Run("sqlite", func(t *testing.T) {
		opts.Store.Type = "sqlite"
		opts.Store.SQLite = filepath.Join(t.TempDir(), "portal.db")
		st, err := makeStore(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &store.SQLite{}, st)
		require.NoError(t, st.Close())
	})

	t.Run("unsupported", func(t *testing.T) {
		opts.Store.Type = "etcd"
		_, err := makeStore(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported store type")
	})
}

func TestSeed(t *testing.T) {
	t.Run("built-in dataset", func(t *testing.T) {
		opts.SeedFile = ""
		repo := portal.NewRepository(store.NewMemory())
		require.NoError(t, seed(repo))

		users, err := repo.Users.All()
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("missing seed file", func(t *testing.T) {
		opts.SeedFile = filepath.Join(t.TempDir(), "nope.yml")
		defer func() { opts.SeedFile = "" }()

		repo := portal.NewRepository(store.NewMemory())
		assert.Error(t, seed(repo))
	})
}

func TestSetupLogs(t *testing.T) {
	// smoke only, the log package keeps global state
	setupLogs(true, true)
	setupLogs(true, false)
	setupLogs(false, false)
}
