package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		st, err := NewSQLite(dbPath)
		require.NoError(t, err)
		assert.NotNil(t, st)
		require.NoError(t, st.Close())
	})

	t.Run("invalid path", func(t *testing.T) {
		st, err := NewSQLite("/invalid/path/that/does/not/exist/test.db")
		assert.Error(t, err)
		assert.Nil(t, st)
	})
}

func TestSQLite_TableCreated(t *testing.T) {
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	var count int
	err = st.db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Set("trainings", []byte(`[{"id":"t1"}]`)))
	require.NoError(t, st.Close())

	reopened, err := NewSQLite(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.Get("trainings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"t1"}]`, string(val))
}
