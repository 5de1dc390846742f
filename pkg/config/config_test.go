package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `{"db_url": "file:gator.db", "current_user_name": "ana"}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file:gator.db", cfg.DBURL)
		assert.Equal(t, "ana", cfg.CurrentUserName)
	})

	t.Run("no active user is fine", func(t *testing.T) {
		path := writeConfig(t, `{"db_url": "file:gator.db"}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.CurrentUserName)
	})

	t.Run("missing db_url rejected", func(t *testing.T) {
		path := writeConfig(t, `{"current_user_name": "ana"}`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingDBURL)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeConfig(t, `{"db_url": `)

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := &Config{DBURL: "file:gator.db"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DBURL, loaded.DBURL)
	assert.Empty(t, loaded.CurrentUserName)
}

func TestConfig_SetUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := &Config{DBURL: "file:gator.db"}
	require.NoError(t, cfg.SetUser("ana", path))
	assert.Equal(t, "ana", cfg.CurrentUserName)

	// the change is persisted, not just in memory
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ana", loaded.CurrentUserName)
}

func TestConfig_SaveReplacesWhole(t *testing.T) {
	path := writeConfig(t, `{"db_url": "file:old.db", "current_user_name": "ana"}`)

	cfg := &Config{DBURL: "file:new.db"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file:new.db", loaded.DBURL)
	assert.Empty(t, loaded.CurrentUserName, "last writer wins, no merge")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
