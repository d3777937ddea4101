package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadConfigDefaults(t *testing.T) {
	file := writeConfig(t, "log:\n  level: debug\n")

	config, realpath, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, file, realpath)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "redis", config.KV.Type)
	assert.Equal(t, "127.0.0.1:6379", config.KV.Addr)
	assert.Equal(t, "qm:", config.KV.KeyPrefix)
	assert.Equal(t, 5, config.Link.ExistenceRetries)
	assert.Equal(t, 120*time.Millisecond, config.Link.ExistenceDelay())
}

func TestLoadConfigOverrides(t *testing.T) {
	file := writeConfig(t, `
kv:
  type: memory
  key-prefix: "staging:"
link:
  existence-retries: 3
  existence-retry-delay: 50ms
`)

	config, _, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "memory", config.KV.Type)
	assert.Equal(t, "staging:", config.KV.KeyPrefix)
	assert.Equal(t, 3, config.Link.ExistenceRetries)
	assert.Equal(t, 50*time.Millisecond, config.Link.ExistenceDelay())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestExistenceDelayFallsBackOnGarbage(t *testing.T) {
	c := LinkConfig{ExistenceRetryDelay: "soon"}
	assert.Equal(t, 120*time.Millisecond, c.ExistenceDelay())
}

func TestAppWithMemoryStore(t *testing.T) {
	file := writeConfig(t, "kv:\n  type: memory\n")
	config, _, err := LoadConfig(file)
	require.NoError(t, err)

	a, err := New(config)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.LinkService)
	assert.NotNil(t, a.Dao)
}

func TestAppUnknownStoreType(t *testing.T) {
	file := writeConfig(t, "kv:\n  type: etcd\n")
	config, _, err := LoadConfig(file)
	require.NoError(t, err)

	_, err = New(config)
	assert.Error(t, err)
}
