package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "landmine_detection.db", cfg.Database.Path)
	assert.Equal(t, 34.0522, cfg.Simulator.OriginLat)
	assert.Equal(t, time.Second, cfg.Simulator.TickEvery.Std())
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minealert.yaml")
	body := `
server:
  listen_addr: ":9090"
database:
  path: /tmp/test.db
simulator:
  origin_lat: 48.85
  origin_lon: 2.35
  tick_every: 250ms
  seed: 99
logging:
  debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 48.85, cfg.Simulator.OriginLat)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.TickEvery.Std())
	assert.Equal(t, int64(99), cfg.Simulator.Seed)
	assert.True(t, cfg.Logging.Debug)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulator:\n  tick_every: -1s\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
