package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./repos", cfg.Scan.Root)
	assert.Equal(t, "description", cfg.Scan.DescriptionFile)
	assert.Equal(t, 8, cfg.Scan.Parallelism)
	assert.True(t, cfg.UI.RenderReadme)
	assert.Equal(t, int64(512*1024), cfg.UI.BlobSizeLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9999
  mode: debug
scan:
  root: /srv/git
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/srv/git", cfg.Scan.Root)
	assert.Equal(t, "0.0.0.0:9999", cfg.ServerAddress())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	// Untouched sections keep their defaults
	assert.Equal(t, 8, cfg.Scan.Parallelism)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
			Scan:   ScanConfig{Root: "./repos", Parallelism: 4},
			UI:     UIConfig{BlobSizeLimit: 1024},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scan.Root = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scan.Parallelism = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.UI.BlobSizeLimit = 0
	assert.Error(t, cfg.Validate())
}
