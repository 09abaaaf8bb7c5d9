package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.API.PageSize)
	assert.Equal(t, 1, cfg.CDN.Generation)
	assert.True(t, cfg.Download.Grayscale)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://api.example.com"
token = "tok"
page_size = 12

[cdn]
root = "https://cdn.example.com"
generation = 2

[backend]
url = "https://backend.example.com"
anon_key = "anon"

[download]
dir = "/tmp/leitor"
grayscale = false

[featured]
slugs = ["torre-azul", "mar-de-aco"]
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 12, cfg.API.PageSize)
	assert.Equal(t, 2, cfg.CDN.Generation)
	assert.Equal(t, "anon", cfg.Backend.AnonKey)
	assert.Equal(t, "/tmp/leitor", cfg.Download.Dir)
	assert.False(t, cfg.Download.Grayscale)
	assert.Equal(t, []string{"torre-azul", "mar-de-aco"}, cfg.Featured.Slugs)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10, cfg.API.RankingLimit)
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api = {"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadClampsNonsenseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
page_size = 0

[cdn]
generation = -3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.API.PageSize)
	assert.Equal(t, 1, cfg.CDN.Generation)
}
