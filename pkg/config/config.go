package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is everything read from ~/.config/leitor/config.toml. A
// missing file yields the defaults.
type Config struct {
	API      API      `toml:"api"`
	CDN      CDN      `toml:"cdn"`
	Backend  Backend  `toml:"backend"`
	Download Download `toml:"download"`
	Featured Featured `toml:"featured"`
}

// API points at the public catalog.
type API struct {
	BaseURL      string `toml:"base_url"`
	Token        string `toml:"token"`
	PageSize     int    `toml:"page_size"`
	RankingLimit int    `toml:"ranking_limit"`
}

// CDN points at the image host.
type CDN struct {
	Root       string `toml:"root"`
	Generation int    `toml:"generation"`
}

// Backend points at the managed auth and row storage service.
type Backend struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
}

// Featured pins works to the home screen strip by slug. When empty the
// strip falls back to the catalog ranking.
type Featured struct {
	Slugs []string `toml:"slugs"`
}

// Download controls offline chapter files.
type Download struct {
	Dir       string `toml:"dir"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
	Grayscale bool   `toml:"grayscale"`
}

func Default() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		API: API{
			PageSize:     24,
			RankingLimit: 10,
		},
		CDN: CDN{
			Generation: 1,
		},
		Download: Download{
			Dir:       filepath.Join(homeDir, "Downloads"),
			MaxWidth:  1264,
			MaxHeight: 1680,
			Grayscale: true,
		},
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "leitor", "config.toml")
}

// Load reads the config at path, layering it over the defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("ler configuração: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("configuração inválida: %w", err)
	}
	if cfg.API.PageSize <= 0 {
		cfg.API.PageSize = 24
	}
	if cfg.CDN.Generation <= 0 {
		cfg.CDN.Generation = 1
	}
	return cfg, nil
}
