package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// OutputPath is the base directory downloads are organized under,
	// as <OutputPath>/<year>/<month>/<day>/<filename>.
	OutputPath string `json:"output_path"`

	// CacheDir is where per-scope CSV listings are stored.
	CacheDir string `json:"cache_dir"`

	// DisableCache forces a fresh enumeration even when a cached
	// listing exists. The fresh listing still overwrites the cache.
	DisableCache bool `json:"disable_cache"`

	// ConcurrentDownloads bounds the download worker pool per scope.
	ConcurrentDownloads int `json:"concurrent_downloads"`

	// PageSize is the enumeration page size, capped at 100 by the API.
	PageSize int `json:"page_size"`

	// OAuth client secret and cached token locations.
	CredentialsFile string `json:"credentials_file"`
	TokenFile       string `json:"token_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputPath:          "downloaded",
		CacheDir:            ".",
		DisableCache:        false,
		ConcurrentDownloads: 8,
		PageSize:            100,
		CredentialsFile:     "auth.json",
		TokenFile:           "token.json",
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
