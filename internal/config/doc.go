// Package config provides configuration management for
// gphotos-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	settings.OutputPath = "/photos"
//	settings.ConcurrentDownloads = 4
package config
