package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/envira/envira-cli/internal/constants"
)

// Config is the persisted client configuration. Everything here has a
// usable default so a missing file is not an error.
type Config struct {
	BaseURL  string `json:"base_url"`
	DeviceID string `json:"device_id"`
	// ClientID identifies this installation in logs. Generated on first run.
	ClientID string `json:"client_id"`
}

// Dir returns the envira config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	dir := filepath.Join(base, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

func path(dir string) string {
	return filepath.Join(dir, "config.json")
}

// Load reads the config file from dir, applying defaults for anything
// unset. A missing file yields a default config; the generated client id
// is written back so it stays stable across runs.
func Load(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path(dir))
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	changed := false
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DeviceID == "" {
		cfg.DeviceID = constants.DefaultDeviceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.New().String()
		changed = true
	}

	if changed {
		if err := Save(dir, cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Save writes the config file to dir.
func Save(dir string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
