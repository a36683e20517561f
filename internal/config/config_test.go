package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/envira/envira-cli/internal/constants"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != constants.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.DeviceID != constants.DefaultDeviceID {
		t.Errorf("DeviceID = %q, want default", cfg.DeviceID)
	}
	if cfg.ClientID == "" {
		t.Error("expected a generated client id")
	}
}

func TestLoad_ClientIDStableAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	first, err := Load(dir)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if first.ClientID != second.ClientID {
		t.Errorf("client id changed between loads: %q vs %q", first.ClientID, second.ClientID)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"base_url":"https://example.test/","device_id":"dev-1","client_id":"cid"}`), 0644)
	if err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://example.test" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.DeviceID != "dev-1" {
		t.Errorf("DeviceID = %q", cfg.DeviceID)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644)

	if _, err := Load(dir); err == nil {
		t.Error("expected an error for a malformed config file")
	}
}
