package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := LoadDefaultConfig()

	if cfg.Session.TTLMinutes != 60 {
		t.Errorf("Expected default session ttl_minutes to be 60, got %d", cfg.Session.TTLMinutes)
	}
	if cfg.Session.MaxSessions != 256 {
		t.Errorf("Expected default session max_sessions to be 256, got %d", cfg.Session.MaxSessions)
	}
	if cfg.Upload.MaxFileSizeMB != 32 {
		t.Errorf("Expected default upload max_file_size_mb to be 32, got %d", cfg.Upload.MaxFileSizeMB)
	}
	if cfg.GetHTTPPort() != HTTP_SERVER_PORT {
		t.Errorf("Expected HTTP port %d, got %d", HTTP_SERVER_PORT, cfg.GetHTTPPort())
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := LoadDefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got error: %v", err)
	}

	cfg = LoadDefaultConfig()
	cfg.Session.TTLMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Config with zero ttl_minutes should fail validation")
	}

	cfg = LoadDefaultConfig()
	cfg.Session.MaxSessions = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Config with negative max_sessions should fail validation")
	}

	cfg = LoadDefaultConfig()
	cfg.Upload.MaxFileSizeMB = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Config with zero max_file_size_mb should fail validation")
	}

	cfg = LoadDefaultConfig()
	cfg.Upload.MaxRows = -5
	if err := cfg.Validate(); err == nil {
		t.Error("Config with negative max_rows should fail validation")
	}

	// Zero max_rows means unlimited and must be accepted.
	cfg = LoadDefaultConfig()
	cfg.Upload.MaxRows = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Config with zero max_rows should validate, got error: %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := LoadDefaultConfig()
	cfg.Session.TTLMinutes = 15
	cfg.Session.MaxSessions = 8
	cfg.Upload.MaxRows = 1000

	path := filepath.Join(t.TempDir(), "sift.yml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Session.TTLMinutes != 15 {
		t.Errorf("Expected loaded ttl_minutes to be 15, got %d", loaded.Session.TTLMinutes)
	}
	if loaded.Session.MaxSessions != 8 {
		t.Errorf("Expected loaded max_sessions to be 8, got %d", loaded.Session.MaxSessions)
	}
	if loaded.Upload.MaxRows != 1000 {
		t.Errorf("Expected loaded max_rows to be 1000, got %d", loaded.Upload.MaxRows)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("LoadConfig should fail for a missing file")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	cfg := LoadDefaultConfig()
	cfg.Session.TTLMinutes = 0

	path := filepath.Join(t.TempDir(), "sift.yml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig should reject a config that fails validation")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := LoadDefaultConfig()

	if cfg.GetSessionTTL() != 60*time.Minute {
		t.Errorf("Expected session TTL of 60m, got %v", cfg.GetSessionTTL())
	}
	if cfg.GetMaxUploadBytes() != 32*1024*1024 {
		t.Errorf("Expected upload cap of 32MiB, got %d", cfg.GetMaxUploadBytes())
	}
	if cfg.GetHTTPAddr() != "0.0.0.0:2861" {
		t.Errorf("Expected listen address '0.0.0.0:2861', got '%s'", cfg.GetHTTPAddr())
	}
}
