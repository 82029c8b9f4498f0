package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() does not validate: %v", err)
	}
	if cfg.FallbackCategory != "Khác" {
		t.Errorf("fallback = %q, want %q", cfg.FallbackCategory, "Khác")
	}
	if cfg.Categories[0].Name != "Ăn uống" {
		t.Errorf("first category = %q, want %q", cfg.Categories[0].Name, "Ăn uống")
	}
	if _, ok := cfg.unitSet()["CHAI"]; !ok {
		t.Error("unit vocabulary missing CHAI")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "no categories", mutate: func(c *Config) { c.Categories = nil }, wantErr: true},
		{name: "empty category name", mutate: func(c *Config) { c.Categories[0].Name = "" }, wantErr: true},
		{name: "category without keywords", mutate: func(c *Config) { c.Categories[0].Keywords = nil }, wantErr: true},
		{name: "no fallback", mutate: func(c *Config) { c.FallbackCategory = "" }, wantErr: true},
		{name: "no units", mutate: func(c *Config) { c.Units = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	content := `{
		"categories": [{"name": "Văn phòng phẩm", "keywords": ["giấy", "bút"]}],
		"fallback_category": "Chưa phân loại"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	// Overridden sections replace the defaults; untouched ones remain.
	if len(cfg.Categories) != 1 || cfg.Categories[0].Name != "Văn phòng phẩm" {
		t.Errorf("categories not overridden: %+v", cfg.Categories)
	}
	if cfg.FallbackCategory != "Chưa phân loại" {
		t.Errorf("fallback = %q", cfg.FallbackCategory)
	}
	if len(cfg.Units) == 0 {
		t.Error("default units lost during merge")
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
