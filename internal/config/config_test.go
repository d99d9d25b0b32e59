package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.DB.GormEngine == "" {
		t.Error("DB.GormEngine should not be empty")
	}

	if cfg.Categories == nil {
		t.Fatal("Categories map should not be nil")
	}

	if len(cfg.Categories) == 0 {
		t.Error("Categories map should not be empty")
	}
}

func TestCategorySettings(t *testing.T) {
	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	tests := []struct {
		name          string
		key           string
		expectedLevel int
		requiredCount int
	}{
		{"administration category", "administration", 50, 3},
		{"staff category", "staff", 30, 1},
		{"user category", "user", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, exists := cfg.Categories[tt.key]
			if !exists {
				t.Errorf("category %s not found in config", tt.key)
				return
			}

			if cat.Level != tt.expectedLevel {
				t.Errorf("category %s Level = %v, want %v", tt.key, cat.Level, tt.expectedLevel)
			}

			if len(cat.Required) != tt.requiredCount {
				t.Errorf("category %s required count = %v, want %v", tt.key, len(cat.Required), tt.requiredCount)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				DB: DB{GormEngine: "sqlite"},
				Categories: map[string]Category{
					"user": {Label: "User", Level: 1},
				},
			},
			wantErr: false,
		},
		{
			name: "missing categories",
			config: Config{
				DB: DB{GormEngine: "sqlite"},
			},
			wantErr: true,
		},
		{
			name: "missing db engine",
			config: Config{
				Categories: map[string]Category{
					"user": {Label: "User", Level: 1},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	jsonOverride := `{"Title":"Test Override","DB":{"GormEngine":"postgres"}}`
	t.Setenv("PERMAFROST_CONFIG_JSON", jsonOverride)

	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.DB.GormEngine != "postgres" {
		t.Errorf("DB.GormEngine = %v, want %v", cfg.DB.GormEngine, "postgres")
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		DB:      DB{GormEngine: "sqlite"},
		Categories: map[string]Category{
			"user": {Label: "User", Level: 1, Optional: []string{"permafrost.view_role"}},
		},
	}

	tomlStr, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(tomlStr, "Title = \"Test\"") {
		t.Errorf("DumpConfig() output missing title: %s", tomlStr)
	}

	if !strings.Contains(tomlStr, "permafrost.view_role") {
		t.Errorf("DumpConfig() output missing category ref: %s", tomlStr)
	}
}
