package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darianmavgo/json2csv/converters/common"
)

func TestExportAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.hcl")

	// Test Export
	cfg := DefaultConfig()
	cfg.Format = "xlsx"
	cfg.Encoding = "windows-1252"
	cfg.InputEncoding = "shift_jis"
	cfg.NullValue = "NULL"
	cfg.MissingField = "default"
	cfg.Overwrite = true
	cfg.CRLF = true
	cfg.BatchSize = 500
	err := Export(configPath, cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Test Load
	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loadedCfg != *cfg {
		t.Errorf("loaded config %+v, want %+v", *loadedCfg, *cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.hcl")
	err := os.WriteFile(configPath, []byte(""), 0644)
	if err != nil {
		t.Fatalf("failed to write empty config: %v", err)
	}

	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loadedCfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", *loadedCfg)
	}
}

func TestLoadPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.hcl")
	content := "null_value = \"n/a\"\noverwrite = true\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loadedCfg.NullValue != "n/a" || !loadedCfg.Overwrite {
		t.Errorf("explicit values not applied: %+v", *loadedCfg)
	}
	if loadedCfg.Format != "csv" || loadedCfg.BatchSize != 1000 {
		t.Errorf("defaults not kept: %+v", *loadedCfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Syntax", "format = "},
		{"UnknownAttribute", "delimiter = \";\"\n"},
		{"BadPolicy", "missing_field = \"skip\"\n"},
		{"BadBatchSize", "batch_size = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "bad.hcl")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestConversionConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NullValue = "-"
	cfg.CRLF = true

	cc := cfg.ConversionConfig("people")
	if cc.TableName != "people" || cc.NullValue != "-" || !cc.UseCRLF {
		t.Errorf("unexpected conversion config: %+v", *cc)
	}
	if cc.MissingField != common.MissingFieldError {
		t.Errorf("expected missing field policy %q, got %q", common.MissingFieldError, cc.MissingField)
	}
}
