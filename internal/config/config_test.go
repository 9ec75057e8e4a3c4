package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.AMQPQueue != "arquivar_documentos" {
		t.Errorf("default queue = %q", cfg.AMQPQueue)
	}
	if cfg.ArchiveBatchSize != 10 {
		t.Errorf("default batch size = %d", cfg.ArchiveBatchSize)
	}
	if cfg.LedgerEnabled() {
		t.Errorf("ledger should be disabled without a spreadsheet id")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REVENDA_NOME", "Auto Center Planalto Ltda")
	t.Setenv("LEDGER_SPREADSHEET_ID", "sheet-id")
	t.Setenv("ARCHIVE_INTERVAL", "2m")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.RevendaNome != "Auto Center Planalto Ltda" {
		t.Errorf("nome = %q", cfg.RevendaNome)
	}
	if !cfg.LedgerEnabled() {
		t.Errorf("ledger should be enabled")
	}
	if cfg.ArchiveInterval != 2*time.Minute {
		t.Errorf("interval = %s", cfg.ArchiveInterval)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad port", func(c *Config) { c.Port = "http" }, false},
		{"port out of range", func(c *Config) { c.Port = "70000" }, false},
		{"empty db path", func(c *Config) { c.SQLiteDBPath = " " }, false},
		{"empty nome", func(c *Config) { c.RevendaNome = "" }, false},
		{"bad uf", func(c *Config) { c.RevendaUF = "Paraná" }, false},
		{"zero batch", func(c *Config) { c.ArchiveBatchSize = 0 }, false},
		{"tiny interval", func(c *Config) { c.ArchiveInterval = time.Millisecond }, false},
	}
	for _, tc := range cases {
		cfg := Load()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
