// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/revenda and cmd/arquivo-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"revenda/internal/config"
	"revenda/internal/documents"
	"revenda/internal/log"
	"revenda/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite initializes a SQLite repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *log.Logger, dbPath string) *storage.SQLiteRepository {
	sqliteRepo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return sqliteRepo
}

// InitRenderer builds the document renderer from the configured letterhead.
// Returns the renderer or exits the process on failure.
func InitRenderer(logger *log.Logger, cfg *config.Config) *documents.Renderer {
	renderer, err := documents.NewRenderer(documents.Revenda{
		Nome:     cfg.RevendaNome,
		CNPJ:     cfg.RevendaCNPJ,
		Endereco: cfg.RevendaEndereco,
		Cidade:   cfg.RevendaCidade,
		UF:       cfg.RevendaUF,
		Telefone: cfg.RevendaTelefone,
	})
	if err != nil {
		logger.Error("Failed to initialize document renderer", "error", err)
		os.Exit(1)
	}
	return renderer
}
