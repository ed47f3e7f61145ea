package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first .env/.env.local file found.
// Existing process environment variables are not overwritten.
func loadEnvFile() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
		return nil
	}
	return os.ErrNotExist
}
