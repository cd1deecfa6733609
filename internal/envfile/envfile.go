// Package envfile reads and writes the .env file holding the gateway configuration.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	KeyEnvironment        = "ENVIRONMENT"
	KeyPort               = "PORT"
	KeyCorsAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	KeyTransakEnvironment = "TRANSAK_ENVIRONMENT"
	KeyTransakAPIKey      = "TRANSAK_API_KEY"
	KeyTransakAPISecret   = "TRANSAK_API_SECRET"
)

// Config represents the values managed by the setup wizard.
type Config struct {
	Environment        string // development, staging or production
	Port               int
	CorsAllowedOrigins string // comma-separated
	TransakEnvironment string // STAGING or PRODUCTION
	TransakAPIKey      string
	TransakAPISecret   string
}

// Read loads the managed values from path. A missing file yields an empty Config.
func Read(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading env file %s: %w", path, err)
	}

	cfg := Config{
		Environment:        values[KeyEnvironment],
		CorsAllowedOrigins: values[KeyCorsAllowedOrigins],
		TransakEnvironment: values[KeyTransakEnvironment],
		TransakAPIKey:      values[KeyTransakAPIKey],
		TransakAPISecret:   values[KeyTransakAPISecret],
	}
	if port := values[KeyPort]; port != "" {
		if cfg.Port, err = strconv.Atoi(port); err != nil {
			return Config{}, fmt.Errorf("parsing %s=%q: %w", KeyPort, port, err)
		}
	}

	return cfg, nil
}

// Write stores cfg in path, keeping the variables of an existing file that the wizard does not manage. The file
// holds the API secret, so it is only readable by its owner.
func Write(cfg Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading env file %s: %w", path, err)
		}
		values = map[string]string{}
	}

	for key, value := range cfg.toMap() {
		if value == "" {
			delete(values, key)
			continue
		}
		values[key] = value
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err = godotenv.Write(values, path); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err = os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restricting permissions of %s: %w", path, err)
	}

	return nil
}

func (cfg Config) toMap() map[string]string {
	port := ""
	if cfg.Port > 0 {
		port = strconv.Itoa(cfg.Port)
	}

	return map[string]string{
		KeyEnvironment:        strings.ToLower(cfg.Environment),
		KeyPort:               port,
		KeyCorsAllowedOrigins: cfg.CorsAllowedOrigins,
		KeyTransakEnvironment: strings.ToUpper(cfg.TransakEnvironment),
		KeyTransakAPIKey:      cfg.TransakAPIKey,
		KeyTransakAPISecret:   cfg.TransakAPISecret,
	}
}
