package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFileFlag    = "--env-file"
	envFileEnvVar  = "ENV_FILE"
	defaultEnvFile = ".env"
)

// LoadEnvFile loads the Transak credentials and the other options from an env file.
// Priority: --env-file flag > ENV_FILE environment variable > .env in working directory
func LoadEnvFile() error {
	if envFilePath := determineEnvFilePath(); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFilePath, err)
		}
		return nil
	}

	err := godotenv.Load(defaultEnvFile)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s file: %w", defaultEnvFile, err)
}

// ResolveEnvFilePath returns the file LoadEnvFile reads from, which is also the file the setup wizard writes to.
func ResolveEnvFilePath() string {
	if envFilePath := determineEnvFilePath(); envFilePath != "" {
		return envFilePath
	}
	return toAbsolutePath(defaultEnvFile)
}

func determineEnvFilePath() string {
	if path := parseEnvFileFlag(os.Args); path != "" {
		return toAbsolutePath(path)
	}
	return toAbsolutePath(os.Getenv(envFileEnvVar))
}

// parseEnvFileFlag reads --env-file from the raw arguments, since the file must be loaded before cobra parses them.
func parseEnvFileFlag(args []string) string {
	for i, arg := range args {
		if arg == envFileFlag && i+1 < len(args) {
			return args[i+1]
		}
		if value, found := strings.CutPrefix(arg, envFileFlag+"="); found {
			return value
		}
	}
	return ""
}

func toAbsolutePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
