package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Read(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Read(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "ENVIRONMENT=staging\nPORT=8080\nTRANSAK_ENVIRONMENT=PRODUCTION\nTRANSAK_API_KEY=key\nTRANSAK_API_SECRET=secret\nCORS_ALLOWED_ORIGINS=https://app.example.com\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Environment:        "staging",
			Port:               8080,
			CorsAllowedOrigins: "https://app.example.com",
			TransakEnvironment: "PRODUCTION",
			TransakAPIKey:      "key",
			TransakAPISecret:   "secret",
		}, cfg)
	})

	t.Run("invalid port", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PORT=eighty\n"), 0o600))

		_, err := Read(path)
		assert.ErrorContains(t, err, `parsing PORT="eighty"`)
	})
}

func Test_Write(t *testing.T) {
	t.Run("creates the file and its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config", ".env")

		err := Write(Config{
			Environment:        "Development",
			Port:               8000,
			TransakEnvironment: "staging",
			TransakAPIKey:      "key",
			TransakAPISecret:   "secret",
		}, path)
		require.NoError(t, err)

		values, err := godotenv.Read(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"ENVIRONMENT":         "development",
			"PORT":                "8000",
			"TRANSAK_ENVIRONMENT": "STAGING",
			"TRANSAK_API_KEY":     "key",
			"TRANSAK_API_SECRET":  "secret",
		}, values)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("keeps unmanaged variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nTRANSAK_API_KEY=old\n"), 0o600))

		require.NoError(t, Write(Config{TransakAPIKey: "new", TransakAPISecret: "secret"}, path))

		values, err := godotenv.Read(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"LOG_LEVEL":          "debug",
			"TRANSAK_API_KEY":    "new",
			"TRANSAK_API_SECRET": "secret",
		}, values)
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		cfg := Config{
			Environment:        "production",
			Port:               9000,
			CorsAllowedOrigins: "https://app.example.com,https://*.example.com",
			TransakEnvironment: "PRODUCTION",
			TransakAPIKey:      "key",
			TransakAPISecret:   "s3cr=t",
		}
		require.NoError(t, Write(cfg, path))

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})
}
