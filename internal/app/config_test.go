package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
core:
  telegram:
    token: "123456:test-token"
    run_mode: longpoll
extractor:
  base_url: "http://localhost:9000"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "http://localhost:9000", cfg.Extractor.BaseURL)
}

func TestLoadConfigMissingExtractor(t *testing.T) {
	path := writeConfig(t, `
core:
  telegram:
    token: "123456:test-token"
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "extractor.base_url")
}

func TestLoadConfigInvalidSessionBackend(t *testing.T) {
	path := writeConfig(t, `
core:
  telegram:
    token: "123456:test-token"
extractor:
  base_url: "http://localhost:9000"
session:
  backend: etcd
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "session.backend")
}

func TestLoadConfigRedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, `
core:
  telegram:
    token: "123456:test-token"
extractor:
  base_url: "http://localhost:9000"
session:
  backend: redis
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "redis_addr")
}
