package config

import (
	"os"
	"path/filepath"
	"testing"

	"defilend/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.NoError(t, Load("", &cfg))

	assert.EqualValues(t, 9, cfg.App.Decimals)
	assert.Equal(t, "UTC", cfg.App.Location)
	assert.EqualValues(t, 10, cfg.Redis.LockTTL)
	assert.Equal(t, "@every 1m", cfg.Auditor.Spec)
	assert.Equal(t, "postgres", cfg.DB.Dialect)
}

func TestLoadYaml(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  decimals: 6
redis:
  addr: localhost:6379
api:
  endpoint: http://ledger:9000/api
auditor:
  spec: "@every 5m"
`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))

	var cfg core.Config
	require.NoError(t, Load(filename, &cfg))

	assert.EqualValues(t, 6, cfg.App.Decimals)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://ledger:9000/api", cfg.API.Endpoint)
	assert.Equal(t, "@every 5m", cfg.Auditor.Spec)
}
