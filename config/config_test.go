package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeConfig(t, `
driver = "sqlite"

[sqlite]
path = ":memory:"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, ":memory:", cfg.SQLite.Path)
}

func TestLoadMySQLDefaultsPort(t *testing.T) {
	path := writeConfig(t, `
driver = "mysql"

[mysql]
host = "db.internal"
user = "app"
password = "secret"
database = "appdb"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `driver = "oracle"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestLoadRejectsMissingSettings(t *testing.T) {
	_, err := Load(writeConfig(t, `driver = "sqlite"`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `
driver = "mysql"

[mysql]
host = "h"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestLoadRejectsMissingDriver(t *testing.T) {
	_, err := Load(writeConfig(t, ``))
	require.Error(t, err)
}

func TestLoadRejectsBadFile(t *testing.T) {
	_, err := Load(writeConfig(t, `driver = [not toml`))
	require.Error(t, err)
}
