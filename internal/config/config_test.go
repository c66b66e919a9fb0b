package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"host": "https://vault.example.org/api.php",
		"token": "abc123",
		"password": "secret",
		"verifyHost": false,
		"apiVersion": "SyspassV2",
		"passwordTimeout": 30
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://vault.example.org/api.php", cfg.Host)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, "secret", cfg.Password)
	assert.False(t, cfg.VerifyHost)
	assert.Equal(t, "SyspassV2", cfg.APIVersion)
	assert.Equal(t, 30, cfg.PasswordTimeout)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"h","token":"t"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.VerifyHost)
	assert.Equal(t, 10, cfg.PasswordTimeout)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadWritesDefaultAtDefaultLocation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyHost)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".syspass", "config.json"))
	assert.NoError(t, err, "default config file should have been written")
}
