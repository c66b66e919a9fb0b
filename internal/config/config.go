// Package config loads the client configuration from the sysPass config
// directory. The file uses camelCase keys to stay compatible with existing
// installations:
//
//	{
//	  "host": "https://vault.example.org/api.php",
//	  "token": "...",
//	  "password": "",
//	  "verifyHost": true,
//	  "apiVersion": "SyspassV3",
//	  "passwordTimeout": 10
//	}
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirName        = ".syspass"
	configFileName = "config.json"
	usageFileName  = "usage.db"
)

// Config holds runtime settings for the sysPass CLI.
//
// Password is the vault password used to decrypt stored account passwords;
// when empty it is prompted for interactively, at most once per process.
// PasswordTimeout is the clipboard-clear delay in seconds; 0 disables the
// timed clear.
type Config struct {
	Host            string `json:"host"`
	Token           string `json:"token"`
	Password        string `json:"password"`
	VerifyHost      bool   `json:"verifyHost"`
	APIVersion      string `json:"apiVersion"`
	PasswordTimeout int    `json:"passwordTimeout"`
}

// LoadDefaults populates c with sensible defaults. File values overlay them.
func (c *Config) LoadDefaults() {
	c.VerifyHost = true
	c.PasswordTimeout = 10
}

// Dir returns the sysPass config directory (~/.syspass), creating it when
// missing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// UsagePath returns the path of the usage-counter store next to the config
// file.
func UsagePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, usageFileName), nil
}

// Load reads the configuration from path. An empty path selects the default
// location, and there a missing file is replaced by a freshly written
// default config so the user has something to fill in.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFileName)

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := writeDefault(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func writeDefault(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write default config %s: %w", path, err)
	}
	return nil
}
