package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// cliConfig is ~/.dealflow/pipelinectl.toml. Session is written back after
// the first call so filters survive between invocations.
type cliConfig struct {
	APIURL  string `toml:"api_url"`
	Token   string `toml:"token"`
	Session string `toml:"session,omitempty"`
}

func defaultConfig() *cliConfig {
	return &cliConfig{APIURL: "http://localhost:8080"}
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dealflow", "pipelinectl.toml"), nil
}

// loadConfig returns the defaults when path does not exist.
func loadConfig(path string) (*cliConfig, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

func saveConfig(path string, cfg *cliConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
