package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	// Backend selects the persistence variant: "sqlite" or "file".
	Backend      string `json:"backend"`
	DBPath       string `json:"db_path"`
	StorePath    string `json:"store_path"`
	ListenAddr   string `json:"listen_addr"`
	JWTSecret    string `json:"jwt_secret"`
	FocusMinutes int    `json:"focus_minutes"`
}

func Default() Config {
	return Config{
		Backend:      "sqlite",
		ListenAddr:   ":8080",
		FocusMinutes: 25,
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "focusquest", "config.json"), nil
}

func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Backend == "" {
		cfg.Backend = "sqlite"
	}
	if cfg.FocusMinutes <= 0 {
		cfg.FocusMinutes = 25
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
