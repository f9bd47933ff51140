package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	cfgKeyDBPath  = "db_path"
	cfgKeyBaseURL = "base_url"

	defaultDBPath  = "shramba.sqlite3"
	defaultBaseURL = "http://localhost:8000"
)

// loadConfig reads the config file with Viper. A missing config file is
// not an error; defaults and SHRAMBA_* environment variables apply.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDBPath, defaultDBPath)
	v.SetDefault(cfgKeyBaseURL, defaultBaseURL)
	v.SetEnvPrefix("SHRAMBA")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return v, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		// No home directory; run on defaults and env alone.
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "shramba"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return v, nil
}
