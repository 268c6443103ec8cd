package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultPath is where snapshots live when no config overrides it.
const DefaultPath = "~/.mindgrid"

// Config locates the snapshot directory.
type Config interface {
	BasePath() string
}

// PathConfig is a Config fixed to one directory.
type PathConfig string

func (p PathConfig) BasePath() string { return string(p) }

// LoadConfig resolves the data directory. $MINDGRID_PATH wins over the first
// .mindgrid.yaml found in $MINDGRID_CONFIG_PATH, ./ or ~/.config/mindgrid,
// which wins over DefaultPath.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetEnvPrefix("MINDGRID")
	v.AutomaticEnv()

	v.SetConfigName(".mindgrid")
	v.SetConfigType("yaml")
	if dir := os.Getenv("MINDGRID_CONFIG_PATH"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "mindgrid"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: config path: %w", err)
	}
	return PathConfig(filepath.Clean(path)), nil
}
