package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/ndtf/internal/logging"
)

// Config represents the ndtf configuration file (~/.config/ndtf/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Codec     string `yaml:"codec" toml:"codec"`
	Compress  *bool  `yaml:"compress" toml:"compress"`
	DDSFormat string `yaml:"dds_format" toml:"dds_format"`
}

// appConfig holds the loaded config for subcommand defaults.
var appConfig Config

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ndtf", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty.
// A missing default file yields a zero Config; a missing explicit file fails.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	return cfg, nil
}

// applyGlobalConfig applies config defaults to global flags that were not
// explicitly set.
func applyGlobalConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.Codec != "" && !c.IsSet("codec") {
		codecName = cfg.Codec
	}
}

// applyCompressConfig applies the config compress default to a command flag.
func applyCompressConfig(c *cli.Command, cfg Config, compress *bool) {
	if cfg.Compress != nil && !c.IsSet("compress") {
		*compress = *cfg.Compress
	}
}

// setup loads config and installs the logger into the command context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	appConfig = cfg
	applyGlobalConfig(cmd, cfg)

	lvl, ok := logging.ParseLevel(logLevel)
	if !ok {
		return ctx, fmt.Errorf("unknown log level %q", logLevel)
	}
	if _, err := compressorByName(codecName); err != nil {
		return ctx, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = lvl
	logger := logging.New(logCfg)

	return logger.WithContext(ctx), nil
}
