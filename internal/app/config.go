// Package app provides the application container, wiring configuration,
// the key-value store and the link service together.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/quartermaster-app/linkgraph/pkg/logger"
)

// AppConfig is the root configuration document.
type AppConfig struct {
	File string        `yaml:"-"` // config file path, not serialized
	Log  logger.Config `yaml:"log"`
	KV   KVConfig      `yaml:"kv"`
	Link LinkConfig    `yaml:"link"`
}

// KVConfig selects and tunes the key-value store backend.
type KVConfig struct {
	// Type is the backend, redis or memory
	Type string `yaml:"type" default:"redis"`
	// Addr is the redis host:port
	Addr string `yaml:"addr" default:"127.0.0.1:6379"`
	// Password is the redis password, empty for none
	Password string `yaml:"password" default:""`
	// DB is the redis database number
	DB int `yaml:"db" default:"0"`
	// KeyPrefix namespaces every key written by this deployment
	KeyPrefix string `yaml:"key-prefix" default:"qm:"`
}

// LinkConfig tunes the link service.
type LinkConfig struct {
	// ExistenceRetries bounds how often a missing endpoint is re-probed
	ExistenceRetries int `yaml:"existence-retries" default:"5"`
	// ExistenceRetryDelay is the fixed pause between probes
	ExistenceRetryDelay string `yaml:"existence-retry-delay" default:"120ms"`
}

// ExistenceDelay parses the configured retry delay. Invalid values fall
// back to the default rather than failing startup.
func (c LinkConfig) ExistenceDelay() time.Duration {
	d, err := time.ParseDuration(c.ExistenceRetryDelay)
	if err != nil || d <= 0 {
		return 120 * time.Millisecond
	}
	return d
}

// LoadConfig reads the yaml config file, applying struct defaults before
// and after the unmarshal so missing keys and missing sections both get
// their default values. Returns the resolved absolute path alongside.
func LoadConfig(file string) (*AppConfig, string, error) {
	config := &AppConfig{}
	if err := defaults.Set(config); err != nil {
		return nil, "", errors.Wrap(err, "apply config defaults")
	}

	realpath, err := filepath.Abs(file)
	if err != nil {
		return nil, "", errors.Wrap(err, "resolve config path")
	}

	content, err := os.ReadFile(realpath)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read config file %s", realpath)
	}
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, "", errors.Wrapf(err, "parse config file %s", realpath)
	}
	if err := defaults.Set(config); err != nil {
		return nil, "", errors.Wrap(err, "apply config defaults")
	}

	config.File = realpath
	return config, realpath, nil
}

// Save writes the config back to its file.
func (c *AppConfig) Save() error {
	content, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(c.File, content, 0o644); err != nil {
		return errors.Wrapf(err, "write config file %s", c.File)
	}
	return nil
}
