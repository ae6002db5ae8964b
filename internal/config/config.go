// Package config loads parser configuration from a YAML file, mirroring
// the schema loader's file-to-struct shape but aimed at dialect/option
// selection instead of table definitions.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/caravan-sql/sqlfront/pkg/parser"
)

// Config is the on-disk shape of a sqlfront configuration file.
type Config struct {
	Dialect string               `yaml:"dialect"`
	Options parser.ParserOptions `yaml:"options"`
}

const defaultRecursionLimit = 50

// Load reads and decodes the YAML file at path. Options the file leaves
// out keep their documented defaults (Unescape on); an empty dialect
// becomes generic and a missing or non-positive recursion limit becomes 50.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := &Config{Dialect: "generic", Options: parser.ParserOptions{Unescape: true}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Dialect == "" {
		cfg.Dialect = "generic"
	}
	if cfg.Options.RecursionLimit <= 0 {
		cfg.Options.RecursionLimit = defaultRecursionLimit
	}
}

// Default returns the built-in configuration used when no --config flag
// is given.
func Default() *Config {
	cfg := &Config{Dialect: "generic", Options: parser.ParserOptions{Unescape: true}}
	applyDefaults(cfg)
	return cfg
}
