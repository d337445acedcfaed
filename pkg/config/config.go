// Package config loads the run configuration. Values are layered: built-in
// defaults, then a YAML, TOML or JSON file, then a .env file, then EDA_*
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wdm0006/edachain/pkg/logging"
)

const (
	AppName   = "edachain"
	EnvPrefix = "EDA"
)

// Stage names accepted in Config.Stages, in pipeline order.
var AllStages = []string{"summary", "impute", "univariate", "bivariate", "correlation"}

type InputConfig struct {
	// Path is a local file; the format is taken from its extension unless
	// Format is set.
	Path   string `yaml:"path" toml:"path" json:"path" validate:"required_without=DSN"`
	Format string `yaml:"format" toml:"format" json:"format" validate:"omitempty,oneof=csv jsonl parquet xlsx sql"`
	// Sheet selects the worksheet of an xlsx file; the first one by default.
	Sheet string `yaml:"sheet" toml:"sheet" json:"sheet"`
	// Driver, DSN and Query describe a SQL source.
	Driver string `yaml:"driver" toml:"driver" json:"driver" validate:"omitempty,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" toml:"dsn" json:"dsn" validate:"required_with=Query"`
	Query  string `yaml:"query" toml:"query" json:"query" validate:"required_with=DSN"`
}

type PlotsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" toml:"dir" json:"dir" validate:"required_if=Enabled true"`
}

type Config struct {
	Input    InputConfig `yaml:"input" toml:"input" json:"input" envconfig:"INPUT"`
	Target   string      `yaml:"target" toml:"target" json:"target" envconfig:"TARGET"`
	Strategy string      `yaml:"strategy" toml:"strategy" json:"strategy" envconfig:"STRATEGY" validate:"oneof=mean median"`
	// FillValues maps a column to a fixed fill applied before the statistical
	// imputation; values are text parsed per column kind.
	FillValues     map[string]string `yaml:"fill_values" toml:"fill_values" json:"fill_values" envconfig:"FILL_VALUES"`
	Stages         []string          `yaml:"stages" toml:"stages" json:"stages" envconfig:"STAGES" validate:"min=1,dive,oneof=summary impute univariate bivariate correlation"`
	Bins           int               `yaml:"bins" toml:"bins" json:"bins" envconfig:"BINS" validate:"gte=1"`
	MaxCardinality int               `yaml:"max_cardinality" toml:"max_cardinality" json:"max_cardinality" envconfig:"MAX_CARDINALITY" validate:"gte=2"`
	Plots          PlotsConfig       `yaml:"plots" toml:"plots" json:"plots" envconfig:"PLOTS"`
	Output         string            `yaml:"output" toml:"output" json:"output" envconfig:"OUTPUT"`
	Report         string            `yaml:"report" toml:"report" json:"report" envconfig:"REPORT"`
	Metrics        string            `yaml:"metrics" toml:"metrics" json:"metrics" envconfig:"METRICS"`
	Preview        int               `yaml:"preview" toml:"preview" json:"preview" envconfig:"PREVIEW" validate:"gte=0"`
	Logging        logging.Config    `yaml:"logging" toml:"logging" json:"logging" envconfig:"LOGGING"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Target:         "survived",
		Strategy:       "mean",
		Stages:         append([]string(nil), AllStages...),
		Bins:           20,
		MaxCardinality: 20,
		Plots:          PlotsConfig{Enabled: true, Dir: "plots"},
		Preview:        5,
		Logging:        logging.DefaultConfig(),
	}
}

// HasStage reports whether the named stage is enabled.
func (c *Config) HasStage(name string) bool {
	for _, s := range c.Stages {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks field constraints and that the bivariate stage has a
// target column.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.HasStage("bivariate") && c.Target == "" {
		return fmt.Errorf("%w: bivariate stage needs a target column", ErrInvalidConfig)
	}
	return nil
}

// Load builds and validates the configuration. path names a config file;
// when empty, FindConfigFile picks one if it exists. envFiles default to
// ".env"; missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg, err := Read(path, envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read layers the configuration like Load but leaves validation to the
// caller, so command-line overrides can be applied first.
func Read(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// candidates are the file names searched in the working directory and then
// in the XDG config directory.
var candidates = []string{"edachain.yaml", "edachain.yml", "edachain.toml", "edachain.json"}

// FindConfigFile returns the first existing config file, or "".
func FindConfigFile() string {
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	for _, name := range []string{"config.yaml", "config.toml", "config.json"} {
		if p, err := xdg.SearchConfigFile(filepath.Join(AppName, name)); err == nil {
			return p
		}
	}
	return ""
}
