package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/export"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// DefaultPath is the project file used when --config is not given.
const DefaultPath = "sitecfg.yaml"

// DefaultOutputPath is where the generator config is written when output.path is empty.
const DefaultOutputPath = "docs/.vitepress/site.json"

// Config represents the project configuration
type Config struct {
	Profile     string         `yaml:"profile" toml:"profile"`
	Output      OutputConfig   `yaml:"output" toml:"output"`
	DocsDir     string         `yaml:"docs_dir,omitempty" toml:"docs_dir,omitempty"`
	Root        string         `yaml:"root,omitempty" toml:"root,omitempty"`
	MetricsFile string         `yaml:"metrics_file,omitempty" toml:"metrics_file,omitempty"`
	Validate    ValidateConfig `yaml:"validate" toml:"validate"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"` // json, yaml or mjs; inferred from Path when empty
}

// ValidateConfig controls the validation pass run before export.
type ValidateConfig struct {
	Strict bool `yaml:"strict" toml:"strict"` // fail the build on validation errors
}

// Load loads configuration from the specified file.
// TOML is used for a .toml extension, YAML otherwise.
func Load(configPath string) (*Config, error) {
	// A missing .env is not an error
	_ = loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	// Expand environment variables before decoding
	return Parse(configPath, []byte(os.ExpandEnv(string(data))))
}

// Parse decodes project file content. name only selects the decoder.
func Parse(name string, data []byte) (*Config, error) {
	var cfg Config
	if isTOML(name) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode TOML config").
				WithContext("path", name).Build()
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode YAML config").
			WithContext("path", name).Build()
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	c.Profile = strings.TrimSpace(c.Profile)
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	if c.Output.Format == "" {
		if f, ok := export.FormatFromPath(c.Output.Path); ok {
			c.Output.Format = string(f)
		} else {
			c.Output.Format = string(export.FormatJSON)
		}
		return nil
	}
	f, err := export.ParseFormat(c.Output.Format)
	if err != nil {
		return err
	}
	c.Output.Format = string(f)
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Config{
		Profile:  "tabbed@^2",
		Output:   OutputConfig{Path: DefaultOutputPath, Format: string(export.FormatJSON)},
		DocsDir:  "docs",
		Root:     ".",
		Validate: ValidateConfig{Strict: true},
	}

	var buf bytes.Buffer
	if isTOML(configPath) {
		if err := toml.NewEncoder(&buf).Encode(example); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&example); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
		}
		_ = enc.Close()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
