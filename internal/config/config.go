// Package config loads doctest configuration from .doctest.yml with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete doctest configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
}

// PathsConfig defines which files examples are extracted from.
type PathsConfig struct {
	Source   []string `yaml:"source" mapstructure:"source"`     // glob patterns for doc-commented sources
	Markdown []string `yaml:"markdown" mapstructure:"markdown"` // glob patterns for markdown documents
	Ignore   []string `yaml:"ignore" mapstructure:"ignore"`     // glob patterns to ignore
}

// OutputConfig defines where generated artifacts go.
type OutputConfig struct {
	File       string `yaml:"file" mapstructure:"file"`               // generated test file path; "-" for stdout
	MappingURL bool   `yaml:"mapping_url" mapstructure:"mapping_url"` // append the sourceMappingURL trailer
}

// RenderConfig selects the renderer.
type RenderConfig struct {
	Template string `yaml:"template" mapstructure:"template"` // custom template file; empty uses the built-in harness
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Source: []string{
				"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mjs",
				"**/*.py", "**/*.rb", "**/*.rs", "**/*.c", "**/*.h",
				"**/*.java", "**/*.php",
			},
			Markdown: []string{"**/*.md", "**/*.markdown"},
			Ignore: []string{
				"node_modules/**", "vendor/**", ".git/**",
				"dist/**", "build/**", "target/**",
			},
		},
		Output: OutputConfig{
			File:       "doctest.js",
			MappingURL: true,
		},
	}
}

// Load reads configuration for a project root. A missing config file is not
// an error; defaults apply. Environment variables prefixed DOCTEST_ override
// file values (e.g. DOCTEST_OUTPUT_FILE).
func Load(root, cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".doctest")
		v.AddConfigPath(root)
	}
	v.SetEnvPrefix("doctest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
