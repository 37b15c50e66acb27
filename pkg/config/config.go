package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

// Defaults for the generated document.
const (
	DefaultTitle          = "Generated API"
	DefaultNamespace      = "GeneratedApi"
	DefaultVersion        = "1.0.0"
	DefaultOpenAPIVersion = "3.1.0"
)

// Array response modes. See ArrayResponseMode.
const (
	ArrayModeInline = "inline"
	ArrayModeAlias  = "alias"
)

// Output types.
const (
	OutputTypeSpec = "typespec"
	OutputOpenAPI  = "openapi"
)

// Config represents the complete configuration for a generation run
type Config struct {
	// Spec is the path to the serverless.yml file
	Spec string `yaml:"spec"`

	Title          string `yaml:"title"`
	Namespace      string `yaml:"namespace"`
	Description    string `yaml:"description"`
	Version        string `yaml:"version"`
	OpenAPIVersion string `yaml:"openapiVersion"`

	// ArrayResponseMode selects how an untitled array body whose items carry a
	// title is emitted: "inline" references Title[] directly, "alias" declares
	// alias TitleList = Title[] and references that.
	ArrayResponseMode string `yaml:"arrayResponseMode"`

	// IncludeFunctions and ExcludeFunctions are regex patterns matched against
	// function identifiers. Exclude wins over include.
	IncludeFunctions []string `yaml:"includeFunctions"`
	ExcludeFunctions []string `yaml:"excludeFunctions"`

	Outputs []Output `yaml:"outputs"`
}

// Output represents a single generated file
type Output struct {
	// Type is one of "typespec" or "openapi"
	Type    string `yaml:"type"`
	OutFile string `yaml:"outFile"`
	// PostCommand is an optional command to run after the file is written.
	// Argv form, e.g. ["tsp", "format", "main.tsp"]
	// The command will be executed in the directory of OutFile.
	PostCommand []string `yaml:"postCommand"`
}

// GetPostCommand returns the post-generation command to execute.
func (o *Output) GetPostCommand() []string {
	return o.PostCommand
}

// ApplySettings fills fields that are still empty from the custom.typespec
// block of serverless.yml.
func (c *Config) ApplySettings(s *serverless.Settings) {
	if s == nil {
		return
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Title, s.Title)
	fill(&c.Namespace, s.Namespace)
	fill(&c.Description, s.Description)
	fill(&c.Version, s.Version)
	fill(&c.OpenAPIVersion, s.OpenAPIVersion)
}

// ApplyDefaults fills remaining empty fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.OpenAPIVersion == "" {
		c.OpenAPIVersion = DefaultOpenAPIVersion
	}
	if c.ArrayResponseMode == "" {
		c.ArrayResponseMode = ArrayModeInline
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.ArrayResponseMode {
	case "", ArrayModeInline, ArrayModeAlias:
	default:
		return fmt.Errorf("invalid arrayResponseMode %q (valid: %s, %s)", c.ArrayResponseMode, ArrayModeInline, ArrayModeAlias)
	}
	for i, o := range c.Outputs {
		if o.Type == "" || o.OutFile == "" {
			return fmt.Errorf("outputs[%d] missing required fields (type, outFile)", i)
		}
		if o.Type != OutputTypeSpec && o.Type != OutputOpenAPI {
			return fmt.Errorf("outputs[%d] has unsupported type %q", i, o.Type)
		}
	}
	return nil
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Spec == "" {
		return nil, errors.New("config.spec is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i := range cfg.Outputs {
		o := &cfg.Outputs[i]
		if !filepath.IsAbs(o.OutFile) {
			abs, _ := filepath.Abs(o.OutFile)
			o.OutFile = abs
		}
	}
	if !filepath.IsAbs(cfg.Spec) {
		abs, _ := filepath.Abs(cfg.Spec)
		cfg.Spec = abs
	}
	return &cfg, nil
}
