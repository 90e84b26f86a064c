// Package config provides configuration management for the top10 generator.
//
// Values come from three layers, lowest priority first: an optional YAML
// file, built-in defaults for anything the file left empty, and environment
// variables named by the `env` struct tag. Variables may also be supplied
// through .env files (see loadEnvFiles).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied to empty fields.
const (
	DefaultTitle      = "Top 10 Amazon Deals"
	DefaultNiche      = "electronics"
	DefaultDomain     = "US"
	DefaultHost       = "real-time-amazon-data.p.rapidapi.com"
	DefaultEndpoint   = "https://real-time-amazon-data.p.rapidapi.com/deals-v2"
	DefaultOutputPath = "./_data/filled.json"
	DefaultLogLevel   = "info"

	// ParamStyleDeals sends domain + node_id.
	ParamStyleDeals = "deals"
	// ParamStyleSearch sends country + query (+ category_id).
	ParamStyleSearch = "search"
)

// Configuration validation errors.
var (
	ErrMissingAPIKey      = errors.New("RAPIDAPI_KEY is required")
	ErrInvalidParamStyle  = errors.New("api.param_style must be 'deals' or 'search'")
	ErrInvalidRetryMax    = errors.New("api.retry_max must be non-negative")
	ErrInvalidTimeout     = errors.New("api.timeout must be non-negative")
	ErrMissingEndpoint    = errors.New("api.endpoint is required")
	ErrMissingOutputPath  = errors.New("output.path is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidContainerID = errors.New("publish.container must be lowercase letters, digits and hyphens")
)

// Config represents the complete generator configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Publish PublishConfig `yaml:"publish"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the page the products are collected for.
type SiteConfig struct {
	Title         string `yaml:"title"          env:"SITE_TITLE"`
	Slug          string `yaml:"slug"           env:"SITE_SLUG"`
	Niche         string `yaml:"niche"          env:"NICHE"`
	SearchContext string `yaml:"search_context" env:"SEARCH_CONTEXT"`
	AffiliateID   string `yaml:"affiliate_id"   env:"AMAZON_AFFILIATE_ID"`
	CategoryID    string `yaml:"category_id"    env:"CATEGORY_NODE_ID"`
}

// APIConfig describes the upstream product-search API.
type APIConfig struct {
	Key        string        `yaml:"key"         env:"RAPIDAPI_KEY"`
	Host       string        `yaml:"host"        env:"RAPIDAPI_HOST"`
	Endpoint   string        `yaml:"endpoint"    env:"RAPIDAPI_ENDPOINT"`
	Domain     string        `yaml:"domain"      env:"AMAZON_DOMAIN"`
	ParamStyle string        `yaml:"param_style" env:"RAPIDAPI_PARAM_STYLE"`
	RetryMax   int           `yaml:"retry_max"   env:"RAPIDAPI_RETRY_MAX"`
	Timeout    time.Duration `yaml:"timeout"     env:"RAPIDAPI_TIMEOUT"`
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	Path        string `yaml:"path"         env:"OUTPUT_PATH"`
	PreviewPath string `yaml:"preview_path" env:"PREVIEW_PATH"`
}

// PublishConfig enables copying the output to shared storage: a local
// directory when Dir is set, otherwise a blob container.
type PublishConfig struct {
	Container string `yaml:"container" env:"PUBLISH_CONTAINER"`
	Dir       string `yaml:"dir"       env:"PUBLISH_DIR"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// LoadConfig loads configuration from an optional YAML file, fills defaults and
// applies environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills every empty field with its default.
func (c *Config) ApplyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = DefaultTitle
	}

	if c.Site.Niche == "" {
		c.Site.Niche = DefaultNiche
	}

	if c.Site.Slug == "" {
		c.Site.Slug = Slugify(c.Site.Title)
	}

	if c.API.Host == "" {
		c.API.Host = DefaultHost
	}

	if c.API.Endpoint == "" {
		c.API.Endpoint = DefaultEndpoint
	}

	if c.API.Domain == "" {
		c.API.Domain = DefaultDomain
	}

	if c.API.ParamStyle == "" {
		c.API.ParamStyle = ParamStyleDeals
	}

	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate validates the configuration. A missing API key is always reported
// first so callers can fail before doing anything else.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}

	if c.API.Endpoint == "" {
		return ErrMissingEndpoint
	}

	if c.API.ParamStyle != ParamStyleDeals && c.API.ParamStyle != ParamStyleSearch {
		return fmt.Errorf("%w: got %q", ErrInvalidParamStyle, c.API.ParamStyle)
	}

	if c.API.RetryMax < 0 {
		return ErrInvalidRetryMax
	}

	if c.API.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	if c.Publish.Container != "" && !isContainerName(c.Publish.Container) {
		return fmt.Errorf("%w: got %q", ErrInvalidContainerID, c.Publish.Container)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file. The API key is never written.
func (c *Config) SaveConfig(path string) error {
	clone := *c
	clone.API.Key = ""

	data, err := yaml.Marshal(&clone)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SearchTerm is the free-text query for search-style requests.
func (c *Config) SearchTerm() string {
	if term := strings.TrimSpace(c.Site.SearchContext); term != "" {
		return term
	}

	return c.Site.Niche
}

// String returns a string representation of the config without secrets.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Slug: %s, Niche: %s, Domain: %s, Style: %s, Output: %s}",
		c.Site.Slug,
		c.Site.Niche,
		c.API.Domain,
		c.API.ParamStyle,
		c.Output.Path,
	)
}

func isContainerName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}

	return true
}
