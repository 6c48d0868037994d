// Package config loads the service configuration from a YAML file
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // time zones without system tzdata

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// date range keywords accepted by briefing.default_range
var rangeKeywords = map[string]bool{"daily": true, "weekly": true, "monthly": true}

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database    DatabaseConfig    `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Aggregation AggregationConfig `yaml:"aggregation" json:"aggregation" jsonschema:"description=Snapshot aggregation settings"`
	Briefing    BriefingConfig    `yaml:"briefing" json:"briefing" jsonschema:"description=Briefing defaults"`
	Rules       RulesConfig       `yaml:"rules" json:"rules" jsonschema:"description=Keyword rules used for presets"`
	Feeds       []Feed            `yaml:"feeds" json:"feeds" jsonschema:"description=Live feeds selectable by id"`
	Fetch       FetchConfig       `yaml:"fetch" json:"fetch" jsonschema:"description=Live feed fetching settings"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds snapshot database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:briefing.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// AggregationConfig holds date range aggregation settings
type AggregationConfig struct {
	Workers int `yaml:"workers" json:"workers" jsonschema:"default=4,minimum=1,description=Days loaded concurrently"`
	MaxDays int `yaml:"max_days" json:"max_days" jsonschema:"default=366,minimum=1,description=Longest date range accepted by listing endpoints"`
}

// BriefingConfig holds briefing defaults
type BriefingConfig struct {
	Timezone     string `yaml:"timezone" json:"timezone" jsonschema:"default=Asia/Shanghai,description=Time zone daily snapshots are cut in"`
	DefaultRange string `yaml:"default_range" json:"default_range" jsonschema:"default=daily,enum=daily,enum=weekly,enum=monthly,description=Date range used when a request has none"`
}

// RulesConfig holds keyword rules, inline and from a file
type RulesConfig struct {
	Blocks []string `yaml:"blocks" json:"blocks" jsonschema:"description=Inline rule text blocks"`
	File   string   `yaml:"file" json:"file" jsonschema:"description=Rule file, relative paths resolve against the config file"`
}

// Feed is a named live feed
type Feed struct {
	ID   string `yaml:"id" json:"id" jsonschema:"required,description=Feed id used in requests"`
	Name string `yaml:"name" json:"name" jsonschema:"description=Display name"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=RSS or Atom URL"`
}

// FetchConfig holds live feed fetching settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per feed request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Briefing/1.0,description=User agent for feed requests"`
	Workers   int           `yaml:"workers" json:"workers" jsonschema:"default=5,minimum=1,description=Feeds fetched concurrently"`

	SnapshotInterval time.Duration `yaml:"snapshot_interval" json:"snapshot_interval" jsonschema:"description=Interval of storing configured feeds into day snapshots, disabled if zero"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if cfg.Rules.File != "" {
		rulesPath := cfg.Rules.File
		if !filepath.IsAbs(rulesPath) {
			rulesPath = filepath.Join(filepath.Dir(path), rulesPath)
		}
		rulesData, err := os.ReadFile(rulesPath) //nolint:gosec // path comes from config
		if err != nil {
			return nil, fmt.Errorf("read rules file: %w", err)
		}
		cfg.Rules.Blocks = append(cfg.Rules.Blocks, string(rulesData))
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:briefing.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Aggregation.Workers == 0 {
		c.Aggregation.Workers = 4
	}
	if c.Aggregation.MaxDays == 0 {
		c.Aggregation.MaxDays = 366
	}

	if c.Briefing.Timezone == "" {
		c.Briefing.Timezone = "Asia/Shanghai"
	}
	if c.Briefing.DefaultRange == "" {
		c.Briefing.DefaultRange = "daily"
	}

	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 10 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Briefing/1.0"
	}
	if c.Fetch.Workers == 0 {
		c.Fetch.Workers = 5
	}

	for i := range c.Feeds {
		if c.Feeds[i].Name == "" {
			c.Feeds[i].Name = c.Feeds[i].ID
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Aggregation.Workers < 1 {
		return fmt.Errorf("aggregation.workers must be at least 1")
	}
	if cfg.Aggregation.MaxDays < 1 {
		return fmt.Errorf("aggregation.max_days must be at least 1")
	}
	if cfg.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be at least 1")
	}
	if cfg.Fetch.SnapshotInterval != 0 && cfg.Fetch.SnapshotInterval < time.Minute {
		return fmt.Errorf("fetch.snapshot_interval must be at least 1 minute")
	}
	if _, err := time.LoadLocation(cfg.Briefing.Timezone); err != nil {
		return fmt.Errorf("briefing.timezone %q: %w", cfg.Briefing.Timezone, err)
	}
	if !rangeKeywords[cfg.Briefing.DefaultRange] {
		return fmt.Errorf("briefing.default_range must be one of daily, weekly, monthly, got %q", cfg.Briefing.DefaultRange)
	}

	seen := map[string]bool{}
	for i, f := range cfg.Feeds {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("feeds[%d].id is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate feed id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}

// Location returns the configured briefing time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Briefing.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Briefing.Timezone, err)
	}
	return loc, nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetMaxDays returns the longest date range accepted by listing endpoints
func (c *Config) GetMaxDays() int {
	return c.Aggregation.MaxDays
}
