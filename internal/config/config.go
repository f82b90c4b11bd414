package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	DataService DataServiceConfig `yaml:"data_service"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DataServiceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SchedulerConfig drives the optional periodic regeneration loop. It is
// disabled unless both an interval and at least one portfolio are set.
type SchedulerConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Portfolios      []string `yaml:"portfolios"`
}

// Load reads the YAML config, applies defaults and environment overrides,
// and validates the result. DATA_SERVICE_URL and API_PORT override the file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	if v := os.Getenv("DATA_SERVICE_URL"); v != "" {
		c.DataService.BaseURL = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.DataService.TimeoutSeconds == 0 {
		c.DataService.TimeoutSeconds = 10
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataService.BaseURL == "" {
		return errors.New("data_service.base_url is required")
	}
	if c.DataService.TimeoutSeconds < 0 {
		return errors.New("data_service.timeout_seconds must be >= 0")
	}
	if c.Scheduler.IntervalSeconds < 0 {
		return errors.New("scheduler.interval_seconds must be >= 0")
	}
	if c.Scheduler.IntervalSeconds > 0 && len(c.Scheduler.Portfolios) == 0 {
		return fmt.Errorf("scheduler.interval_seconds is set but scheduler.portfolios is empty")
	}
	return nil
}

// Timeout returns the configured data-service timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataService.TimeoutSeconds) * time.Second
}

// SchedulerEnabled reports whether the periodic loop should run.
func (c *Config) SchedulerEnabled() bool {
	return c.Scheduler.IntervalSeconds > 0 && len(c.Scheduler.Portfolios) > 0
}
