package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "sflink.yaml"

// Job queue backends.
const (
	BackendPostgres = "postgres"
	BackendNATS     = "nats"
)

const DefaultListen = ":8080"

type ConnectionConfig struct {
	DSN string `yaml:"dsn"`
}

type WikiConfig struct {
	Language            string                      `yaml:"language"`
	CapitalLinks        *bool                       `yaml:"capital_links"`
	ArticlePath         string                      `yaml:"article_path"`
	FormEditPath        string                      `yaml:"form_edit_path"`
	Namespaces          map[sflink.Namespace]string `yaml:"namespaces,omitempty"`
	BlankNamespaceLabel string                      `yaml:"blank_namespace_label,omitempty"`
}

type JobsConfig struct {
	Backend string `yaml:"backend"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
	Wiki       WikiConfig       `yaml:"wiki"`
	Jobs       JobsConfig       `yaml:"jobs"`
	Server     ServerConfig     `yaml:"server"`
}

// Default returns the configuration used when no sflink.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, which is either a sflink.yaml file or a directory containing one.
// Missing keys take their defaults.
func Load(path string) (*Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w: %v", path, sflink.ErrInvalidConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Wiki.Language == "" {
		c.Wiki.Language = sflink.DefaultLanguage
	}
	if c.Wiki.CapitalLinks == nil {
		on := true
		c.Wiki.CapitalLinks = &on
	}
	if c.Wiki.ArticlePath == "" {
		c.Wiki.ArticlePath = sflink.DefaultArticlePath
	}
	if c.Wiki.FormEditPath == "" {
		c.Wiki.FormEditPath = sflink.DefaultFormEditPath
	}
	if c.Jobs.Backend == "" {
		c.Jobs.Backend = BackendPostgres
	}
	if c.Jobs.Subject == "" {
		c.Jobs.Subject = sflink.DefaultJobSubject
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	switch c.Jobs.Backend {
	case BackendPostgres:
	case BackendNATS:
		if c.Jobs.NATSURL == "" {
			return fmt.Errorf("jobs.nats_url is required for the %q backend: %w", BackendNATS, sflink.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown jobs.backend %q (want %q or %q): %w", c.Jobs.Backend, BackendPostgres, BackendNATS, sflink.ErrInvalidConfig)
	}
	return nil
}

// CapitalLinksEnabled reports whether the first letter of page names is upper-cased.
func (c *Config) CapitalLinksEnabled() bool {
	return c.Wiki.CapitalLinks == nil || *c.Wiki.CapitalLinks
}
