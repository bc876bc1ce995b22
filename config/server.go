package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/search-server/model"
)

// ServerConfig holds the search server configuration file.
type ServerConfig struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	StopWords []string        `yaml:"stop_words"`
	Engine    EngineSettings  `yaml:"engine"`
	History   HistorySettings `yaml:"history"`
	Documents []SeedDocument  `yaml:"documents"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, local, dev
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// SeedDocument is a document ingested when the server starts.
type SeedDocument struct {
	ID      int                  `yaml:"id"`
	Text    string               `yaml:"text"`
	Status  model.DocumentStatus `yaml:"status"`
	Ratings []int                `yaml:"ratings"`
}

// DefaultServerConfig returns a configuration with every default applied.
func DefaultServerConfig() ServerConfig {
	var cfg ServerConfig
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a YAML configuration file, expanding ${VAR} and ${VAR:-default}.
func Load(path string) (ServerConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ServerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(data []byte) (ServerConfig, error) {
	data = expandEnvVars(data)

	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *ServerConfig) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.StopWords == nil {
		c.StopWords = []string{}
	}
	c.Engine.ApplyDefaults()
	c.History.ApplyDefaults()
}

// Validate checks the configuration and reports every problem at once.
func (c *ServerConfig) Validate() error {
	var problems []string
	if c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Sprintf("http.port %d out of range", c.HTTP.Port))
	}
	switch c.Logging.Env {
	case "prod", "local", "dev", "docker":
	default:
		problems = append(problems, fmt.Sprintf("logging.env %q is not one of prod, local, dev, docker", c.Logging.Env))
	}
	problems = append(problems, c.Engine.Validate()...)
	problems = append(problems, c.History.Validate()...)

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
