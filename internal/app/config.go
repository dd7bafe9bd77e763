package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"chromactl/internal/domain"
	"chromactl/internal/logging"
)

const (
	DefaultPath       = "./chroma/chroma_db"
	DefaultCollection = "text_embeddings"
	DefaultConfigFile = "chromactl.yaml"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Path       string       `yaml:"path"`       // local store directory
	Collection string       `yaml:"collection"` // default collection for delete
	Chroma     ChromaConfig `yaml:"chroma"`
	Log        LogConfig    `yaml:"log"`

	HTTP *http.Client `yaml:"-"` // optional; built from Chroma.Timeout when nil
}

// ChromaConfig points at a Chroma server. An empty Host selects the local store.
type ChromaConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Scheme  string        `yaml:"scheme"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Path:       DefaultPath,
		Collection: DefaultCollection,
		Chroma: ChromaConfig{
			Port:    8000,
			Scheme:  "http",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "warn", Format: string(logging.FormatText)},
	}
}

// Load builds a Config from defaults, the YAML file (explicit path,
// CHROMACTL_CONFIG, ./chromactl.yaml) and environment overrides, in that order.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	if path := discoverConfigFile(configPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if v := os.Getenv("CHROMACTL_CONFIG"); v != "" {
		return v
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CHROMA_PATH"); v != "" {
		cfg.Path = v
	}
	if v := os.Getenv("CHROMA_HOST"); v != "" {
		cfg.Chroma.Host = v
	}
	if v := os.Getenv("CHROMA_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHROMA_PORT %q: %w", v, err)
		}
		cfg.Chroma.Port = port
	}
	if v := os.Getenv("CHROMACTL_COLLECTION"); v != "" {
		cfg.Collection = v
	}
	if v := os.Getenv("CHROMACTL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CHROMACTL_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// Validate reports every problem with cfg.
func (c Config) Validate() error {
	var errs []error
	if c.Remote() {
		if c.Chroma.Port <= 0 || c.Chroma.Port > 65535 {
			errs = append(errs, fmt.Errorf("chroma.port %d out of range", c.Chroma.Port))
		}
		if c.Chroma.Scheme != "http" && c.Chroma.Scheme != "https" {
			errs = append(errs, fmt.Errorf("chroma.scheme %q must be http or https", c.Chroma.Scheme))
		}
	} else if strings.TrimSpace(c.Path) == "" {
		errs = append(errs, errors.New("path must not be empty"))
	}
	if c.Collection != "" {
		if err := domain.ValidateName(c.Collection); err != nil {
			errs = append(errs, fmt.Errorf("collection: %w", err))
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Remote reports whether a Chroma server is configured.
func (c Config) Remote() bool { return c.Chroma.Host != "" }

// ChromaURL is the server base URL, e.g. http://localhost:8000.
func (c Config) ChromaURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Chroma.Scheme, c.Chroma.Host, c.Chroma.Port)
}
