package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/ridetracker/ridetracker/internal/money"
)

const (
	configDir  = ".ridetracker"
	configFile = "config.hcl"

	DefaultBaseURL      = "https://rastreador-de-corridas.onrender.com"
	DefaultLocale       = "pt-BR"
	DefaultMessageDelay = 5 * time.Second
	DefaultListenAddr   = ":8080"
)

// Config is the resolved client configuration.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	Locale       string
	MessageDelay time.Duration
	ListenAddr   string
	LogLevel     string
	Development  bool
}

// File mirrors config.hcl:
//
//	api {
//	  base_url = "https://rastreador-de-corridas.onrender.com"
//	  timeout  = "0s"
//	}
//
//	display {
//	  locale        = "pt-BR"
//	  message_delay = "5s"
//	}
//
//	web {
//	  listen_addr = ":8080"
//	}
//
//	log {
//	  level       = "info"
//	  development = false
//	}
type File struct {
	API     *APIBlock     `hcl:"api,block"`
	Display *DisplayBlock `hcl:"display,block"`
	Web     *WebBlock     `hcl:"web,block"`
	Log     *LogBlock     `hcl:"log,block"`
}

type APIBlock struct {
	BaseURL string `hcl:"base_url,optional"`
	Timeout string `hcl:"timeout,optional"`
}

type DisplayBlock struct {
	Locale       string `hcl:"locale,optional"`
	MessageDelay string `hcl:"message_delay,optional"`
}

type WebBlock struct {
	ListenAddr string `hcl:"listen_addr,optional"`
}

type LogBlock struct {
	Level       string `hcl:"level,optional"`
	Development bool   `hcl:"development,optional"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Locale:       DefaultLocale,
		MessageDelay: DefaultMessageDelay,
		ListenAddr:   DefaultListenAddr,
		LogLevel:     "info",
	}
}

// DefaultPath returns ~/.ridetracker/config.hcl.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the HCL file at path on top of the defaults, then applies
// environment overrides (a .env file in the working directory is honoured).
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		src, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := cfg.applyHCL(src, path); err != nil {
				return Config{}, err
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv exports the variables of an env file. A missing file is
// fine; one that does not parse is an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Parse decodes HCL source on top of the defaults without touching the
// environment.
func Parse(src []byte, filename string) (Config, error) {
	cfg := Default()
	if err := cfg.applyHCL(src, filename); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyHCL(src []byte, filename string) error {
	var file File
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok {
			for _, diag := range diags {
				if diag.Severity == hcl.DiagError {
					return fmt.Errorf("config parse error at %s: %s", diag.Subject, diag.Detail)
				}
			}
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if b := file.API; b != nil {
		if b.BaseURL != "" {
			c.BaseURL = b.BaseURL
		}
		if b.Timeout != "" {
			d, err := time.ParseDuration(b.Timeout)
			if err != nil {
				return fmt.Errorf("api.timeout: %w", err)
			}
			c.Timeout = d
		}
	}
	if b := file.Display; b != nil {
		if b.Locale != "" {
			c.Locale = b.Locale
		}
		if b.MessageDelay != "" {
			d, err := time.ParseDuration(b.MessageDelay)
			if err != nil {
				return fmt.Errorf("display.message_delay: %w", err)
			}
			c.MessageDelay = d
		}
	}
	if b := file.Web; b != nil && b.ListenAddr != "" {
		c.ListenAddr = b.ListenAddr
	}
	if b := file.Log; b != nil {
		if b.Level != "" {
			c.LogLevel = b.Level
		}
		c.Development = b.Development
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("RIDETRACKER_API_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("RIDETRACKER_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := getenv("RIDETRACKER_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := getenv("RIDETRACKER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base url cannot be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	if c.MessageDelay <= 0 {
		return fmt.Errorf("display.message_delay must be positive")
	}
	if _, err := money.New(c.Locale); err != nil {
		return fmt.Errorf("display.locale: %w", err)
	}
	return nil
}
