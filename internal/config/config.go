// Package config loads the blog client configuration from the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/air846/personal-blog-system/internal/logging"
	"github.com/air846/personal-blog-system/pkg/storage"
)

// Config is the runtime configuration.
type Config struct {
	APIURL    string        `env:"BLOG_API_URL" envDefault:"http://localhost:8080/api"`
	WebURL    string        `env:"BLOG_WEB_URL" envDefault:"http://localhost:5173"`
	Timeout   time.Duration `env:"BLOG_TIMEOUT" envDefault:"10s"`
	StateDir  string        `env:"BLOG_STATE_DIR"`
	Storage   string        `env:"BLOG_STORAGE" envDefault:"file"`
	LogLevel  string        `env:"BLOG_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"BLOG_LOG_FORMAT" envDefault:"text"`
}

// Load reads envFiles (".env" when none are given) into the process
// environment, then parses Config. Missing env files are ignored; variables
// already set win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StateDir == "" {
		dir, err := DefaultStateDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultStateDir returns ~/.blog.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".blog"), nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	if err := absoluteURL("BLOG_API_URL", c.APIURL); err != nil {
		errs = append(errs, err)
	}
	if err := absoluteURL("BLOG_WEB_URL", c.WebURL); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("BLOG_TIMEOUT must be positive, got %s", c.Timeout))
	}
	switch c.Storage {
	case storage.DriverFile, storage.DriverSQLite, storage.DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("BLOG_STORAGE %q: want %s, %s or %s",
			c.Storage, storage.DriverFile, storage.DriverSQLite, storage.DriverMemory))
	}
	if err := logging.Validate(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("BLOG_LOG_LEVEL: %w", err))
	}
	if err := logging.ValidateFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("BLOG_LOG_FORMAT: %w", err))
	}
	return errors.Join(errs...)
}

// LogPath is where the log file lives.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "blog.log")
}

// ArticleURL returns the web page for an article.
func (c *Config) ArticleURL(id int64) string {
	return fmt.Sprintf("%s/article/%d", strings.TrimRight(c.WebURL, "/"), id)
}

func absoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s %q: want an absolute http(s) URL", name, raw)
	}
	return nil
}
