// Package config provides the server configuration
// All values are fixed defaults; nothing is read from the environment or flags
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPort is the fixed TCP port the server listens on
const DefaultPort = 8000

// AppConfig holds listener parameters
type AppConfig struct {
	Port int // 0 picks a free port (tests only)
}

// StaticConfig holds the served file tree
type StaticConfig struct {
	Root string // Absolute path, resolved once at startup
}

// BannerConfig holds the text printed at startup
type BannerConfig struct {
	Host      string // Host shown in URLs ("localhost")
	Title     string // Visualization name shown on the second line
	EntryPage string // Path of the visualization entry page
}

// BrowserConfig controls the optional browser launch after startup
type BrowserConfig struct {
	Open bool
}

// Config aggregates all configuration sections
type Config struct {
	App     AppConfig
	Static  StaticConfig
	Banner  BannerConfig
	Browser BrowserConfig
}

// LoadConfig builds the default configuration, serving the directory
// that contains the running executable
func LoadConfig() (*Config, error) {
	root, err := executableDir()
	if err != nil {
		return nil, fmt.Errorf("resolve served directory: %w", err)
	}

	cfg := New(root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns the default configuration for an explicit root directory
func New(root string) *Config {
	return &Config{
		App: AppConfig{
			Port: DefaultPort,
		},
		Static: StaticConfig{
			Root: root,
		},
		Banner: BannerConfig{
			Host:      "localhost",
			Title:     "UA HPC Timeline",
			EntryPage: "/index.html",
		},
		// Auto-open stays off unless a caller opts in
		Browser: BrowserConfig{
			Open: false,
		},
	}
}

// Validate checks that the port is in range and the root is an existing absolute directory
func (c *Config) Validate() error {
	if c.App.Port < 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}

	if !filepath.IsAbs(c.Static.Root) {
		return fmt.Errorf("served directory %q is not an absolute path", c.Static.Root)
	}

	info, err := os.Stat(c.Static.Root)
	if err != nil {
		return fmt.Errorf("served directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("served directory %q is not a directory", c.Static.Root)
	}

	return nil
}

// URL returns the base server URL for the given port
func (b *BannerConfig) URL(port int) string {
	u := url.URL{
		Scheme: "http",
		Host:   b.Host + ":" + strconv.Itoa(port),
	}
	return u.String()
}

// EntryURL returns the URL of the visualization entry page
func (b *BannerConfig) EntryURL(port int) string {
	return b.URL(port) + b.EntryPage
}

// executableDir returns the absolute directory of the running binary
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	// Follow symlinks so an installed link serves the real install directory
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}

	return filepath.Abs(filepath.Dir(exe))
}
