// Package config handles the configuration directory, the optional
// config.toml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todolist"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.toml"

	// DebugLogFile receives logs while the terminal UI owns the screen.
	DebugLogFile = "debug.log"

	// DefaultAPIURL is the hosted mock API the tool talks to out of the box.
	DefaultAPIURL = "https://6694dd694bd61d8314c8f53e.mockapi.io/ToDoAPI"

	// DefaultTimeout bounds each API request.
	DefaultTimeout = 15 * time.Second

	// DefaultServeAddr is the listen address of the local stand-in API.
	DefaultServeAddr = "127.0.0.1:8080"

	// DefaultServeDB is the SQLite filename of the local stand-in API.
	DefaultServeDB = "todolist.db"
)

// Environment variables that override the config file.
const (
	EnvAPIURL  = "TODOLIST_API_URL"
	EnvTimeout = "TODOLIST_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the REST API, without a trailing slash.
	APIURL string

	// Timeout bounds each API request. Zero disables the bound.
	Timeout time.Duration

	// DeleteConcurrency caps concurrent task deletions while deleting a list.
	// Zero means one goroutine per task.
	DeleteConcurrency int

	// ServeAddr is the listen address for the serve command.
	ServeAddr string

	// ServeDB is the SQLite path for the serve command. Relative paths are
	// resolved against Dir.
	ServeDB string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIURL            string `toml:"api_url"`
	Timeout           string `toml:"timeout"`
	DeleteConcurrency *int   `toml:"delete_concurrency"`
	Serve             struct {
		Addr string `toml:"addr"`
		DB   string `toml:"db"`
	} `toml:"serve"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todolist or $HOME/.config/todolist.
// Settings start from defaults and are overridden by config.toml (when
// present) and then by environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		ServeAddr: DefaultServeAddr,
		ServeDB:   DefaultServeDB,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DebugLogPath returns the path of the UI debug log.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// ServeDBPath returns the SQLite path for the serve command.
func (c *Config) ServeDBPath() string {
	if c.ServeDB == ":memory:" || filepath.IsAbs(c.ServeDB) {
		return c.ServeDB
	}
	return filepath.Join(c.Dir, c.ServeDB)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// SetAPIURL overrides the API base URL (used for the --api flag).
func (c *Config) SetAPIURL(url string) {
	c.APIURL = strings.TrimRight(strings.TrimSpace(url), "/")
}

func (c *Config) loadFile() error {
	var fc fileConfig
	_, err := toml.DecodeFile(c.FilePath(), &fc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.Timeout != "" {
		d, err := parseTimeout(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: timeout: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	if fc.DeleteConcurrency != nil {
		if *fc.DeleteConcurrency < 0 {
			return fmt.Errorf("invalid %s: delete_concurrency must not be negative", ConfigFile)
		}
		c.DeleteConcurrency = *fc.DeleteConcurrency
	}
	if fc.Serve.Addr != "" {
		c.ServeAddr = fc.Serve.Addr
	}
	if fc.Serve.DB != "" {
		c.ServeDB = fc.Serve.DB
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("15s") or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("must not be negative: %s", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative: %s", s)
	}
	return d, nil
}
