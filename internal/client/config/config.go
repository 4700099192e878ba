package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// Environment overrides.
const (
	EnvAPIURL    = "CONTACTS_API_URL"
	EnvSessionDB = "CONTACTS_SESSION_DB"
)

const DefaultAPIBaseURL = "http://localhost:5000/api"

// Config holds runtime settings for the contacts CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. "http://localhost:5000/api".
//   - RequestTimeout: upper bound for a single API call.
//   - SessionDB: path of the SQLite file holding the session token.
//   - Ephemeral: keep the session in memory only; SessionDB is ignored.
//   - LogLevel, LogFormat: passed to logging.Setup.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDB      string
	Ephemeral      bool
	LogLevel       string
	LogFormat      string
}

// Seams for tests.
var (
	lookupEnv     = os.LookupEnv
	userConfigDir = os.UserConfigDir
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = 10 * time.Second
	c.SessionDB = defaultSessionDB()
	c.Ephemeral = false
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

func defaultSessionDB() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return "session.db"
	}
	return filepath.Join(dir, "contacts", "session.db")
}

// loadEnv overlays values from the process environment.
func (c *Config) loadEnv() {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.APIBaseURL = v
	}
	if v, ok := lookupEnv(EnvSessionDB); ok && v != "" {
		c.SessionDB = v
	}
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api base url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if !c.Ephemeral && c.SessionDB == "" {
		return fmt.Errorf("session db path is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the JSON file named by --config (if any) and the flags the
// user set explicitly on fs. Later sources take precedence over earlier
// ones. fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()

	if path := configPath(fs); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
