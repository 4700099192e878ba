package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the command tree.
const (
	FlagConfig    = "config"
	FlagAPIURL    = "api-url"
	FlagTimeout   = "timeout"
	FlagSessionDB = "session-db"
	FlagEphemeral = "ephemeral"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help are informational; only flags the user actually sets override the
// lower layers.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to JSON config file")
	fs.StringP(FlagAPIURL, "a", d.APIBaseURL, "base URL of the contacts API")
	fs.Duration(FlagTimeout, d.RequestTimeout, "timeout for a single API request")
	fs.String(FlagSessionDB, d.SessionDB, "path to the local session database")
	fs.Bool(FlagEphemeral, false, "keep the session in memory only")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags overlays cfg with the flags set on the command line.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagAPIURL:
			cfg.APIBaseURL, err = fs.GetString(f.Name)
		case FlagTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(f.Name)
		case FlagSessionDB:
			cfg.SessionDB, err = fs.GetString(f.Name)
		case FlagEphemeral:
			cfg.Ephemeral, err = fs.GetBool(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		}
	})
	return err
}
