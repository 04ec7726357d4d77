// Package config gathers the chemsvg settings from command-line flags,
// CHEMSVG_* environment variables and an optional chemsvg.yaml file,
// in that order of precedence.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/benoitkugler/chemsvg/errors"
	"github.com/benoitkugler/chemsvg/palette"
	"github.com/benoitkugler/chemsvg/svgtheme"
	"github.com/benoitkugler/chemsvg/watch"
)

// EnvPrefix prefixes the environment variables read by chemsvg.
const EnvPrefix = "CHEMSVG"

// Keys shared by flags, environment and config file.
const (
	KeyPalette         = "palette"
	KeyMatch           = "match"
	KeyJobs            = "jobs"
	KeyContinueOnError = "continue-on-error"
	KeyLogLevel        = "log-level"
	KeyDebounce        = "debounce"
)

type Config struct {
	Palette         string        // preset name or YAML file
	Match           string        // "prefix" or "exact"
	Jobs            int           // files converted concurrently
	ContinueOnError bool          // keep going after a failed file
	LogLevel        string        // debug, info, warn, error
	Debounce        time.Duration // watch mode quiet period
}

// New returns a viper instance with the chemsvg defaults and
// environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPalette, palette.DefaultPreset)
	v.SetDefault(KeyMatch, svgtheme.MatchPrefix.String())
	v.SetDefault(KeyJobs, 1)
	v.SetDefault(KeyContinueOnError, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDebounce, watch.DefaultDebounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag of fs whose name is a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyPalette, KeyMatch, KeyJobs, KeyContinueOnError, KeyLogLevel, KeyDebounce} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "bind flag %s", key)
			}
		}
	}
	return nil
}

// Load reads file when given, or ./chemsvg.yaml when it exists, and
// returns the merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("chemsvg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Mark(errors.Wrap(err, "read config"), errUtils.ErrInvalidConfig)
		}
	}
	cfg := Config{
		Palette:         v.GetString(KeyPalette),
		Match:           v.GetString(KeyMatch),
		Jobs:            v.GetInt(KeyJobs),
		ContinueOnError: v.GetBool(KeyContinueOnError),
		LogLevel:        v.GetString(KeyLogLevel),
		Debounce:        v.GetDuration(KeyDebounce),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Jobs < 1 {
		return errors.Wrapf(errUtils.ErrInvalidConfig, "jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Debounce < 0 {
		return errors.Wrapf(errUtils.ErrInvalidConfig, "negative debounce %s", c.Debounce)
	}
	if _, err := svgtheme.ParseMatchMode(c.Match); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errUtils.ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return nil
}

// Recolorer builds the recolorer described by c.
func (c Config) Recolorer() (*svgtheme.Recolorer, error) {
	p, err := palette.Load(c.Palette)
	if err != nil {
		return nil, err
	}
	mode, err := svgtheme.ParseMatchMode(c.Match)
	if err != nil {
		return nil, err
	}
	return svgtheme.New(p, mode), nil
}

// Logger returns a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: level == log.DebugLevel,
		Prefix:          "chemsvg",
	})
}
