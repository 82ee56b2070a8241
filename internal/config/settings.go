package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedesc/internal/envsubst"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
)

// DefaultSettingsFile is read when it exists and no other file is named.
const DefaultSettingsFile = "sitedesc.yaml"

const (
	DefaultSitePath = "docs/.vitepress/config.yaml"
	DefaultPagePath = "docs/index.md"
	DefaultDebounce = 500 * time.Millisecond
)

// Settings configures the tool itself, not the documentation site.
type Settings struct {
	Site    string          `yaml:"site"`
	Page    string          `yaml:"page"`
	Strict  bool            `yaml:"strict"`
	Log     LogSettings     `yaml:"log"`
	Watch   WatchSettings   `yaml:"watch"`
	Metrics MetricsSettings `yaml:"metrics"`
}

type LogSettings struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

type WatchSettings struct {
	Debounce time.Duration `yaml:"debounce"`
}

// MetricsSettings controls the Prometheus endpoint; an empty Addr disables it.
type MetricsSettings struct {
	Addr string `yaml:"addr"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Site: DefaultSitePath,
		Page: DefaultPagePath,
		Log:  LogSettings{Level: LogLevelInfo, Format: LogFormatText},
		Watch: WatchSettings{
			Debounce: DefaultDebounce,
		},
	}
}

// LoadSettings reads a settings file over the defaults.
//
// An empty path means DefaultSettingsFile, which may be absent. A path that
// was named explicitly must exist.
func LoadSettings(path string) (Settings, error) {
	s := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, errors.WrapError(err, errors.CategoryConfig, "cannot read settings file").
			InFile(path).Build()
	}

	expanded, _ := envsubst.Expand(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !stderrors.Is(err, io.EOF) {
		return s, errors.WrapError(err, errors.CategoryConfig, "invalid settings file").
			InFile(path).Build()
	}

	if err := s.Normalize(); err != nil {
		return s, err
	}
	return s, nil
}

// Normalize canonicalises enumerations and fills blanks with defaults.
func (s *Settings) Normalize() error {
	level, err := logLevelNormalizer.NormalizeWithError(string(s.Log.Level))
	if err != nil {
		return errors.ConfigError(err.Error()).WithField("log.level").Build()
	}
	s.Log.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(s.Log.Format))
	if err != nil {
		return errors.ConfigError(err.Error()).WithField("log.format").Build()
	}
	s.Log.Format = format

	if s.Site == "" {
		s.Site = DefaultSitePath
	}
	if s.Watch.Debounce < 0 {
		return errors.ConfigError("must not be negative").WithField("watch.debounce").Build()
	}
	if s.Watch.Debounce == 0 {
		s.Watch.Debounce = DefaultDebounce
	}
	return nil
}
