package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedesc/internal/envsubst"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/logfields"
)

// Format is the syntax of a site configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the decoder from the file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Load reads, decodes and resolves the configuration file at path.
//
// Before decoding, `.env` files next to the configuration and in the working
// directory are loaded (existing variables win) and ${VAR} references in the
// file are expanded. A bare $ is literal text.
func Load(path string, opts Options) (Descriptor, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return Descriptor{}, err
	}

	d, err := Resolve(raw, opts)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return Descriptor{}, ce.InFile(path)
		}
		return Descriptor{}, err
	}
	return d, nil
}

// ReadRaw reads and decodes path into a raw configuration object.
func ReadRaw(path string) (map[string]any, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errors.ConfigError("unsupported configuration file extension").
			InFile(path).
			WithDetail("supported", []string{".yaml", ".yml", ".toml", ".json"}).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot read configuration file").
			Fatal().
			InFile(path).
			Build()
	}

	loadEnvFiles(filepath.Dir(path))
	expanded, missing := envsubst.Expand(string(data))
	if len(missing) > 0 {
		slog.Warn("Unresolved environment references left as-is",
			logfields.File(path), slog.Any("variables", missing))
	}

	raw, err := Decode([]byte(expanded), format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, fmt.Sprintf("configuration is not valid %s", format)).
			Fatal().
			InFile(path).
			Build()
	}
	return raw, nil
}

// Decode decodes data into a raw configuration object. An empty document
// decodes to an empty object.
func Decode(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func loadEnvFiles(configDir string) {
	var found []string
	for _, dir := range []string{configDir, "."} {
		for _, name := range []string{".env", ".env.local"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil && !contains(found, p) {
				found = append(found, p)
			}
		}
	}
	if len(found) == 0 {
		return
	}
	if err := godotenv.Load(found...); err != nil {
		slog.Warn("Failed to load environment file", logfields.Error(err))
		return
	}
	slog.Debug("Loaded environment files", slog.Any("files", found))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if filepath.Clean(v) == filepath.Clean(s) {
			return true
		}
	}
	return false
}
