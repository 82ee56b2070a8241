// Package fingerprint computes stable content fingerprints for resolved
// descriptors, so a reload can tell whether anything actually changed.
package fingerprint

import (
	"errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedesc/internal/frontmatter"
)

// Fields fingerprints a decoded object.
//
// The object is serialized as canonical YAML (sorted keys, LF newlines, one
// trailing newline trimmed), so the same data decoded from YAML, TOML or JSON
// yields the same fingerprint.
func Fields(fields map[string]any) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	serialized, err := frontmatter.SerializeYAML(fields, frontmatter.Style{Newline: "\n"})
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(trimSingleTrailingNewline(string(serialized)), ""), nil
}

// Value fingerprints any YAML-serializable value, such as a resolved descriptor.
// The value goes through the same canonical form as Fields.
func Value(v any) (string, error) {
	serialized, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	var tree any
	if err := yaml.Unmarshal(serialized, &tree); err != nil {
		return "", err
	}
	return Fields(map[string]any{"value": tree})
}

func trimSingleTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
