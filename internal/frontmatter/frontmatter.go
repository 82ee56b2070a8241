package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a front-matter block.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Delimiter returns the fence line used for the format.
func (f Format) Delimiter() string {
	switch f {
	case FormatYAML:
		return "---"
	case FormatTOML:
		return "+++"
	default:
		return ""
	}
}

// Style is the newline convention of a document.
type Style struct {
	Newline string
}

// ErrMissingClosingDelimiter indicates the document opened a front-matter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates a `---` (YAML) or `+++` (TOML) delimited block from the body.
//
// If the document does not open with a delimiter, format is FormatNone and body
// is the full input.
func Split(content []byte) (fm []byte, body []byte, format Format, style Style, err error) {
	style = detectStyle(content)
	nl := style.Newline

	for _, f := range []Format{FormatYAML, FormatTOML} {
		fence := []byte(f.Delimiter() + nl)
		if !bytes.HasPrefix(content, fence) {
			continue
		}

		rest := content[len(fence):]
		if bytes.HasPrefix(rest, fence) {
			return []byte{}, rest[len(fence):], f, style, nil
		}
		if string(rest) == f.Delimiter() {
			return []byte{}, []byte{}, f, style, nil
		}

		closing := []byte(nl + f.Delimiter() + nl)
		idx := bytes.Index(rest, closing)
		if idx < 0 {
			// A closing fence on the last line without a trailing newline.
			tail := []byte(nl + f.Delimiter())
			if bytes.HasSuffix(rest, tail) {
				return rest[:len(rest)-len(tail)+len(nl)], []byte{}, f, style, nil
			}
			return nil, nil, FormatNone, style, ErrMissingClosingDelimiter
		}
		return rest[:idx+len(nl)], rest[idx+len(closing):], f, style, nil
	}

	return nil, content, FormatNone, style, nil
}

// Parse decodes a raw front-matter block (without delimiters) into a map.
// An empty block yields an empty map.
func Parse(fm []byte, format Format) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return fields, nil
	}

	switch format {
	case FormatYAML, FormatNone:
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(fm, &fields); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported front matter format %q", format)
	}

	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}

	return Style{Newline: newline}
}
