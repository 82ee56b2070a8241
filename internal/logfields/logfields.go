package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile        = "file"
	KeyField       = "field"
	KeyKind        = "kind"
	KeyFormat      = "format"
	KeyLoadID      = "load_id"
	KeyFingerprint = "fingerprint"
	KeyUnknown     = "unknown_fields"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Helpers returning slog.Attr, one per key so callers can compose.
func File(path string) slog.Attr { return slog.String(KeyFile, path) }
func Field(path string) slog.Attr { return slog.String(KeyField, path) }
func Kind(k string) slog.Attr { return slog.String(KeyKind, k) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func LoadID(id string) slog.Attr { return slog.String(KeyLoadID, id) }
func Fingerprint(fp string) slog.Attr { return slog.String(KeyFingerprint, fp) }
func Unknown(paths []string) slog.Attr { return slog.Any(KeyUnknown, paths) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
