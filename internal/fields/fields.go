// Package fields reads typed values out of a decoded YAML/TOML/JSON object
// while tracking the dotted path of every value it touches.
//
// Paths look like `hero.actions[1].theme`. Keys that were never read are
// reported by Unknown so callers can warn about or reject them.
package fields

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ErrMissing marks a required field that is absent or blank.
var ErrMissing = errors.New("is required")

// FieldError describes a problem with the value at Path.
type FieldError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Message()
}

// Message returns the description without the path prefix.
func (e *FieldError) Message() string {
	switch {
	case e.Err == nil:
		return e.Reason
	case e.Reason == "":
		return e.Err.Error()
	default:
		return e.Reason + ": " + e.Err.Error()
	}
}

func (e *FieldError) Unwrap() error { return e.Err }

// Errorf builds a FieldError for path.
func Errorf(path, format string, args ...any) *FieldError {
	return &FieldError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Wrap builds a FieldError for path around err.
func Wrap(path string, err error) *FieldError {
	return &FieldError{Path: path, Err: err}
}

// Object is a map value addressed by path.
type Object struct {
	path     string
	raw      map[string]any
	seen     map[string]bool
	children []*Object
}

// Root wraps a top-level decoded object. A nil map behaves as empty.
func Root(raw map[string]any) *Object {
	return newObject("", raw)
}

func newObject(path string, raw map[string]any) *Object {
	if raw == nil {
		raw = map[string]any{}
	}
	return &Object{path: path, raw: raw, seen: make(map[string]bool, len(raw))}
}

// Path returns the path of the object itself ("" for the root).
func (o *Object) Path() string { return o.path }

// PathOf returns the path of key inside the object.
func (o *Object) PathOf(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

// Value returns the raw value of key and marks it as read.
func (o *Object) Value(key string) (any, bool) {
	o.seen[key] = true
	v, ok := o.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String reads an optional scalar. Numbers, booleans and timestamps are
// accepted and rendered in their canonical text form; text is NFC-normalized.
func (o *Object) String(key string) (string, bool, error) {
	v, ok := o.Value(key)
	if !ok {
		return "", false, nil
	}
	s, err := scalarString(o.PathOf(key), v)
	if err != nil {
		return "", true, err
	}
	return s, true, nil
}

// StringOr reads an optional scalar, returning def when it is absent.
func (o *Object) StringOr(key, def string) (string, error) {
	s, ok, err := o.String(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return s, nil
}

// RequiredString reads a scalar that must be present and not blank.
func (o *Object) RequiredString(key string) (string, error) {
	s, ok, err := o.String(key)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(s) == "" {
		return "", Wrap(o.PathOf(key), ErrMissing)
	}
	return s, nil
}

// Bool reads an optional boolean.
func (o *Object) Bool(key string) (bool, bool, error) {
	v, ok := o.Value(key)
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, true, Errorf(o.PathOf(key), "expected a boolean, got %s", typeName(v))
	}
	return b, true, nil
}

// Object reads an optional nested object.
func (o *Object) Object(key string) (*Object, bool, error) {
	v, ok := o.Value(key)
	if !ok {
		return nil, false, nil
	}
	child, err := o.objectFrom(o.PathOf(key), v)
	if err != nil {
		return nil, true, err
	}
	return child, true, nil
}

// List reads an optional sequence. An absent key yields an empty list.
func (o *Object) List(key string) (*List, error) {
	path := o.PathOf(key)
	v, ok := o.Value(key)
	if !ok {
		return &List{path: path, parent: o}, nil
	}
	items, isList := v.([]any)
	if !isList {
		return nil, Errorf(path, "expected a list, got %s", typeName(v))
	}
	return &List{path: path, items: items, parent: o}, nil
}

// Unknown returns the sorted paths of keys that were never read, including
// those of nested objects reached through this one.
func (o *Object) Unknown() []string {
	var out []string
	o.collectUnknown(&out)
	sort.Strings(out)
	return out
}

func (o *Object) collectUnknown(out *[]string) {
	for k := range o.raw {
		if !o.seen[k] {
			*out = append(*out, o.PathOf(k))
		}
	}
	for _, c := range o.children {
		c.collectUnknown(out)
	}
}

func (o *Object) objectFrom(path string, v any) (*Object, error) {
	m, err := asMap(path, v)
	if err != nil {
		return nil, err
	}
	child := newObject(path, m)
	o.children = append(o.children, child)
	return child, nil
}

// List is a sequence value addressed by path.
type List struct {
	path   string
	items  []any
	parent *Object
}

// Path returns the path of the list.
func (l *List) Path() string { return l.path }

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// PathOf returns the path of item i.
func (l *List) PathOf(i int) string {
	return l.path + "[" + strconv.Itoa(i) + "]"
}

// Value returns the raw item i.
func (l *List) Value(i int) any { return l.items[i] }

// Object reads item i as an object.
func (l *List) Object(i int) (*Object, error) {
	path := l.PathOf(i)
	if l.items[i] == nil {
		return nil, Errorf(path, "expected an object, got null")
	}
	return l.parent.objectFrom(path, l.items[i])
}

func asMap(path string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		converted := make(map[string]any, len(m))
		for k, val := range m {
			converted[fmt.Sprint(k)] = val
		}
		return converted, nil
	default:
		return nil, Errorf(path, "expected an object, got %s", typeName(v))
	}
}

func scalarString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return norm.NFC.String(s), nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case time.Time:
		return s.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		// TOML local dates and times.
		return s.String(), nil
	default:
		return "", Errorf(path, "expected a string, got %s", typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
