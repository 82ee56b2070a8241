package fields

import (
	"errors"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestObject_PathsAndScalars(t *testing.T) {
	root := Root(map[string]any{
		"title":   "Docs",
		"version": 2,
		"hero": map[string]any{
			"name": "Cafe\u0301",
		},
	})

	title, err := root.RequiredString("title")
	require.NoError(t, err)
	require.Equal(t, "Docs", title)

	version, err := root.StringOr("version", "")
	require.NoError(t, err)
	require.Equal(t, "2", version)

	hero, ok, err := root.Object("hero")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hero", hero.Path())
	require.Equal(t, "hero.name", hero.PathOf("name"))

	name, err := hero.RequiredString("name")
	require.NoError(t, err)
	require.Equal(t, "Caf\u00e9", name)
}

func TestObject_TimestampScalars(t *testing.T) {
	var fromTOML map[string]any
	require.NoError(t, toml.Unmarshal([]byte(`
day = 2024-01-01
at = 2024-01-01T10:30:00Z
local = 2024-01-01T10:30:00
clock = 10:30:00
`), &fromTOML))

	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("day: 2024-01-01\nat: 2024-01-01T10:30:00Z\n"), &fromYAML))

	tests := []struct {
		name string
		raw  map[string]any
		key  string
		want string
	}{
		{"toml local date", fromTOML, "day", "2024-01-01"},
		{"toml offset datetime", fromTOML, "at", "2024-01-01T10:30:00Z"},
		{"toml local datetime", fromTOML, "local", "2024-01-01T10:30:00"},
		{"toml local time", fromTOML, "clock", "10:30:00"},
		{"yaml date", fromYAML, "day", "2024-01-01"},
		{"yaml timestamp", fromYAML, "at", "2024-01-01T10:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Root(tt.raw).RequiredString(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestObject_RequiredStringBlank(t *testing.T) {
	root := Root(map[string]any{"title": "   "})

	_, err := root.RequiredString("title")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "title", fe.Path)
	require.ErrorIs(t, err, ErrMissing)

	_, err = root.RequiredString("absent")
	require.ErrorIs(t, err, ErrMissing)
}

func TestObject_TypeMismatch(t *testing.T) {
	root := Root(map[string]any{
		"title": []any{"a"},
		"nav":   "not a list",
		"flag":  "yes",
	})

	_, _, err := root.String("title")
	require.EqualError(t, err, "title: expected a string, got a list")

	_, err = root.List("nav")
	require.EqualError(t, err, "nav: expected a list, got a string")

	_, _, err = root.Bool("flag")
	require.EqualError(t, err, "flag: expected a boolean, got a string")
}

func TestList_ItemsAndPaths(t *testing.T) {
	root := Root(map[string]any{
		"nav": []any{
			map[string]any{"text": "Home", "link": "/"},
			"oops",
		},
	})

	nav, err := root.List("nav")
	require.NoError(t, err)
	require.Equal(t, 2, nav.Len())

	first, err := nav.Object(0)
	require.NoError(t, err)
	require.Equal(t, "nav[0].text", first.PathOf("text"))

	_, err = nav.Object(1)
	require.EqualError(t, err, "nav[1]: expected an object, got a string")

	missing, err := root.List("sidebar")
	require.NoError(t, err)
	require.Equal(t, 0, missing.Len())
}

func TestObject_Unknown(t *testing.T) {
	root := Root(map[string]any{
		"title": "Docs",
		"extra": true,
		"nav": []any{
			map[string]any{"text": "Home", "link": "/", "target": "_blank"},
		},
	})

	_, _ = root.RequiredString("title")
	nav, err := root.List("nav")
	require.NoError(t, err)
	item, err := nav.Object(0)
	require.NoError(t, err)
	_, _ = item.RequiredString("text")
	_, _ = item.RequiredString("link")

	require.Equal(t, []string{"extra", "nav[0].target"}, root.Unknown())
}

func TestRoot_NilMap(t *testing.T) {
	root := Root(nil)
	_, ok, err := root.String("title")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, root.Unknown())
}
