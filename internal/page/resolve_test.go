package page

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
)

const homePage = `---
layout: home

hero:
  name: "VitePress"
  text: "Vite & Vue powered static site generator"
  tagline: Markdown to beautiful docs in minutes
  image:
    src: /vitepress-logo-large.webp
    alt: VitePress
  actions:
    - theme: brand
      text: What is VitePress?
      link: /guide/what-is-vitepress
    - theme: alt
      text: Quickstart
      link: /guide/getting-started
    - theme: alt
      text: GitHub
      link: https://github.com/vuejs/vitepress

features:
  - title: Focus on your content
    details: Effortlessly create beautiful documentation sites with just markdown.
  - title: Enjoy the Vite DX
    details: Instant server start, lightning fast hot updates.
  - title: Customize with Vue
    details: Use Vue syntax and components directly in markdown.
---
`

func TestResolve_HomePage(t *testing.T) {
	d, err := Resolve([]byte(homePage), Options{})
	require.NoError(t, err)

	require.Equal(t, LayoutHome, d.Layout)
	require.Equal(t, "VitePress", d.Hero.Name)
	require.Equal(t, "Vite & Vue powered static site generator", d.Hero.Text)
	require.Equal(t, "Markdown to beautiful docs in minutes", d.Hero.Tagline)
	require.Equal(t, &HeroImage{Src: "/vitepress-logo-large.webp", Alt: "VitePress"}, d.Hero.Image)
	require.Equal(t, []HeroAction{
		{Theme: ThemeBrand, Text: "What is VitePress?", Link: "/guide/what-is-vitepress"},
		{Theme: ThemeAlt, Text: "Quickstart", Link: "/guide/getting-started"},
		{Theme: ThemeAlt, Text: "GitHub", Link: "https://github.com/vuejs/vitepress"},
	}, d.Hero.Actions)

	require.Len(t, d.Features, 3)
	require.Equal(t, "Focus on your content", d.Features[0].Title)
	require.Equal(t, "Customize with Vue", d.Features[2].Title)
	require.Empty(t, d.Unknown)
}

func TestResolve_IsIdempotent(t *testing.T) {
	first, err := Resolve([]byte(homePage), Options{})
	require.NoError(t, err)
	second, err := Resolve([]byte(homePage), Options{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestResolve_OptionalDefaults(t *testing.T) {
	d, err := Resolve([]byte("hero:\n  name: Site\n  text: Docs\n"), Options{})
	require.NoError(t, err)

	require.Equal(t, "", d.Hero.Tagline)
	require.Nil(t, d.Hero.Image)
	require.NotNil(t, d.Hero.Actions)
	require.Empty(t, d.Hero.Actions)
	require.NotNil(t, d.Features)
	require.Empty(t, d.Features)
	require.Equal(t, LayoutHome, d.Layout)
}

func TestResolve_ActionThemeDefaultsToBrand(t *testing.T) {
	d, err := Resolve([]byte(`
hero:
  name: Site
  text: Docs
  actions:
    - text: Start
      link: /start
`), Options{})
	require.NoError(t, err)
	require.Equal(t, ThemeBrand, d.Hero.Actions[0].Theme)
}

func TestResolve_ImageShorthand(t *testing.T) {
	d, err := Resolve([]byte("hero:\n  name: Site\n  text: Docs\n  image: /logo.svg\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, &HeroImage{Src: "/logo.svg"}, d.Hero.Image)
}

func TestResolve_TOMLFrontMatter(t *testing.T) {
	doc := `+++
layout = "home"

[hero]
name = "Site"
text = "Docs"

[[hero.actions]]
theme = "alt"
text = "Guide"
link = "/guide/"

[[features]]
title = "Fast"
+++
# body
`
	d, err := Resolve([]byte(doc), Options{})
	require.NoError(t, err)
	require.Equal(t, []HeroAction{{Theme: ThemeAlt, Text: "Guide", Link: "/guide/"}}, d.Hero.Actions)
	require.Equal(t, []FeatureItem{{Title: "Fast"}}, d.Features)
}

func TestResolve_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "missing hero", input: "layout: home\n", field: "hero"},
		{name: "hero not an object", input: "hero: banner\n", field: "hero"},
		{name: "missing name", input: "hero:\n  text: Docs\n", field: "hero.name"},
		{name: "blank text", input: "hero:\n  name: Site\n  text: '  '\n", field: "hero.text"},
		{name: "tagline is a list", input: "hero:\n  name: S\n  text: D\n  tagline: [a]\n", field: "hero.tagline"},
		{name: "image without src", input: "hero:\n  name: S\n  text: D\n  image:\n    alt: x\n", field: "hero.image.src"},
		{name: "mailto image", input: "hero:\n  name: S\n  text: D\n  image: mailto:team@example.com\n", field: "hero.image"},
		{name: "mailto image src", input: "hero:\n  name: S\n  text: D\n  image:\n    src: mailto:team@example.com\n", field: "hero.image.src"},
		{
			name:  "unknown theme",
			input: "hero:\n  name: S\n  text: D\n  actions:\n    - text: A\n      link: /a\n    - theme: primary\n      text: B\n      link: /b\n",
			field: "hero.actions[1].theme",
		},
		{name: "bad action link", input: "hero:\n  name: S\n  text: D\n  actions:\n    - text: A\n      link: /a b\n", field: "hero.actions[0].link"},
		{name: "actions not a list", input: "hero:\n  name: S\n  text: D\n  actions: go\n", field: "hero.actions"},
		{name: "feature without title", input: "hero:\n  name: S\n  text: D\nfeatures:\n  - details: x\n", field: "features[0].title"},
		{name: "unknown layout", input: "layout: landing\nhero:\n  name: S\n  text: D\n", field: "layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve([]byte(tt.input), Options{})
			require.Error(t, err)
			require.True(t, errors.IsParseError(err), "expected ParseError, got %v", err)
			require.Equal(t, tt.field, errors.FieldOf(err))
		})
	}
}

func TestResolve_MalformedSyntax(t *testing.T) {
	_, err := Resolve([]byte("---\nhero: [unclosed\n---\n"), Options{})
	require.True(t, errors.IsParseError(err))

	_, err = Resolve([]byte("---\nhero:\n  name: S\n"), Options{})
	require.True(t, errors.IsParseError(err))
}

func TestResolve_UnknownFields(t *testing.T) {
	input := "hero:\n  name: S\n  text: D\n  badge: new\nsidebar: false\n"

	d, err := Resolve([]byte(input), Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"hero.badge", "sidebar"}, d.Unknown)

	_, err = Resolve([]byte(input), Options{Strict: true})
	require.True(t, errors.IsParseError(err))
	require.Equal(t, "hero.badge", errors.FieldOf(err))
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(path, []byte(homePage+"\n# Welcome\n"), 0o600))

	d, err := ResolveFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, "VitePress", d.Hero.Name)

	_, err = ResolveFile(filepath.Join(dir, "missing.md"), Options{})
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	require.NoError(t, os.WriteFile(path, []byte("---\nhero: {}\n---\n"), 0o600))
	_, err = ResolveFile(path, Options{})
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, path, ce.File())
	require.Equal(t, "hero.name", ce.Field())
}
