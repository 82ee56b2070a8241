package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
)

const exampleSiteConfig = `title: My Docs
description: Documentation for my project
lang: en-US
base: /

nav:
  - text: Guide
    link: /guide/
  - text: Reference
    link: /reference/

sidebar:
  - text: Guide
    items:
      - text: Getting started
        link: /guide/getting-started
      - text: Configuration
        link: /guide/configuration

socialLinks:
  - icon: github
    link: https://github.com/your-org/your-project
`

const exampleHomePage = `---
layout: home

hero:
  name: My Docs
  text: Documentation for my project
  tagline: Short and to the point
  actions:
    - theme: brand
      text: Get started
      link: /guide/getting-started
    - theme: alt
      text: Reference
      link: /reference/

features:
  - title: Simple
    details: Write markdown, get a site.
  - title: Fast
    details: Pages load instantly.
---
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	w := g.out()
	files := []struct{ path, content string }{
		{root.Settings.Site, exampleSiteConfig},
		{root.Settings.Page, exampleHomePage},
	}
	var targets []struct{ path, content string }
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if err := checkTarget(f.path, i.Force); err != nil {
			return err
		}
		targets = append(targets, f)
	}

	for _, f := range targets {
		if err := writeExample(f.path, f.content); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", f.path)
	}
	return nil
}

// checkTarget runs before anything is written, so a refused target leaves
// the tree untouched.
func checkTarget(path string, force bool) error {
	if filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml" && filepath.Ext(path) != ".md" {
		return errors.ValidationError("init writes YAML site configs and markdown pages only").
			InFile(path).Build()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("file already exists (use --force to overwrite)").
			InFile(path).Build()
	}
	return nil
}

func writeExample(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create directory").
			InFile(path).Build()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write file").
			InFile(path).Build()
	}
	return nil
}
