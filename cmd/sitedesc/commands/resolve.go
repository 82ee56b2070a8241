package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/page"
	"git.home.luguber.info/inful/sitedesc/internal/site"
	"git.home.luguber.info/inful/sitedesc/internal/state"
)

// Output is the document handed to the renderer.
type Output struct {
	Fingerprint string           `json:"fingerprint" yaml:"fingerprint"`
	Site        site.Descriptor  `json:"site" yaml:"site"`
	Home        *page.Descriptor `json:"home,omitempty" yaml:"home,omitempty"`
}

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Format string `short:"f" help:"Output format" enum:"json,yaml" default:"json"`
	Output string `short:"o" help:"Write to file instead of stdout"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	snap, err := state.NewFileLoader(root.Sources()).Load(context.Background())
	if err != nil {
		return err
	}

	out := Output{Fingerprint: snap.Fingerprint, Site: snap.Site, Home: snap.Home}
	if r.Output == "" {
		return writeOutput(g.out(), r.Format, out)
	}

	f, err := os.Create(r.Output)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create output file").
			InFile(r.Output).Build()
	}
	if err := writeOutput(f, r.Format, out); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeOutput(w io.Writer, format string, out Output) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "cannot encode YAML output").Build()
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "cannot encode JSON output").Build()
		}
		return nil
	default:
		return errors.ValidationError(fmt.Sprintf("unsupported output format %q", format)).Build()
	}
}
