package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitedesc/internal/config"
	"git.home.luguber.info/inful/sitedesc/internal/state"
)

// Global carries process-wide collaborators into subcommands.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Settings file path (default: sitedesc.yaml when present)" env:"SITEDESC_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging" env:"SITEDESC_VERBOSE"`
	Strict    bool             `help:"Reject unknown fields instead of ignoring them" env:"SITEDESC_STRICT"`
	Site      string           `short:"s" help:"Site configuration file (.yaml, .yml, .toml, .json)" env:"SITEDESC_SITE"`
	Page      string           `short:"p" help:"Home page markdown file" env:"SITEDESC_PAGE"`
	LogFormat string           `help:"Log output format (text, json)" env:"SITEDESC_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve ResolveCmd `cmd:"" help:"Resolve descriptors and print them for the renderer"`
	Check   CheckCmd   `cmd:"" help:"Validate descriptors without printing them"`
	Watch   WatchCmd   `cmd:"" help:"Keep descriptors loaded and reload them on change"`
	Init    InitCmd    `cmd:"" help:"Write an example site configuration and home page"`

	// Settings are the effective settings after AfterApply merged file, env and flags.
	Settings config.Settings `kong:"-"`
}

// AfterApply runs after flag parsing; resolves settings and sets up logging once.
func (c *CLI) AfterApply() error {
	settings, err := config.LoadSettings(c.Config)
	if err != nil {
		return err
	}
	if c.Site != "" {
		settings.Site = c.Site
	}
	if c.Page != "" {
		settings.Page = c.Page
	}
	if c.Strict {
		settings.Strict = true
	}
	if c.Verbose {
		settings.Log.Level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		settings.Log.Format = config.LogFormat(c.LogFormat)
	}
	if err := settings.Normalize(); err != nil {
		return err
	}
	c.Settings = settings

	opts := &slog.HandlerOptions{Level: settings.Log.Level.Slog()}
	var handler slog.Handler
	if settings.Log.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// Sources maps the effective settings onto loader inputs.
func (c *CLI) Sources() state.Sources {
	return state.Sources{
		SitePath: c.Settings.Site,
		HomePath: c.Settings.Page,
		Strict:   c.Settings.Strict,
	}
}
