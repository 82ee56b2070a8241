package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/sitedesc/internal/state"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	src := root.Sources()
	snap, err := state.NewFileLoader(src).Load(context.Background())
	if err != nil {
		return err
	}

	w := g.out()
	fmt.Fprintf(w, "site %s: ok (%d nav, %d sidebar groups, %d social links)\n",
		src.SitePath, len(snap.Site.Nav), len(snap.Site.Sidebar), len(snap.Site.SocialLinks))
	reportUnknown(w, snap.Site.Unknown)

	if snap.Home != nil {
		fmt.Fprintf(w, "page %s: ok (%d actions, %d features)\n",
			src.HomePath, len(snap.Home.Hero.Actions), len(snap.Home.Features))
		reportUnknown(w, snap.Home.Unknown)
	}
	return nil
}

func reportUnknown(w io.Writer, unknown []string) {
	if len(unknown) == 0 {
		return
	}
	fmt.Fprintf(w, "  ignored unknown fields: %s\n", strings.Join(unknown, ", "))
}
