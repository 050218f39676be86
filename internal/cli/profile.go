package cli

import (
	"fmt"
	"strings"
)

type ProfileCmd struct {
	Name  []string `arg:"" optional:"" help:"New display name."`
	Clear bool     `help:"Forget the saved name and picture."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	switch {
	case c.Clear:
		if err := ctx.Tracker.ClearProfile(ctx.Ctx); err != nil {
			return err
		}
		fmt.Fprintln(ctx.Out, "Profile cleared.")
	case len(c.Name) > 0:
		if err := ctx.Tracker.SetProfileName(ctx.Ctx, strings.Join(c.Name, " ")); err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "Profile name set to %s\n", ctx.Tracker.ProfileName(ctx.Ctx))
	default:
		fmt.Fprintln(ctx.Out, ctx.Tracker.ProfileName(ctx.Ctx))
	}
	return nil
}
