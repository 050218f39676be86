package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/update"
	"github.com/sandeepkv93/cozy/internal/views"
)

type LogCmd struct {
	Days int `default:"7" help:"How many days back to show."`
}

func (c *LogCmd) Run(ctx *Context) error {
	days := ctx.Tracker.Recent(ctx.Ctx, c.Days)
	if len(days) == 0 {
		fmt.Fprintln(ctx.Out, "Nothing logged yet.")
		return nil
	}
	loc := ctx.Tracker.Now().Location()
	for _, d := range days {
		label := d.Key
		if t, err := datekey.Parse(d.Key, loc); err == nil {
			label = fmt.Sprintf("%s (%s)", d.Key, humanize.Time(t))
		}
		fmt.Fprintln(ctx.Out, label)
		for _, cat := range ctx.Tracker.Categories() {
			if names := d.Entry.Done(cat); len(names) > 0 {
				fmt.Fprintf(ctx.Out, "  %s: %s\n", cat.Label(), strings.Join(names, ", "))
			}
		}
	}
	return nil
}

type CalendarCmd struct {
	Month string `help:"Month to show as YYYY-MM. Defaults to this month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	now := ctx.Tracker.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", c.Month)
		}
		year, month = t.Year(), t.Month()
	}
	grid, err := ctx.Tracker.Month(ctx.Ctx, year, month)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, views.RenderCalendar(update.CalendarViewData(grid)))
	return nil
}

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Out, "Hi, %s. %s\n", ctx.Tracker.ProfileName(ctx.Ctx), ctx.Tracker.Now().Format("Monday, January 2"))
	for _, cat := range ctx.Tracker.Categories() {
		s, err := ctx.Tracker.Summary(ctx.Ctx, cat.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "%s: %d/%d (%d%%) %s\n", cat.Label(), s.Completed, s.Total, s.Percent, s.Message())
	}
	return nil
}

type StorageCmd struct {
	Keys bool `help:"List the size of every stored key."`
}

func (c *StorageCmd) Run(ctx *Context) error {
	u, err := ctx.Tracker.Usage(ctx.Ctx)
	if err != nil {
		return err
	}
	if c.Keys {
		for _, e := range u.Entries {
			fmt.Fprintf(ctx.Out, "%-28s %s\n", e.Key, humanize.IBytes(uint64(e.Bytes)))
		}
	}
	fmt.Fprintf(ctx.Out, "%s (%.1f%%)\n", u.String(), u.Percent())
	return nil
}
