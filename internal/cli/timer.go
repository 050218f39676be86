package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/timer"
)

type TimerCmd struct {
	Ref      string `arg:"" help:"Task number, id or id prefix."`
	Category string `short:"c" default:"exercise" help:"Timed category of the task."`
}

// Run counts the task down in the terminal. Ctrl-C pauses the session and
// exits.
func (c *TimerCmd) Run(ctx *Context) error {
	cat, task, err := resolve(ctx, c.Category, c.Ref)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx.Ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(ctx.Out, "%s: %s\n", task.Name, timer.FormatClock(task.DurationSeconds()))
	err = ctx.Tracker.RunTimer(runCtx, cat.Name, task.ID, time.Second, func(res timer.TickResult) {
		fmt.Fprintf(ctx.Out, "\r%s: %s ", res.Session.TaskName, res.Session.Clock())
	})
	fmt.Fprintln(ctx.Out)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(ctx.Out, "Paused %s\n", task.Name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "%s complete!\n", task.Name)
	waitCtx, cancel := context.WithTimeout(ctx.Ctx, 10*time.Second)
	defer cancel()
	if err := ctx.Tracker.WaitForCue(waitCtx); err != nil {
		logger.Warn("completion cue still playing at exit", "err", err)
	}
	return nil
}
