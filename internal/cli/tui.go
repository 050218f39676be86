package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/scheduler"
	"github.com/sandeepkv93/cozy/internal/update"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	engine := scheduler.NewEngine(ctx.Config.SchedulerBuffer)
	engine.Start()
	defer func() {
		engine.Stop()
		if n := engine.Dropped(); n > 0 {
			logger.Warn("rollover events dropped", "dropped", n)
		}
	}()

	feed := events.Channel(ctx.Tracker.Bus(), ctx.Config.EventBuffer)
	defer func() {
		feed.Close()
		if n := feed.Dropped(); n > 0 {
			logger.Warn("tui missed change events", "dropped", n)
		}
	}()

	m := update.NewModel(update.Deps{
		Context:   ctx.Ctx,
		Tracker:   ctx.Tracker,
		Scheduler: engine,
		Feed:      feed,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	ctx.Tracker.PauseTimer()
	waitCtx, cancel := context.WithTimeout(ctx.Ctx, 5*time.Second)
	defer cancel()
	if err := ctx.Tracker.WaitForCue(waitCtx); err != nil {
		logger.Warn("completion cue still playing at exit", "err", err)
	}
	return nil
}
