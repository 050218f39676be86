package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/progress"
)

type TaskAddCmd struct {
	Category string   `arg:"" help:"Category, e.g. exercise or personal."`
	Name     []string `arg:"" help:"Task name."`
	Minutes  float64  `short:"d" required:"" help:"Duration in minutes."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	cat, err := ctx.category(c.Category)
	if err != nil {
		return err
	}
	task, err := ctx.Tracker.Add(ctx.Ctx, cat.Name, strings.Join(c.Name, " "), c.Minutes)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added %s task %q (%s min) [%s]\n", cat.Name, task.Name, humanize.Ftoa(task.DurationMinutes), shortID(task.ID))
	return nil
}

type TaskListCmd struct {
	Category string `arg:"" optional:"" help:"Only list this category."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	cats := ctx.Tracker.Categories()
	if c.Category != "" {
		cat, err := ctx.category(c.Category)
		if err != nil {
			return err
		}
		cats = []model.Category{cat}
	}
	for i, cat := range cats {
		list, err := ctx.Tracker.Tasks(ctx.Ctx, cat.Name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(ctx.Out)
		}
		fmt.Fprintf(ctx.Out, "%ss (%s)\n", cat.Label(), progress.Summarize(list).Message())
		for n, task := range list {
			check := " "
			if task.Completed {
				check = "x"
			}
			fmt.Fprintf(ctx.Out, "  %d. [%s] %s (%s min) [%s]\n", n+1, check, task.Name, humanize.Ftoa(task.DurationMinutes), shortID(task.ID))
		}
	}
	return nil
}

type TaskDoneCmd struct {
	Category string `arg:"" help:"Category of the task."`
	Ref      string `arg:"" help:"Task number, id or id prefix."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	return setCompleted(ctx, c.Category, c.Ref, true)
}

type TaskUndoCmd struct {
	Category string `arg:"" help:"Category of the task."`
	Ref      string `arg:"" help:"Task number, id or id prefix."`
}

func (c *TaskUndoCmd) Run(ctx *Context) error {
	return setCompleted(ctx, c.Category, c.Ref, false)
}

type TaskRmCmd struct {
	Category string `arg:"" help:"Category of the task."`
	Ref      string `arg:"" help:"Task number, id or id prefix."`
}

func (c *TaskRmCmd) Run(ctx *Context) error {
	cat, task, err := resolve(ctx, c.Category, c.Ref)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.Remove(ctx.Ctx, cat.Name, task.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted %s task %q\n", cat.Name, task.Name)
	return nil
}

func setCompleted(ctx *Context, category, ref string, value bool) error {
	cat, task, err := resolve(ctx, category, ref)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.SetCompleted(ctx.Ctx, cat.Name, task.ID, value); err != nil {
		return err
	}
	verb := "Marked %q done\n"
	if !value {
		verb = "Marked %q not done\n"
	}
	fmt.Fprintf(ctx.Out, verb, task.Name)
	return nil
}

func resolve(ctx *Context, category, ref string) (model.Category, model.Task, error) {
	cat, err := ctx.category(category)
	if err != nil {
		return model.Category{}, model.Task{}, err
	}
	task, err := ctx.Tracker.Resolve(ctx.Ctx, cat.Name, ref)
	if err != nil {
		return model.Category{}, model.Task{}, err
	}
	return cat, task, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
