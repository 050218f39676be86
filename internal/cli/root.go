package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sandeepkv93/cozy/internal/config"
	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/tracker"
)

// CLI is the kong grammar for the cozy binary.
type CLI struct {
	DB    string `help:"Data file path (overrides COZY_DB_PATH)." type:"path"`
	Store string `help:"Storage backend: sqlite, file or memory (overrides COZY_STORE)."`
	Debug bool   `help:"Log at debug level."`

	Tui  TuiCmd `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Task struct {
		Add  TaskAddCmd  `cmd:"" help:"Add a task to a category."`
		List TaskListCmd `cmd:"" help:"List today's tasks."`
		Done TaskDoneCmd `cmd:"" help:"Mark a task complete."`
		Undo TaskUndoCmd `cmd:"" help:"Mark a task incomplete."`
		Rm   TaskRmCmd   `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Timer    TimerCmd    `cmd:"" help:"Run a countdown for a timed task."`
	Log      LogCmd      `cmd:"" help:"Show the completion log."`
	Calendar CalendarCmd `cmd:"" help:"Show a month of completions."`
	Summary  SummaryCmd  `cmd:"" help:"Show today's progress per category."`
	Storage  StorageCmd  `cmd:"" help:"Report storage usage."`
	Profile  ProfileCmd  `cmd:"" help:"Show or change the display name."`
}

// Context is handed to every command's Run.
type Context struct {
	Ctx     context.Context
	Config  config.RuntimeConfig
	Tracker *tracker.Tracker
	Out     io.Writer
}

// Run resolves configuration, opens the store and runs the selected command.
func Run(ctx context.Context, kctx *kong.Context, c *CLI) error {
	cfg := c.Config(config.FromEnv(config.Default()))
	interactive := kctx.Command() == "tui"

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir, Stderr: !interactive}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	kv, closeKV, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeKV(); err != nil {
			logger.Warn("close store failed", "err", err)
		}
	}()

	bus := events.NewBus()
	if cfg.Debug {
		events.RegisterDebugLogger(bus)
	}
	appCtx := &Context{
		Ctx:     ctx,
		Config:  cfg,
		Tracker: NewTracker(cfg, kv, bus),
		Out:     os.Stdout,
	}
	logger.Debug("running command", "command", kctx.Command(), "store", cfg.Store, "path", cfg.StorePath())
	return kctx.Run(appCtx)
}

// Config layers the global flags over base.
func (c *CLI) Config(base config.RuntimeConfig) config.RuntimeConfig {
	cfg := base
	if strings.TrimSpace(c.DB) != "" {
		cfg.DBPath = c.DB
	}
	if config.ValidStore(c.Store) {
		cfg.Store = strings.ToLower(strings.TrimSpace(c.Store))
	}
	if c.Debug {
		cfg.Debug = true
	}
	return cfg
}

// OpenStore opens the configured key-value backend. The returned func
// releases it.
func OpenStore(ctx context.Context, cfg config.RuntimeConfig) (storage.KV, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryKV(), nop, nil
	case config.StoreFile:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		kv, err := storage.OpenFile(cfg.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return kv, nop, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		kv, err := storage.OpenSQLite(ctx, cfg.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return kv, kv.Close, nil
	}
}

// NewTracker wires the tracker with the cue, volume ducking and desktop
// notifier the configuration asks for.
func NewTracker(cfg config.RuntimeConfig, kv storage.KV, bus *events.Bus) *tracker.Tracker {
	deps := tracker.Deps{
		KV:         kv,
		Categories: cfg.Categories,
		Bus:        bus,
		Cue:        selectCue(cfg),
	}
	if _, err := exec.LookPath("playerctl"); err == nil {
		deps.Volume = timer.PlayerctlVolume{}
	}
	if cfg.DesktopNotifications {
		deps.Notifier = timer.ExecDesktopNotifier{}
	}
	return tracker.New(deps)
}

func selectCue(cfg config.RuntimeConfig) timer.Cue {
	if strings.TrimSpace(cfg.CueFile) == "" {
		return timer.BellCue{W: os.Stderr}
	}
	player := cfg.CuePlayer
	if player == "" {
		found, err := timer.DetectPlayer()
		if err != nil {
			logger.Warn("no audio player found, falling back to terminal bell", "err", err)
			return timer.BellCue{W: os.Stderr}
		}
		player = found
	}
	return timer.ExecCue{Player: player, File: cfg.CueFile}
}

func (c *Context) category(name string) (model.Category, error) {
	cat, err := c.Tracker.Category(name)
	if err != nil {
		return model.Category{}, fmt.Errorf("%w (known: %s)", err, c.knownCategories())
	}
	return cat, nil
}

func (c *Context) knownCategories() string {
	names := make([]string, 0, len(c.Config.Categories))
	for _, cat := range c.Tracker.Categories() {
		names = append(names, cat.Name)
	}
	return strings.Join(names, ", ")
}
