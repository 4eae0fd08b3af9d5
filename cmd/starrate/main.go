package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jask/starrate/internal/config"
	"github.com/jask/starrate/internal/dom"
	"github.com/jask/starrate/internal/page"
	"github.com/jask/starrate/internal/rating"
	"github.com/jask/starrate/internal/schedule"
	"github.com/jask/starrate/internal/tui"
)

type flags struct {
	configPath string
	pagePath   string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "starrate",
		Short:         "Pick a rating from 1 to 5 and submit it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(f)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "starrate:", err)
				return err
			}
			defer a.close()
			if _, err := tea.NewProgram(a.model, a.programOpts...).Run(); err != nil {
				a.log.Error("program exited", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default $HOME/.config/starrate/config.toml)")
	cmd.Flags().StringVar(&f.pagePath, "page", "", "widget markup (default bundled page)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

type app struct {
	log         *zap.Logger
	tree        *dom.Tree
	loop        *schedule.Loop
	widget      *rating.Widget
	model       tui.Model
	programOpts []tea.ProgramOption
}

// setup builds everything the program needs. The hosting application
// owns the one widget instance and closes it on exit.
func setup(f flags) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.pagePath != "" {
		cfg.Page.Path = f.pagePath
	}

	logger, err := newLogger(cfg.Log, f.verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tree, err := page.Load(cfg.Page.Path)
	if err != nil {
		logger.Error("load page", zap.String("path", cfg.Page.Path), zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	loop := schedule.NewLoop()
	w := rating.New(tree, loop, rating.WithLogger(logger))
	if err := w.Init(); err != nil {
		loop.Close()
		_ = logger.Sync()
		return nil, err
	}

	title := cfg.UI.Title
	if title == "" {
		title = page.Title(tree)
	}
	a := &app{
		log:    logger,
		tree:   tree,
		loop:   loop,
		widget: w,
		model:  tui.New(w, tree, loop, tui.Options{Title: title, Accent: cfg.UI.Accent}),
	}
	if cfg.UI.AltScreen {
		a.programOpts = append(a.programOpts, tea.WithAltScreen())
	}
	logger.Info("starrate ready", zap.String("page", cfg.Page.Path), zap.Int("controls", len(w.Controls())))
	return a, nil
}

func (a *app) close() {
	a.widget.Close()
	a.loop.Close()
	_ = a.log.Sync()
}

func newLogger(c config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	switch c.File {
	case "", "stderr", "stdout":
	default:
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		zc.OutputPaths = []string{c.File}
		zc.ErrorOutputPaths = []string{c.File}
	}
	return zc.Build()
}
