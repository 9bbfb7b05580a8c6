package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"navmenu/internal/source"
	"navmenu/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive sidebar (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	modelOpts := tui.ModelOptions{
		ActivePath:  cfg.ActivePath,
		Query:       opts.query,
		SidebarOpen: cfg.SidebarOpen,
		Debounce:    cfg.SearchDebounce,
		Theme:       cfg.Theme,
		Logger:      log,
	}

	if cfg.HasMenuCommand() {
		modelOpts.Command = cfg.MenuCommand
	} else {
		w, err := source.NewWatcher(cfg.MenuFile, source.WithLogger(log))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch menu file: %w", err)
		}
		defer w.Stop()
		modelOpts.Watcher = w
	}

	p := tea.NewProgram(tui.NewModel(modelOpts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
