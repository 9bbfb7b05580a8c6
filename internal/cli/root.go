// Package cli wires the menu engine, its data sources and its front ends
// into the navmenu command.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navmenu/internal/config"
	"navmenu/internal/logger"
)

// Version is set at build time.
var Version = "0.1.0"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	menuFile   string
	menuCmd    string
	active     string
	query      string
}

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the terminal sidebar.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "navmenu",
		Short: "Searchable navigation menu with expansion state",
		Long: "navmenu renders a hierarchical navigation menu with search, " +
			"remembers which sections are open, and serves the same view over HTTP.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: navmenu.yaml or ~/.config/navmenu/config.yaml)")
	flags.StringVar(&opts.menuFile, "menu", "", "Menu file to load and watch (YAML or JSON)")
	flags.StringVar(&opts.menuCmd, "menu-cmd", "", "Command whose stdout is a JSON menu, used instead of --menu")
	flags.StringVar(&opts.active, "active", "", "Route considered current; its ancestors are opened")
	flags.StringVar(&opts.query, "query", "", "Initial search query")

	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newFilterCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "navmenu %s\n", Version)
		},
	}
}

// loadConfig reads the config file and applies the flags the user set.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromDefaultPath()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("menu") {
		cfg.MenuFile = o.menuFile
		cfg.MenuCommand = nil
	}
	if flags.Changed("menu-cmd") {
		cfg.MenuCommand = strings.Fields(o.menuCmd)
	}
	if flags.Changed("active") {
		cfg.ActivePath = o.active
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// newLogger builds the logger for cfg and a cleanup that flushes it and
// closes its file. Without a log file, interactive commands discard logs so
// they never draw over the screen.
func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, func(), error) {
	if cfg.Log.File == "" && interactive {
		return logger.Nop(), func() {}, nil
	}
	return logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
}
