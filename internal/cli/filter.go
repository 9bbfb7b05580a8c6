package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"navmenu/internal/config"
	"navmenu/internal/menu"
	"navmenu/internal/server"
	"navmenu/internal/source"
)

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON    bool
		collapsed bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the visible menu for a query and active route",
		Long: "filter loads the menu once, applies --query and --active, and prints " +
			"the rows the sidebar would show as an indented outline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			tree, err := loadTree(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			log, closeLog, err := newLogger(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()

			e := menu.NewEngine(menu.WithLogger(log))
			e.Load(tree)
			e.SetQuery(opts.query)
			e.SetActivePath(cfg.ActivePath)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(server.BuildResponse(e, !collapsed), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode menu: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			return printOutline(out, e, !collapsed)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the HTTP JSON shape instead of an outline")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Show the collapsed sidebar (top-level rows only)")
	return cmd
}

// loadTree reads the menu once from the configured source.
func loadTree(ctx context.Context, cfg *config.Config) ([]*menu.Node, error) {
	if cfg.HasMenuCommand() {
		return source.FromCommand(ctx, cfg.MenuCommand)
	}
	return source.LoadFile(cfg.MenuFile)
}

// printOutline writes one line per visible row:
//
//	- Settings
//	  . Billing  /billing  *
//	  + Catalog
//
// "-" marks an expanded row, "+" a collapsed one, "." a leaf, and "*" the
// active route.
func printOutline(w io.Writer, e *menu.Engine, sidebarOpen bool) error {
	switch e.Status() {
	case menu.StatusEmpty:
		_, err := fmt.Fprintln(w, "No menu available")
		return err
	case menu.StatusNoMatches:
		_, err := fmt.Fprintln(w, "No matches found")
		return err
	}

	for _, row := range e.Rows(sidebarOpen) {
		node := row.Item.Node

		marker := "."
		switch {
		case row.Item.HasChildren && row.Expanded:
			marker = "-"
		case row.Item.HasChildren:
			marker = "+"
		}

		var b strings.Builder
		b.WriteString(strings.Repeat("  ", row.Depth))
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(node.Name)
		if node.HasPath() {
			b.WriteString("  ")
			b.WriteString(node.Path)
		}
		if row.Active {
			b.WriteString("  *")
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
