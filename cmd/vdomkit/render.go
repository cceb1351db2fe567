package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/demo"
	"github.com/vango-dev/vdomkit/pkg/render"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		clicks []string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "render [app]",
		Short: "Print the markup of a demo app",
		Long: `Mount a demo app into an in-memory document and print the
content of the mount container.

Examples:
  vdomkit render hello
  vdomkit render counter --click .0.0 --click .0.0
  vdomkit render --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, app := range demo.Apps() {
					fmt.Fprintf(out, "%-8s %s\n", app.Name, app.Description)
				}
				return nil
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())

			name := "hello"
			if len(args) > 0 {
				name = args[0]
			}
			m, err := mountApp(name, clicks,
				render.WithLogger(logger),
				render.WithMiddleware(cycleMiddleware(cfg, logger, prometheus.NewRegistry())...),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, m.markup())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&clicks, "click", nil, "Address to click after mounting (repeatable)")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the demo apps")

	return cmd
}
