package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/tuikit/pkg/ui/layout"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "demo [name]",
		Short:   "Run a built-in demo layout",
		GroupID: "run",
		Long: "Run one of the bundled layouts. Click buttons with the mouse and\n" +
			"press the cancel key (default Esc) to quit.",
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				for _, name := range layout.DemoNames() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			data, err := layout.Demo(args[0])
			if err != nil {
				return withExitCode(err, exitUsage)
			}
			return runSession(cmd.Context(), opts, "demo "+args[0], data, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List demo names")
	return cmd
}
