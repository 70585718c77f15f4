package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/tuikit/pkg/ui/layout"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/widget"
)

func newValidateCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "validate <layout.yaml>...",
		Short:   "Check layout documents without running them",
		GroupID: "tools",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if !validateFile(out, path) {
					failed++
				}
			}
			if failed > 0 {
				return withExitCode(fmt.Errorf("%d of %d layouts invalid", failed, len(args)), exitInvalid)
			}
			return nil
		},
	}
}

// validateFile prints a report for one document and reports whether it can run.
func validateFile(out io.Writer, path string) bool {
	root, err := layout.NewBuilder(nil).Load(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}

	problems := runtime.NewTree(root).Problems()
	for _, p := range problems {
		fmt.Fprintf(out, "%s: %s\n", path, p)
	}

	if runtime.Fatal(problems) != nil {
		return false
	}
	cols, rows := widget.MinSize(root)
	fmt.Fprintf(out, "%s: ok (%d widgets, needs %dx%d)\n", path, countWidgets(root), cols, rows)
	return true
}

func countWidgets(c *widget.Container) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		n++
		if child, ok := c.At(i).(*widget.Container); ok {
			n += countWidgets(child)
		}
	}
	return n
}
