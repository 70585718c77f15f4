package main

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/odvcencio/tuikit/pkg/errors"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run <layout.yaml>",
		Short:   "Run a layout document",
		GroupID: "run",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return withExitCode(apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading layout").
					WithContext("path", args[0]), exitUsage)
			}
			return runSession(cmd.Context(), opts, args[0], data, cmd.ErrOrStderr())
		},
	}
}
