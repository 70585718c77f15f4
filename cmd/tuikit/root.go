package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/tuikit/pkg/config"
	"github.com/odvcencio/tuikit/pkg/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tuikit",
		Short:         "Run clickable widget layouts in the terminal",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(err, exitUsage)
	})
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: ~/.tuikit/config.yaml, ./.tuikit/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	root.AddGroup(
		&cobra.Group{ID: "run", Title: "Running layouts:"},
		&cobra.Group{ID: "tools", Title: "Tools:"},
	)
	root.AddCommand(
		newDemoCmd(opts),
		newRunCmd(opts),
		newValidateCmd(opts),
		newLogsCmd(opts),
	)
	return root
}

// loadConfig loads the config named by --config, or the default hierarchy.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if strings.TrimSpace(o.configPath) != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, withExitCode(err, exitInvalid)
	}

	if o.logLevel != "" {
		level, err := logging.ParseLevel(o.logLevel)
		if err != nil {
			return nil, withExitCode(err, exitUsage)
		}
		cfg.Logging.Level = string(level)
	}
	return cfg, nil
}

// usageArgs makes argument validation failures exit as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withExitCode(validate(cmd, args), exitUsage)
	}
}
