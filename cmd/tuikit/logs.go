package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/tuikit/pkg/logging"
)

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var (
		count   int
		session string
		errOnly bool
	)

	cmd := &cobra.Command{
		Use:     "logs",
		Short:   "Show recent events from the latest session log",
		GroupID: "tools",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			path := session
			switch {
			case errOnly:
				path = filepath.Join(cfg.LogDir(), "errors.jsonl")
			case path == "":
				path, err = logging.LatestSession(cfg.LogDir())
				if err != nil {
					return err
				}
			}

			events, err := logging.ReadRecentEvents(path, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ev := range events {
				fmt.Fprintln(out, formatEvent(ev))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of events to show")
	cmd.Flags().StringVar(&session, "session", "", "Session log file to read instead of the latest")
	cmd.Flags().BoolVar(&errOnly, "errors", false, "Read the shared error log")
	return cmd
}

func formatEvent(ev logging.Event) string {
	var sb strings.Builder
	sb.WriteString(ev.Timestamp.Format(time.TimeOnly))
	sb.WriteString(fmt.Sprintf(" %-5s %-8s %s", ev.Level, ev.Category, ev.EventType))
	if ev.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(ev.Message)
	}
	if len(ev.Details) > 0 {
		sb.WriteString(fmt.Sprintf(" %v", ev.Details))
	}
	return sb.String()
}
