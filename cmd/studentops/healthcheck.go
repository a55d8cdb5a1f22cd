package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errUnhealthy makes the process exit 1 without printing an error.
var errUnhealthy = errors.New("studentops: unhealthy")

func newHealthcheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the student API once and print the health report",
		Long: "healthcheck runs the same checks as GET /health, prints the JSON report " +
			"and exits 1 when any service is unhealthy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.load(ctx)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			report := a.health.Report(ctx, cfg.App.Version)
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !report.Healthy() {
				return errUnhealthy
			}
			return nil
		},
	}
}
