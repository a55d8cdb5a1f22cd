package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/studentops/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = config.DefaultVersion

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studentops",
		Short:         "Student management front-end",
		Long:          "studentops serves a JSON front-end for the student API and reports the health of both.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is ./studentops.yaml or ./config/studentops.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging and gin debug mode")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newHealthcheckCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// load reads the configuration and applies persistent flags.
func (o *rootOptions) load(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.configPath)
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.App.Debug = true
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "studentops version %s\n", version)
		},
	}
}
