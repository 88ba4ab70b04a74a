package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/robolog/cmd/robolog/commands"
	"github.com/walteh/robolog/cmd/robolog/opts"
	"github.com/walteh/robolog/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// defaultConfigNames are probed when --config is not given.
var defaultConfigNames = []string{".robolog.hcl", ".robolog.yaml", ".robolog"}

// newRootCmd builds the CLI tree.
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "robolog",
		Short:         "Convert Robocopy run logs into structured documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			ro.Config = cfg
			return nil
		},
	}
	addRootFlags(cmd)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return opts.UsageError{Err: err}
	})

	cmd.AddCommand(commands.NewParseCmd(ro))
	cmd.AddCommand(commands.NewBatchCmd(ro))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.robolog.hcl, .yaml or .json)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and ROBOLOG_LOG.
// Verbosity affects diagnostics only; parse results never depend on it.
func setupLogging() {
	level := zerolog.InfoLevel
	if env := os.Getenv("ROBOLOG_LOG"); env != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// loadConfig loads the tuning config. An explicit --config that cannot
// be loaded is an error; absent defaults just mean zero config.
func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	for _, name := range defaultConfigNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := config.Load(ctx, name)
			if err != nil {
				return nil, errors.Errorf("loading config: %w", err)
			}
			return cfg, nil
		}
	}
	return &config.Config{}, nil
}
