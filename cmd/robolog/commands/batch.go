package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/robolog/cmd/robolog/opts"
	"github.com/walteh/robolog/pkg/encode"
	"github.com/walteh/robolog/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewBatchCmd creates a new batch command
func NewBatchCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		encodingName string
		outDir       string
		format       string
		jobs         int
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "batch <glob>...",
		Short: "Parse many Robocopy logs in parallel",
		Long: `Batch expands the given glob patterns (doublestar syntax, e.g.
'logs/**/*.log'), parses every match, and writes one document per input
into the output directory. Parses are independent and run on a bounded
worker pool.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return opts.Usagef("batch expects at least one glob pattern")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "batch").Logger().WithContext(ctx)

			if format == "" {
				format = ro.Config.Format
			}
			if format != "" && format != "json" && format != "yaml" {
				return opts.Usagef("unsupported format %q (want json or yaml)", format)
			}
			if jobs < 0 {
				return opts.Usagef("jobs must be positive, got %d", jobs)
			}

			if encodingName != "" && !encode.Supported(encodingName) {
				return opts.Usagef("unknown encoding %q", encodingName)
			}

			popts := ro.Config.ParserOptions()
			if encodingName != "" {
				popts.Encoding = encodingName
			}

			op := operation.NewBatchOperation(operation.BatchOptions{
				Globs:      args,
				OutDir:     outDir,
				Format:     format,
				Jobs:       jobs,
				Force:      force,
				Parser:     popts,
				WarnWriter: cmd.ErrOrStderr(),
			})

			if err := operation.NewRunner().Run(ctx, op); err != nil {
				return errors.Errorf("batch parsing: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&encodingName, "encoding", "", "input encoding override (skip detection)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for output documents")
	cmd.Flags().StringVar(&format, "format", "", "output format: json (default) or yaml")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "max concurrent parses (default 4)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing output files")

	return cmd
}
