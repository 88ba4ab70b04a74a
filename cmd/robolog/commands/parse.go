package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/robolog/cmd/robolog/opts"
	"github.com/walteh/robolog/pkg/encode"
	"github.com/walteh/robolog/pkg/operation"
	"github.com/walteh/robolog/pkg/output"
	"gitlab.com/tozd/go/errors"
)

// NewParseCmd creates a new parse command
func NewParseCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		encodingName string
		outputPath   string
		format       string
		report       bool
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "parse <input-path>",
		Short: "Parse one Robocopy log into a structured document",
		Long: `Parse reads a Robocopy run log, detects its encoding, and converts it
into a structured document with a run header, per-item transfer records
and the summary statistics table. Malformed lines never abort the run;
they are collected as warnings on the document and printed to stderr.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return opts.Usagef("parse expects exactly one input path, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "parse").Logger().WithContext(ctx)

			if format == "" {
				format = ro.Config.Format
			}
			if format != "" && format != "json" && format != "yaml" {
				return opts.Usagef("unsupported format %q (want json or yaml)", format)
			}

			if encodingName != "" && !encode.Supported(encodingName) {
				return opts.Usagef("unknown encoding %q", encodingName)
			}

			popts := ro.Config.ParserOptions()
			if encodingName != "" {
				popts.Encoding = encodingName
			}

			op := operation.NewParseOperation(operation.ParseOptions{
				InputPath: args[0],
				Parser:    popts,
				Output: output.Options{
					Path:   outputPath,
					Format: format,
					Force:  force,
				},
				Report:     report,
				WarnWriter: cmd.ErrOrStderr(),
			})

			if err := operation.NewRunner().Run(ctx, op); err != nil {
				return errors.Errorf("parsing log: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&encodingName, "encoding", "", "input encoding override (skip detection)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output path, - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: json (default) or yaml")
	cmd.Flags().BoolVar(&report, "report", false, "print a console summary report to stderr")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file")

	return cmd
}
