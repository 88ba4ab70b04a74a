package operation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/robolog/pkg/model"
	"github.com/walteh/robolog/pkg/output"
	"github.com/walteh/robolog/pkg/parser"
	"github.com/walteh/robolog/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ ParseOptions configures a single-file parse operation.
type ParseOptions struct {
	InputPath string
	Parser    parser.Options
	Output    output.Options

	// Report renders the console summary after parsing.
	Report bool
	// WarnWriter receives one line per document warning. Nil silences
	// them (the document still carries the full list).
	WarnWriter io.Writer
}

// 📄 ParseOperation parses one Robocopy log into one document.
type ParseOperation struct {
	opts ParseOptions
}

// 🏗️ NewParseOperation creates a parse operation.
func NewParseOperation(opts ParseOptions) *ParseOperation {
	return &ParseOperation{opts: opts}
}

func (op *ParseOperation) Name() string {
	return fmt.Sprintf("parse %s", op.opts.InputPath)
}

// Execute reads, parses and writes one log. Only unreadable or
// undecodable input fails; everything else surfaces as warnings.
func (op *ParseOperation) Execute(ctx context.Context) error {
	doc, err := ParseFile(ctx, op.opts.InputPath, op.opts.Parser)
	if err != nil {
		return err
	}

	if err := output.Write(ctx, doc, op.opts.Output); err != nil {
		return errors.Errorf("writing document: %w", err)
	}

	if op.opts.WarnWriter != nil {
		for _, w := range doc.Warnings {
			fmt.Fprintf(op.opts.WarnWriter, "warning: %s\n", w.String())
		}
	}
	if op.opts.Report {
		status.NewReporter(ctx, os.Stderr).Report(doc)
	}
	return nil
}

// ParseFile reads one file and parses it. I/O stays at this boundary;
// the parser itself only ever sees bytes.
func ParseFile(ctx context.Context, path string, opts parser.Options) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading input file: %w", err)
	}

	doc, err := parser.Parse(ctx, data, opts)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("input", path).
		Int("entries", len(doc.Entries)).
		Msg("parsed file")
	return doc, nil
}
