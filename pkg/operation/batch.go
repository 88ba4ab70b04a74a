package operation

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/robolog/pkg/output"
	"github.com/walteh/robolog/pkg/parser"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🎛️ BatchOptions configures a multi-file parse operation.
type BatchOptions struct {
	// Globs are doublestar patterns naming the input logs.
	Globs []string
	// OutDir receives one document file per input.
	OutDir string
	// Format is the output document format (json/yaml).
	Format string
	// Jobs caps concurrent parses; 0 means 4.
	Jobs int
	// Force overwrites existing documents.
	Force bool

	Parser     parser.Options
	WarnWriter io.Writer
}

// 📦 BatchOperation parses many logs in parallel. Each parse is an
// independent, pure invocation, so fanning out is safe.
type BatchOperation struct {
	opts BatchOptions
}

// 🏗️ NewBatchOperation creates a batch operation.
func NewBatchOperation(opts BatchOptions) *BatchOperation {
	return &BatchOperation{opts: opts}
}

func (op *BatchOperation) Name() string {
	return fmt.Sprintf("batch %s", strings.Join(op.opts.Globs, " "))
}

// Execute expands the globs and parses every match on a bounded
// worker group.
func (op *BatchOperation) Execute(ctx context.Context) error {
	inputs, err := op.expand()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.Errorf("no files match %s", strings.Join(op.opts.Globs, " "))
	}

	jobs := op.opts.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("files", len(inputs)).Int("jobs", jobs).Msg("starting batch parse")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			doc, err := ParseFile(gctx, input, op.opts.Parser)
			if err != nil {
				return err
			}
			outPath := op.outputPath(input)
			if err := output.Write(gctx, doc, output.Options{
				Path:   outPath,
				Format: op.opts.Format,
				Force:  op.opts.Force,
			}); err != nil {
				return errors.Errorf("writing %s: %w", outPath, err)
			}
			if op.opts.WarnWriter != nil && len(doc.Warnings) > 0 {
				fmt.Fprintf(op.opts.WarnWriter, "%s: %d warnings\n", input, len(doc.Warnings))
			}
			return nil
		})
	}
	return g.Wait()
}

// expand resolves the glob patterns to concrete paths, deduplicated
// and in pattern order.
func (op *BatchOperation) expand() ([]string, error) {
	seen := map[string]bool{}
	var inputs []string
	for _, pattern := range op.opts.Globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	return inputs, nil
}

// outputPath maps an input log to its document path in OutDir.
func (op *BatchOperation) outputPath(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := "json"
	if op.opts.Format == "yaml" {
		ext = "yaml"
	}
	return filepath.Join(op.opts.OutDir, base+"."+ext)
}
