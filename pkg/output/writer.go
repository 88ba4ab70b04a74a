// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/robolog/pkg/model"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎛️ Options controls where and how a document is written.
type Options struct {
	// Path is the output file; "-" or empty writes to stdout.
	Path string
	// Format is "json" (default) or "yaml".
	Format string
	// Force overwrites an existing output file. Without it the write
	// refuses to clobber.
	Force bool
}

// Write serializes a parsed document.
func Write(ctx context.Context, doc *model.Document, opts Options) error {
	if opts.Path == "" || opts.Path == "-" {
		return encode(os.Stdout, doc, opts.Format)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if opts.Force {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(opts.Path, flags, 0o644)
	if err != nil {
		return errors.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	if err := encode(f, doc, opts.Format); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("path", opts.Path).Str("format", opts.Format).Msg("wrote document")
	return nil
}

// encode writes the document in the requested format.
func encode(w io.Writer, doc *model.Document, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return errors.Errorf("encoding JSON: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(doc); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
	default:
		return errors.Errorf("unsupported output format %q", format)
	}
	return nil
}
