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

package parser

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/robolog/pkg/encode"
	"github.com/walteh/robolog/pkg/model"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ Options tunes a parse. The zero value parses a typical English
// Robocopy log with encoding auto-detection.
type Options struct {
	// Encoding forces a specific input encoding, skipping detection.
	Encoding string
	// EncodingCandidates overrides the detection order.
	EncodingCandidates []string
	// EncodingThreshold overrides the detection acceptance threshold.
	EncodingThreshold float64
	// Keywords adds action tokens on top of the built-in English set,
	// e.g. for logs produced under another console locale.
	Keywords map[string]Keyword
}

// section is the state of the forward-only section machine.
type section int

const (
	sectionStart section = iota
	sectionHeader
	sectionBody
	sectionSummary
	sectionDone
)

// parser accumulates one document over a single pass. It is created
// per Parse call; nothing is shared between invocations.
type parser struct {
	opts     Options
	section  section
	header   model.RunHeader
	entries  []model.Entry
	summary  model.Summary
	warnings []model.Warning

	headerFieldSeen bool
	summaryRowsSeen int
	tokens          []tokenEntry
}

// Parse decodes raw log bytes and parses them into a Document. Only
// an undecodable input is fatal; every structural problem inside the
// log becomes a warning on the returned document.
func Parse(ctx context.Context, data []byte, opts Options) (*model.Document, error) {
	res, err := encode.Decode(data, encode.Options{
		Override:   opts.Encoding,
		Candidates: opts.EncodingCandidates,
		Threshold:  opts.EncodingThreshold,
	})
	if err != nil {
		return nil, errors.Errorf("decoding input: %w", err)
	}

	doc := ParseText(ctx, res.Text, opts)
	if res.Replaced > 0 {
		doc.Warnings = append([]model.Warning{model.DecodeWarning(res.Replaced, res.Encoding)}, doc.Warnings...)
	}
	zerolog.Ctx(ctx).Debug().
		Str("encoding", res.Encoding).
		Int("entries", len(doc.Entries)).
		Int("warnings", len(doc.Warnings)).
		Msg("parsed document")
	return doc, nil
}

// ParseText parses already-decoded text. It never fails: the worst
// input yields an empty document whose warnings say why.
func ParseText(ctx context.Context, text string, opts Options) *model.Document {
	p := &parser{opts: opts, tokens: buildTokens(opts.Keywords)}

	lineNo := 0
	for _, raw := range strings.Split(text, "\n") {
		lineNo++
		p.feed(lineNo, strings.TrimRight(raw, "\r"))
	}
	p.finish()

	return p.assemble()
}

// feed dispatches one line to the sub-parser for the active section.
func (p *parser) feed(lineNo int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	switch p.section {
	case sectionStart:
		p.section = sectionHeader
		p.feedHeader(line)
	case sectionHeader:
		p.feedHeader(line)
	case sectionBody:
		if isSummaryHeading(line) {
			p.section = sectionSummary
			return
		}
		if isSeparator(line) {
			return
		}
		p.feedEntry(lineNo, raw)
	case sectionSummary:
		if isSeparator(line) {
			return
		}
		p.feedSummary(line)
	case sectionDone:
		// Trailing output after the summary block carries no data.
	}
}

// feedHeader handles one header-section line, including the transition
// into the body.
func (p *parser) feedHeader(line string) {
	if isSeparator(line) {
		if p.headerFieldSeen {
			p.section = sectionBody
		}
		return
	}
	if p.parseHeaderLine(line) {
		p.headerFieldSeen = true
	}
}

// finish runs the end-of-input checks that only make sense once the
// whole log has been consumed.
func (p *parser) finish() {
	if p.section == sectionSummary || p.section == sectionDone {
		if p.summary.Dirs == nil || p.summary.Files == nil || p.summary.Bytes == nil {
			p.warnings = append(p.warnings, model.StructuralWarning("summary incomplete"))
		}
	} else {
		p.warnings = append(p.warnings, model.StructuralWarning("no summary section found"))
	}
	p.section = sectionDone
}

// assemble is the final, purely combinational step: it reads the
// accumulated partial results once and produces the document.
func (p *parser) assemble() *model.Document {
	return &model.Document{
		Header:   p.header,
		Entries:  p.entries,
		Summary:  p.summary,
		Warnings: p.warnings,
	}
}

// isSeparator reports whether the line is a section separator: a run
// of nothing but dashes.
func isSeparator(line string) bool {
	if len(line) < 3 {
		return false
	}
	return strings.TrimLeft(line, "-") == ""
}

// isSummaryHeading recognizes the fixed column-heading line that opens
// the summary table.
func isSummaryHeading(line string) bool {
	return strings.Contains(line, "Total") &&
		strings.Contains(line, "Copied") &&
		strings.Contains(line, "Skipped") &&
		strings.Contains(line, "Extras")
}
