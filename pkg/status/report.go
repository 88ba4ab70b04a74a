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

package status

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/robolog/pkg/model"
)

// 🎨 Display configuration
const (
	labelWidth  = 8  // width of the row label column
	columnWidth = 12 // width of each counter column
)

// 📢 Reporter renders a human-readable account of a parsed run.
// Messages are mirrored into zerolog for debugging.
type Reporter struct {
	log zerolog.Logger
	out io.Writer
}

// 🏭 NewReporter creates a reporter writing to out.
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📝 Report prints the run header, summary counters and warnings.
func (r *Reporter) Report(doc *model.Document) {
	r.header(doc)
	r.counters(doc)
	r.warnings(doc)

	r.log.Info().
		Int("entries", len(doc.Entries)).
		Int("warnings", len(doc.Warnings)).
		Msg("report rendered")
}

// header prints the source → destination line.
func (r *Reporter) header(doc *model.Document) {
	title := color.New(color.Bold, color.FgCyan).Sprint("robolog")
	route := fmt.Sprintf("%s → %s",
		color.New(color.FgGreen).Sprint(orDash(doc.Header.Source)),
		color.New(color.FgYellow).Sprint(orDash(doc.Header.Destination)))
	fmt.Fprintf(r.out, "\n%s %s\n", title, route)

	if doc.Header.StartedAt != nil {
		fmt.Fprintf(r.out, "  started %s\n", doc.Header.StartedAt.Format("2006-01-02 15:04:05"))
	}
	if doc.Summary.EndedAt != nil {
		fmt.Fprintf(r.out, "  ended   %s\n", doc.Summary.EndedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(r.out)
}

// counters prints the summary rows plus per-action entry counts.
func (r *Reporter) counters(doc *model.Document) {
	fmt.Fprintf(r.out, "  %-*s %*s %*s %*s %*s %*s %*s\n", labelWidth, "",
		columnWidth, "total", columnWidth, "copied", columnWidth, "skipped",
		columnWidth, "mismatch", columnWidth, "failed", columnWidth, "extras")
	r.statRow("dirs", doc.Summary.Dirs, plain)
	r.statRow("files", doc.Summary.Files, plain)
	r.statRow("bytes", doc.Summary.Bytes, bytesCol)
	r.statRow("times", doc.Summary.Times, seconds)

	if doc.Summary.SpeedBytesPerSec != nil {
		fmt.Fprintf(r.out, "\n  speed   %s/sec", humanize.IBytes(uint64(*doc.Summary.SpeedBytesPerSec)))
		if doc.Summary.SpeedMBPerMin != nil {
			fmt.Fprintf(r.out, " (%.3f MB/min)", *doc.Summary.SpeedMBPerMin)
		}
		fmt.Fprintln(r.out)
	}

	failed := 0
	for _, e := range doc.Entries {
		if e.Action == model.ActionFailed {
			failed++
		}
	}
	fmt.Fprintf(r.out, "\n  %d entries", len(doc.Entries))
	if failed > 0 {
		fmt.Fprintf(r.out, ", %s", color.New(color.FgRed).Sprintf("%d failed", failed))
	}
	fmt.Fprintln(r.out)
}

// statRow prints one summary row, dimmed when the row is absent.
func (r *Reporter) statRow(label string, stat *model.Stat, col func(int64) string) {
	if stat == nil {
		fmt.Fprintf(r.out, "  %-*s %s\n", labelWidth, label, color.New(color.Faint).Sprint("(not present)"))
		return
	}
	fmt.Fprintf(r.out, "  %-*s %*s %*s %*s %*s %*s %*s\n", labelWidth, label,
		columnWidth, col(stat.Total), columnWidth, col(stat.Copied),
		columnWidth, col(stat.Skipped), columnWidth, col(stat.Mismatch),
		columnWidth, col(stat.Failed), columnWidth, col(stat.Extras))
}

// warnings prints the accumulated warnings with pterm printers.
func (r *Reporter) warnings(doc *model.Document) {
	if len(doc.Warnings) == 0 {
		pterm.Success.WithWriter(r.out).Println("parsed cleanly")
		return
	}
	printer := pterm.Warning.WithWriter(r.out)
	for _, w := range doc.Warnings {
		printer.Println(w.String())
		r.log.Warn().Str("kind", string(w.Kind)).Msg(w.Detail)
	}
}

func plain(v int64) string { return fmt.Sprintf("%d", v) }

func bytesCol(v int64) string {
	if v < 0 {
		return fmt.Sprintf("%d", v)
	}
	return humanize.IBytes(uint64(v))
}

func seconds(v int64) string { return fmt.Sprintf("%ds", v) }

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
