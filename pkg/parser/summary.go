package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/walteh/robolog/pkg/model"
)

// feedSummary consumes one line of the fixed-shape summary block:
// the Dirs/Files/Bytes/Times rows, then the Speed and Ended lines.
func (p *parser) feedSummary(line string) {
	label, value, ok := splitLabel(line)
	if !ok {
		p.warnings = append(p.warnings, model.StructuralWarning("unexpected summary line: "+line))
		return
	}

	switch strings.ToLower(label) {
	case "dirs":
		p.summary.Dirs = p.statRow("dirs", value, strconv.ParseInt)
	case "files":
		p.summary.Files = p.statRow("files", value, strconv.ParseInt)
	case "bytes":
		p.summary.Bytes = p.statRow("bytes", value, parseScaledColumn)
	case "times":
		p.summary.Times = p.timesRow(value)
	case "speed":
		p.parseSpeed(value)
	case "ended":
		if ts, err := parseTimestamp(value); err == nil {
			p.summary.EndedAt = &ts
			p.section = sectionDone
		} else {
			p.warnings = append(p.warnings, model.MissingField("ended_at", "unparseable timestamp: "+value))
		}
	default:
		p.warnings = append(p.warnings, model.StructuralWarning("unexpected summary row label: "+label))
	}
}

// statRow parses the six counter columns of a Dirs/Files/Bytes row.
// conv converts one column; Bytes columns may carry a scale suffix.
func (p *parser) statRow(name, value string, conv func(string, int, int) (int64, error)) *model.Stat {
	fields := mergeScaled(strings.Fields(value))
	if len(fields) != 6 {
		p.warnings = append(p.warnings, model.StructuralWarning(name+" row: expected 6 columns, got "+strconv.Itoa(len(fields))))
		return nil
	}
	vals := make([]int64, 6)
	for i, f := range fields {
		v, err := conv(f, 10, 64)
		if err != nil {
			p.warnings = append(p.warnings, model.StructuralWarning(name+" row: bad value "+f))
			return nil
		}
		vals[i] = v
	}
	return &model.Stat{Total: vals[0], Copied: vals[1], Skipped: vals[2], Mismatch: vals[3], Failed: vals[4], Extras: vals[5]}
}

// timesRow parses the Times row into canonical seconds. Robocopy
// leaves the Skipped and Mismatch columns blank in this row, so four
// values are as well-formed as six.
func (p *parser) timesRow(value string) *model.Stat {
	fields := strings.Fields(value)
	secs := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := parseDuration(f)
		if err != nil {
			p.warnings = append(p.warnings, model.StructuralWarning("times row: bad duration "+f))
			return nil
		}
		secs = append(secs, v)
	}
	switch len(secs) {
	case 6:
		return &model.Stat{Total: secs[0], Copied: secs[1], Skipped: secs[2], Mismatch: secs[3], Failed: secs[4], Extras: secs[5]}
	case 4:
		return &model.Stat{Total: secs[0], Copied: secs[1], Failed: secs[2], Extras: secs[3]}
	default:
		p.warnings = append(p.warnings, model.StructuralWarning("times row: expected 4 or 6 columns, got "+strconv.Itoa(len(secs))))
		return nil
	}
}

// parseSpeed handles the two Speed lines after the stat rows, keyed by
// their unit suffix.
func (p *parser) parseSpeed(value string) {
	num, unit, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok {
		p.warnings = append(p.warnings, model.StructuralWarning("unrecognized speed value: "+value))
		return
	}
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".") {
	case "bytes/sec":
		v, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			p.warnings = append(p.warnings, model.StructuralWarning("bad bytes/sec speed: "+num))
			return
		}
		p.summary.SpeedBytesPerSec = &v
	case "megabytes/min":
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			p.warnings = append(p.warnings, model.StructuralWarning("bad megabytes/min speed: "+num))
			return
		}
		p.summary.SpeedMBPerMin = &v
	default:
		p.warnings = append(p.warnings, model.StructuralWarning("unexpected speed unit: "+unit))
	}
}

// mergeScaled re-joins a bare scale suffix with the number before it,
// so that `1.5 m` survives whitespace tokenization as one column.
func mergeScaled(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) == 1 && strings.ContainsAny(f, "kmgtKMGT") && len(out) > 0 {
			out[len(out)-1] += " " + f
			continue
		}
		out = append(out, f)
	}
	return out
}

var scaledRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(?:\s*([kmgtKMGT]))?$`)

// scaleFactors are base-1024 multipliers, matching Robocopy's own
// byte formatting.
var scaleFactors = map[string]int64{
	"k": 1 << 10,
	"m": 1 << 20,
	"g": 1 << 30,
	"t": 1 << 40,
}

// scaledValue converts a possibly-suffixed figure (`50`, `1.5 m`) to a
// canonical integer byte count.
func scaledValue(s string) (int64, error) {
	m := scaledRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, strconv.ErrSyntax
	}
	if m[2] == "" {
		return strconv.ParseInt(m[1], 10, 64)
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f * float64(scaleFactors[strings.ToLower(m[2])]))), nil
}

// parseScaledColumn adapts scaledValue to the statRow converter shape.
func parseScaledColumn(s string, _, _ int) (int64, error) {
	return scaledValue(s)
}

var durationRe = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)

// parseDuration converts an `H:MM:SS` figure to canonical seconds.
func parseDuration(s string) (int64, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, strconv.ErrSyntax
	}
	h, _ := strconv.ParseInt(m[1], 10, 64)
	mi, _ := strconv.ParseInt(m[2], 10, 64)
	se, _ := strconv.ParseInt(m[3], 10, 64)
	return h*3600 + mi*60 + se, nil
}
