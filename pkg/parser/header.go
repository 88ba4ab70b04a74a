package parser

import (
	"strings"
	"time"

	"github.com/walteh/robolog/pkg/model"
)

// startedLayouts are tried in order against timestamp-shaped header
// values. The first is what Robocopy itself prints under an English
// locale ("Thursday, August 14, 2014 3:34:59 PM").
var startedLayouts = []string{
	"Monday, January 2, 2006 3:04:05 PM",
	"Mon Jan 2 15:04:05 2006",
	"2006/01/02 15:04:05",
}

// parseHeaderLine attempts to read one `label : value` line from the
// header section. It reports whether a recognized field was populated;
// banner and decoration lines are ignored without a warning.
func (p *parser) parseHeaderLine(line string) bool {
	// The ROBOCOPY title banner uses `::` and is not a field.
	if strings.Contains(line, "::") {
		return false
	}

	label, value, ok := splitLabel(line)
	if !ok || label == "" {
		return false
	}

	switch strings.ToLower(label) {
	case "started":
		if ts, err := parseTimestamp(value); err == nil {
			p.header.StartedAt = &ts
		} else {
			p.warnings = append(p.warnings, model.MissingField("started_at", "unparseable timestamp: "+value))
		}
	case "source":
		p.header.Source = value
	case "dest":
		p.header.Destination = value
	case "files":
		p.header.FileFilter = value
	case "options":
		p.header.Options = value
	case "log file", "log":
		p.header.LogPath = value
	default:
		if p.header.Extra == nil {
			p.header.Extra = map[string]string{}
		}
		p.header.Extra[label] = value
		return false
	}
	return true
}

// splitLabel splits a `label : value` line on the first colon, with
// both sides trimmed. Values may themselves contain colons (drive
// letters, times); only the first one delimits.
func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// parseTimestamp parses a header/summary timestamp, tolerating the
// space-padded day numbers Robocopy emits.
func parseTimestamp(value string) (time.Time, error) {
	value = strings.Join(strings.Fields(value), " ")
	var lastErr error
	for _, layout := range startedLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
