package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/walteh/robolog/pkg/model"
)

// 🏷️ Keyword classifies one leading action token. Additional tables
// can be supplied through Options.Keywords, e.g. for non-English
// console locales, instead of patching the built-in set.
type Keyword struct {
	Kind   model.EntryKind `json:"kind" yaml:"kind"`
	Action model.Action    `json:"action" yaml:"action"`
}

// defaultKeywords is the English token set Robocopy emits.
var defaultKeywords = map[string]Keyword{
	"new dir":     {model.KindDir, model.ActionNew},
	"new file":    {model.KindFile, model.ActionNew},
	"same":        {model.KindFile, model.ActionSame},
	"changed":     {model.KindFile, model.ActionChanged},
	"tweaked":     {model.KindFile, model.ActionTweaked},
	"tweak":       {model.KindFile, model.ActionTweaked},
	"older":       {model.KindFile, model.ActionOlder},
	"newer":       {model.KindFile, model.ActionNewer},
	"extra dir":   {model.KindDir, model.ActionExtra},
	"*extra dir":  {model.KindDir, model.ActionExtra},
	"extra file":  {model.KindFile, model.ActionExtra},
	"*extra file": {model.KindFile, model.ActionExtra},
	"*mismatch*":  {model.KindFile, model.ActionMismatch},
	"mismatch":    {model.KindFile, model.ActionMismatch},
	"failed":      {model.KindFile, model.ActionFailed},
	"lonely":      {model.KindFile, model.ActionLonely},
}

// tokenEntry is one resolved token, kept sorted longest-first so that
// "New File" wins over a hypothetical "New".
type tokenEntry struct {
	token string
	kw    Keyword
}

// buildTokens merges extra keyword tables over the default set.
func buildTokens(extra map[string]Keyword) []tokenEntry {
	merged := make(map[string]Keyword, len(defaultKeywords)+len(extra))
	for t, kw := range defaultKeywords {
		merged[strings.ToLower(t)] = kw
	}
	for t, kw := range extra {
		merged[strings.ToLower(t)] = kw
	}
	tokens := make([]tokenEntry, 0, len(merged))
	for t, kw := range merged {
		tokens = append(tokens, tokenEntry{token: t, kw: kw})
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i].token) != len(tokens[j].token) {
			return len(tokens[i].token) > len(tokens[j].token)
		}
		return tokens[i].token < tokens[j].token
	})
	return tokens
}

var (
	progressRe = regexp.MustCompile(`^\d{1,3}(\.\d+)?%$`)
	sizedRe    = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?(?:\s?[kmgt]\b)?)\s+(.+)$`)
	countedRe  = regexp.MustCompile(`^(-?\d+)\s+(.+)$`)
	errorRe    = regexp.MustCompile(`^(.*?)\s*ERROR\s+(\d+)\s*(?:\(0x[0-9A-Fa-f]+\))?\s*(.*)$`)
)

// feedEntry classifies one body line. Unclassifiable lines become
// UnparsedLine warnings; nothing in the body ever aborts the parse.
// Real captures interleave progress percentages and retry noise with
// the transfer records, so tolerance is the rule here.
func (p *parser) feedEntry(lineNo int, raw string) {
	line := strings.TrimSpace(raw)

	// Transient progress output ("100%", "12.3%").
	if progressRe.MatchString(line) {
		p.warnings = append(p.warnings, model.UnparsedLine(lineNo, line))
		return
	}

	if tok, rest, ok := p.matchToken(line); ok {
		p.entries = append(p.entries, p.buildEntry(tok, rest))
		return
	}

	// No action token, but shaped like a record: `<number> <path>`.
	// Plain directory enumeration lines look like this.
	if m := countedRe.FindStringSubmatch(line); m != nil {
		p.entries = append(p.entries, unknownEntry(m[1], m[2]))
		return
	}

	p.warnings = append(p.warnings, model.UnparsedLine(lineNo, line))
}

// matchToken finds the longest known action token prefixing the line.
// The token must be followed by whitespace or end the line.
func (p *parser) matchToken(line string) (Keyword, string, bool) {
	lower := strings.ToLower(line)
	for _, te := range p.tokens {
		if !strings.HasPrefix(lower, te.token) {
			continue
		}
		rest := line[len(te.token):]
		if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
			continue
		}
		return te.kw, strings.TrimSpace(rest), true
	}
	return Keyword{}, "", false
}

// buildEntry extracts size, path and (for failures) the embedded
// ERROR fragment from the text after the action token.
func (p *parser) buildEntry(kw Keyword, rest string) model.Entry {
	entry := model.Entry{Kind: kw.Kind, Action: kw.Action}

	if kw.Action == model.ActionFailed {
		if m := errorRe.FindStringSubmatch(rest); m != nil {
			code, err := strconv.Atoi(m[2])
			if err == nil {
				entry.ErrorCode = &code
				entry.ErrorMessage = strings.TrimSpace(m[3])
				rest = strings.TrimSpace(m[1])
			}
		} else {
			p.warnings = append(p.warnings, model.StructuralWarning("failed entry without ERROR fragment: "+rest))
		}
	}

	switch kw.Kind {
	case model.KindFile:
		if m := sizedRe.FindStringSubmatch(rest); m != nil {
			if size, err := scaledValue(m[1]); err == nil && size >= 0 {
				entry.SizeBytes = &size
				rest = m[2]
			}
		}
	case model.KindDir:
		// Directory records carry an item count, not a size; strip it.
		if m := countedRe.FindStringSubmatch(rest); m != nil {
			rest = m[2]
		}
	}

	entry.Path = strings.TrimSpace(rest)
	return entry
}

// unknownEntry wraps a plausibly-structured line whose action token is
// not in any table.
func unknownEntry(num, path string) model.Entry {
	entry := model.Entry{Kind: model.KindFile, Action: model.ActionUnknown, Path: strings.TrimSpace(path)}
	if strings.HasSuffix(entry.Path, `\`) || strings.HasSuffix(entry.Path, "/") {
		entry.Kind = model.KindDir
		return entry
	}
	if size, err := strconv.ParseInt(num, 10, 64); err == nil && size >= 0 {
		entry.SizeBytes = &size
	}
	return entry
}
