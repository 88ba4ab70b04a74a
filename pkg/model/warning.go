package model

import "fmt"

// ⚠️ WarningKind tags the non-fatal conditions collected during a parse.
type WarningKind string

const (
	WarnDecode     WarningKind = "decode"
	WarnUnparsed   WarningKind = "unparsed_line"
	WarnMissing    WarningKind = "missing_field"
	WarnStructural WarningKind = "structural"
)

// ⚠️ Warning is one non-fatal condition attached to the document.
// Warnings never abort a parse; a partial document plus warnings is
// always preferred to a hard failure.
type Warning struct {
	Kind   WarningKind `json:"kind" yaml:"kind"`
	Line   int         `json:"line,omitempty" yaml:"line,omitempty"`
	Field  string      `json:"field,omitempty" yaml:"field,omitempty"`
	Detail string      `json:"detail" yaml:"detail"`
}

// DecodeWarning reports replacement characters produced while decoding.
func DecodeWarning(replaced int, encoding string) Warning {
	return Warning{
		Kind:   WarnDecode,
		Detail: fmt.Sprintf("%d characters replaced while decoding as %s", replaced, encoding),
	}
}

// UnparsedLine reports a body line no sub-parser could classify.
func UnparsedLine(line int, raw string) Warning {
	return Warning{Kind: WarnUnparsed, Line: line, Detail: raw}
}

// MissingField reports a header or summary field that failed to parse.
func MissingField(name, detail string) Warning {
	return Warning{Kind: WarnMissing, Field: name, Detail: detail}
}

// StructuralWarning reports an expected section or row that is absent
// or malformed.
func StructuralWarning(detail string) Warning {
	return Warning{Kind: WarnStructural, Detail: detail}
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", w.Kind, w.Line, w.Detail)
	}
	if w.Field != "" {
		return fmt.Sprintf("%s (%s): %s", w.Kind, w.Field, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
