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

package encode

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// 🎛️ Options controls encoding detection.
type Options struct {
	// Override names an encoding to use directly, skipping detection.
	Override string
	// Candidates is the ordered list of codepages tried when no BOM is
	// present. Empty means DefaultCandidates.
	Candidates []string
	// Threshold is the maximum acceptable fraction of replaced or
	// control-garbage characters for a candidate to win. Zero means
	// DefaultThreshold.
	Threshold float64
}

// 📤 Result is the decoded text plus what it took to get there.
type Result struct {
	Text     string // decoded Unicode text
	Encoding string // name of the encoding actually used
	Replaced int    // characters replaced during decoding
}

const (
	// DefaultThreshold is the replacement fraction above which a
	// candidate codepage is rejected.
	DefaultThreshold = 0.05

	// garbageCeiling is the fraction above which even the best
	// candidate is considered not text at all.
	garbageCeiling = 0.5
)

// DefaultCandidates are tried in order when the input carries no BOM.
// Robocopy logs are most commonly UTF-8 or, with /UNILOG, UTF-16LE;
// legacy captures use the Windows ANSI or OEM console codepages.
var DefaultCandidates = []string{"utf-8", "windows-1252", "cp850", "cp437"}

// Decode turns raw log bytes into Unicode text. BOM first, then a
// BOM-less UTF-16LE probe, then the candidate codepages in order. The
// first candidate under the threshold wins; if none qualifies the
// lowest-replacement candidate is used and Replaced reports the damage.
func Decode(data []byte, opts Options) (*Result, error) {
	if len(data) == 0 {
		return nil, errors.New("input is empty")
	}

	if opts.Override != "" {
		enc, err := lookup(opts.Override)
		if err != nil {
			return nil, err
		}
		text, replaced, err := decodeWith(data, enc)
		if err != nil {
			return nil, errors.Errorf("decoding as %s: %w", opts.Override, err)
		}
		return &Result{Text: text, Encoding: opts.Override, Replaced: replaced}, nil
	}

	if res := decodeBOM(data); res != nil {
		return res, nil
	}

	if looksUTF16LE(data) {
		enc, _ := lookup("utf-16le")
		text, replaced, err := decodeWith(data, enc)
		if err == nil {
			return &Result{Text: text, Encoding: "utf-16le", Replaced: replaced}, nil
		}
	}

	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	var best *Result
	bestScore := 1.0
	for _, name := range candidates {
		enc, err := lookup(name)
		if err != nil {
			return nil, err
		}
		text, replaced, err := decodeWith(data, enc)
		if err != nil {
			continue
		}
		score := garbageFraction(text)
		if score < threshold {
			return &Result{Text: text, Encoding: name, Replaced: replaced}, nil
		}
		if score < bestScore {
			bestScore = score
			best = &Result{Text: text, Encoding: name, Replaced: replaced}
		}
	}

	if best == nil || bestScore >= garbageCeiling {
		return nil, errors.New("input does not decode as text under any candidate encoding")
	}
	if best.Replaced == 0 {
		// Garbage came from control characters, not replacements; still
		// report it so the caller can attach a decode warning.
		best.Replaced = int(bestScore * float64(utf8.RuneCountInString(best.Text)))
	}
	return best, nil
}

// decodeBOM handles inputs with a byte-order mark.
func decodeBOM(data []byte) *Result {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		text, replaced, _ := decodeWith(data[3:], nil)
		return &Result{Text: text, Encoding: "utf-8", Replaced: replaced}
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		enc, _ := lookup("utf-16le")
		text, replaced, err := decodeWith(data[2:], enc)
		if err != nil {
			return nil
		}
		return &Result{Text: text, Encoding: "utf-16le", Replaced: replaced}
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		enc, _ := lookup("utf-16be")
		text, replaced, err := decodeWith(data[2:], enc)
		if err != nil {
			return nil
		}
		return &Result{Text: text, Encoding: "utf-16be", Replaced: replaced}
	}
	return nil
}

// looksUTF16LE probes for BOM-less UTF-16LE: ASCII-range text encoded
// that way has a NUL in every odd byte position.
func looksUTF16LE(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	nuls := 0
	for i := 1; i < len(sample); i += 2 {
		if sample[i] == 0x00 {
			nuls++
		}
	}
	return float64(nuls) >= 0.6*float64(len(sample)/2)
}

// decodeWith decodes data with enc (nil means UTF-8 pass-through with
// replacement of invalid sequences) and counts replaced characters.
func decodeWith(data []byte, enc encoding.Encoding) (string, int, error) {
	var text string
	if enc == nil {
		text = strings.ToValidUTF8(string(data), string(utf8.RuneError))
	} else {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", 0, errors.Errorf("decoder: %w", err)
		}
		text = string(decoded)
	}
	replaced := strings.Count(text, string(utf8.RuneError)) - bytes.Count(data, []byte(string(utf8.RuneError)))
	if replaced < 0 {
		replaced = 0
	}
	return text, replaced, nil
}

// garbageFraction scores decoded text: the fraction of runes that are
// replacement characters or control garbage (anything below 0x20 other
// than tab, newline and carriage return).
func garbageFraction(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, bad := 0, 0
	for _, r := range text {
		total++
		switch {
		case r == utf8.RuneError:
			bad++
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			bad++
		}
	}
	return float64(bad) / float64(total)
}

// Supported reports whether name resolves to a known encoding.
func Supported(name string) bool {
	_, err := lookup(name)
	return err == nil
}

// lookup resolves an encoding name to a decoder. Names are matched
// loosely: case-insensitive, dashes and underscores ignored.
func lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "utf8":
		return nil, nil
	case "utf16le", "utf16", "unicode":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "windows1252", "cp1252", "latin1ansi":
		return charmap.Windows1252, nil
	case "windows1250", "cp1250":
		return charmap.Windows1250, nil
	case "windows1251", "cp1251":
		return charmap.Windows1251, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	case "cp437", "ibm437":
		return charmap.CodePage437, nil
	case "iso88591", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, errors.Errorf("unknown encoding %q", name)
	}
}
