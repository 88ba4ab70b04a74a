package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utf16le encodes an ASCII string as UTF-16LE, optionally with a BOM.
func utf16le(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestDecode_BOM(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantText     string
		wantEncoding string
	}{
		{
			name:         "utf8_bom",
			data:         append([]byte{0xEF, 0xBB, 0xBF}, []byte("Source : C:\\A")...),
			wantText:     "Source : C:\\A",
			wantEncoding: "utf-8",
		},
		{
			name:         "utf16le_bom",
			data:         utf16le("Started : test", true),
			wantText:     "Started : test",
			wantEncoding: "utf-16le",
		},
		{
			name:         "utf16be_bom",
			data:         []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'},
			wantText:     "Hi",
			wantEncoding: "utf-16be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(tt.data, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantEncoding, res.Encoding)
			assert.Zero(t, res.Replaced)
		})
	}
}

func TestDecode_BOMlessUTF16(t *testing.T) {
	// Robocopy /UNILOG output is UTF-16LE; some capture paths strip the
	// BOM. The NUL-density probe should still catch it.
	data := utf16le("ROBOCOPY :: Robust File Copy for Windows\r\n", false)
	res, err := Decode(data, Options{})
	require.NoError(t, err)
	assert.Equal(t, "utf-16le", res.Encoding)
	assert.Contains(t, res.Text, "ROBOCOPY")
}

func TestDecode_PlainUTF8(t *testing.T) {
	res, err := Decode([]byte("Source : C:\\A\nDest : D:\\B\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "utf-8", res.Encoding)
	assert.Zero(t, res.Replaced)
}

func TestDecode_LegacyCodepage(t *testing.T) {
	// "Café" and "Entrée" in windows-1252: é is 0xE9, invalid as UTF-8,
	// so detection falls through to the next candidate.
	data := []byte("Source : C:\\Caf\xe9\\Entr\xe9e\n")
	res, err := Decode(data, Options{})
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", res.Encoding)
	assert.Equal(t, "Source : C:\\Café\\Entrée\n", res.Text)
	assert.Zero(t, res.Replaced)
}

func TestDecode_Override(t *testing.T) {
	// 0x82 is é in CP850 but a control character in windows-1252; the
	// override must win over detection order.
	data := []byte("Caf\x82")
	res, err := Decode(data, Options{Override: "cp850"})
	require.NoError(t, err)
	assert.Equal(t, "cp850", res.Encoding)
	assert.Equal(t, "Café", res.Text)
}

func TestDecode_CandidateOrder(t *testing.T) {
	data := []byte("Caf\x82")
	res, err := Decode(data, Options{Candidates: []string{"cp850"}})
	require.NoError(t, err)
	assert.Equal(t, "cp850", res.Encoding)
	assert.Equal(t, "Café", res.Text)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		opts Options
	}{
		{name: "empty_input", data: nil, opts: Options{}},
		{name: "unknown_override", data: []byte("x"), opts: Options{Override: "klingon-8"}},
		{name: "unknown_candidate", data: []byte("x"), opts: Options{Candidates: []string{"klingon-8"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.opts)
			require.Error(t, err)
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("utf-8"))
	assert.True(t, Supported("UTF-16LE"))
	assert.True(t, Supported("Windows-1252"))
	assert.True(t, Supported("cp850"))
	assert.False(t, Supported("klingon-8"))
}

func TestGarbageFraction(t *testing.T) {
	assert.Equal(t, 1.0, garbageFraction(""))
	assert.Zero(t, garbageFraction("clean text\r\n\twith whitespace"))
	assert.InDelta(t, 0.5, garbageFraction("a\x01b\x02"), 0.001)
}
