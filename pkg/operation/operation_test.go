package operation

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/robolog/pkg/model"
	"github.com/walteh/robolog/pkg/output"
	"github.com/walteh/robolog/pkg/parser"
)

const sampleLog = `  Started : Thursday, August 14, 2014 3:34:59 PM
   Source : C:\A
     Dest : D:\B
    Files : *.*
  Options : /S /E
------------------------------------------------------------------------------
	    New File  		      50	x.txt
	     Same     		      50	y.txt
------------------------------------------------------------------------------
               Total    Copied   Skipped  Mismatch    FAILED    Extras
    Dirs :         1         1         0         0         0         0
   Files :         2         1         1         0         0         0
   Bytes :       100        50        50         0         0         0
   Ended : Thursday, August 14, 2014 3:35:00 PM
`

// writeLog drops a sample log into dir under the given name.
func writeLog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeLog(t, t.TempDir(), "run.log")

	doc, err := ParseFile(context.Background(), path, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, `C:\A`, doc.Header.Source)
	assert.Len(t, doc.Entries, 2)
}

func TestParseFile_MissingInput(t *testing.T) {
	_, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.log"), parser.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input file")
}

func TestParseOperation_Execute(t *testing.T) {
	dir := t.TempDir()
	input := writeLog(t, dir, "run.log")
	outPath := filepath.Join(dir, "run.json")

	var warnings bytes.Buffer
	op := NewParseOperation(ParseOptions{
		InputPath:  input,
		Output:     output.Options{Path: outPath, Format: "json"},
		WarnWriter: &warnings,
	})
	require.NoError(t, NewRunner().Run(context.Background(), op))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc model.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, `D:\B`, doc.Header.Destination)
	assert.Empty(t, warnings.String())
}

func TestParseOperation_WarningsGoToWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noisy.log")
	noisy := strings.Replace(sampleLog, "y.txt\n", "y.txt\nsome retry noise without structure\n", 1)
	require.NoError(t, os.WriteFile(path, []byte(noisy), 0o644))

	var warnings bytes.Buffer
	op := NewParseOperation(ParseOptions{
		InputPath:  path,
		Output:     output.Options{Path: filepath.Join(dir, "noisy.json")},
		WarnWriter: &warnings,
	})
	require.NoError(t, NewRunner().Run(context.Background(), op))
	assert.Contains(t, warnings.String(), "warning:")
}

func TestBatchOperation_Execute(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	for _, name := range []string{"a.log", "b.log", "c.log"} {
		writeLog(t, dir, name)
	}

	op := NewBatchOperation(BatchOptions{
		Globs:  []string{filepath.Join(dir, "*.log")},
		OutDir: outDir,
		Format: "json",
		Jobs:   2,
	})
	require.NoError(t, NewRunner().Run(context.Background(), op))

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		var doc model.Document
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Len(t, doc.Entries, 2)
	}
}

func TestBatchOperation_NoMatches(t *testing.T) {
	op := NewBatchOperation(BatchOptions{
		Globs:  []string{filepath.Join(t.TempDir(), "*.log")},
		OutDir: t.TempDir(),
	})
	err := NewRunner().Run(context.Background(), op)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := NewParseOperation(ParseOptions{InputPath: "irrelevant"})
	err := NewRunner().Run(ctx, op)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}
