package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/robolog/pkg/model"
	"gopkg.in/yaml.v3"
)

func sampleDoc() *model.Document {
	size := int64(50)
	return &model.Document{
		Header: model.RunHeader{
			Source:      `C:\A`,
			Destination: `D:\B`,
		},
		Entries: []model.Entry{
			{Kind: model.KindFile, Action: model.ActionNew, Path: "x.txt", SizeBytes: &size},
		},
		Summary: model.Summary{
			Files: &model.Stat{Total: 1, Copied: 1},
		},
		Warnings: []model.Warning{
			model.UnparsedLine(7, "noise"),
		},
	}
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, Write(context.Background(), sampleDoc(), Options{Path: path, Format: "json"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.Document
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *sampleDoc(), got)
}

func TestWrite_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, Write(context.Background(), sampleDoc(), Options{Path: path, Format: "yaml"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.Document
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, *sampleDoc(), got)
}

func TestWrite_RefusesToClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("precious"), 0o644))

	err := Write(context.Background(), sampleDoc(), Options{Path: path})
	require.Error(t, err)

	// Untouched without force.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))

	// Force overwrites.
	require.NoError(t, Write(context.Background(), sampleDoc(), Options{Path: path, Force: true}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x.txt"`)
}

func TestWrite_BadFormat(t *testing.T) {
	err := Write(context.Background(), sampleDoc(), Options{Path: filepath.Join(t.TempDir(), "doc.xml"), Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
