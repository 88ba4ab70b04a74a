package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/robolog/pkg/model"
)

const hclConfig = `
encoding_candidates = ["utf-8", "cp850"]
encoding_threshold  = 0.1
format              = "yaml"

keyword "Nouveau Fich" {
  kind   = "file"
  action = "New"
}

keyword "Identique" {
  kind   = "file"
  action = "Same"
}
`

const yamlConfig = `
encoding_candidates: ["utf-8", "cp850"]
encoding_threshold: 0.1
format: yaml
keywords:
  - token: "Nouveau Fich"
    kind: file
    action: New
  - token: "Identique"
    kind: file
    action: Same
`

const jsonConfig = `{
  "encoding_candidates": ["utf-8", "cp850"],
  "encoding_threshold": 0.1,
  "format": "yaml",
  "keywords": [
    {"token": "Nouveau Fich", "kind": "file", "action": "New"},
    {"token": "Identique", "kind": "file", "action": "Same"}
  ]
}`

// writeTemp writes a config file into a temp dir and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "hcl", file: "robolog.hcl", content: hclConfig},
		{name: "yaml", file: "robolog.yaml", content: yamlConfig},
		{name: "json", file: "robolog.json", content: jsonConfig},
		{name: "robolog_extension_yaml", file: "test.robolog", content: yamlConfig},
		{name: "robolog_extension_hcl", file: "test.robolog", content: hclConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			cfg, err := Load(context.Background(), path)
			require.NoError(t, err)

			assert.Equal(t, []string{"utf-8", "cp850"}, cfg.EncodingCandidates)
			assert.Equal(t, 0.1, cfg.EncodingThreshold)
			assert.Equal(t, "yaml", cfg.Format)
			require.Len(t, cfg.Keywords, 2)
			assert.Equal(t, KeywordRule{Token: "Nouveau Fich", Kind: "file", Action: "New"}, cfg.Keywords[0])
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "missing_file",
			file:    "",
			wantErr: "reading config file",
		},
		{
			name:    "unsupported_extension",
			file:    "robolog.toml",
			content: "x = 1",
			wantErr: "unsupported config extension",
		},
		{
			name:    "unknown_yaml_field",
			file:    "robolog.yaml",
			content: "no_such_option: true",
			wantErr: "parsing YAML",
		},
		{
			name:    "bad_threshold",
			file:    "robolog.yaml",
			content: "encoding_threshold: 2.5",
			wantErr: "encoding_threshold must be in [0, 1)",
		},
		{
			name:    "bad_keyword_action",
			file:    "robolog.yaml",
			content: "keywords:\n  - token: X\n    kind: file\n    action: Exploded\n",
			wantErr: "unknown action",
		},
		{
			name:    "bad_keyword_kind",
			file:    "robolog.yaml",
			content: "keywords:\n  - token: X\n    kind: folder\n    action: New\n",
			wantErr: "kind must be dir or file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nope.yaml")
			if tt.file != "" {
				path = writeTemp(t, tt.file, tt.content)
			}
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := &Config{
		Encoding:          "windows-1252",
		EncodingThreshold: 0.2,
		Keywords: []KeywordRule{
			{Token: "Nouveau Fich", Kind: "file", Action: "new"},
			{Token: "Nouveau Dos", Kind: "dir", Action: "New"},
		},
	}
	require.NoError(t, cfg.Validate())

	opts := cfg.ParserOptions()
	assert.Equal(t, "windows-1252", opts.Encoding)
	assert.Equal(t, 0.2, opts.EncodingThreshold)
	require.Len(t, opts.Keywords, 2)
	assert.Equal(t, model.KindFile, opts.Keywords["Nouveau Fich"].Kind)
	assert.Equal(t, model.ActionNew, opts.Keywords["Nouveau Fich"].Action)
	assert.Equal(t, model.KindDir, opts.Keywords["Nouveau Dos"].Kind)
}

func TestValidate_ZeroConfig(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	opts := cfg.ParserOptions()
	assert.Empty(t, opts.Encoding)
	assert.Nil(t, opts.Keywords)
}
