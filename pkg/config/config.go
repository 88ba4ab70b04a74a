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

package config

import (
	"strings"

	"github.com/walteh/robolog/pkg/model"
	"github.com/walteh/robolog/pkg/parser"
	"gitlab.com/tozd/go/errors"
)

// 🔤 KeywordRule maps one action token to its classification. Rules
// layer on top of the built-in English table, which is how additional
// console locales are supported without code changes.
type KeywordRule struct {
	Token  string `hcl:"token,label" json:"token" yaml:"token"`
	Kind   string `hcl:"kind" json:"kind" yaml:"kind"`
	Action string `hcl:"action" json:"action" yaml:"action"`
}

// 📚 Config is the optional parser-tuning configuration. Every field
// has a working default; a missing config file is not an error.
type Config struct {
	Encoding           string        `hcl:"encoding,optional" json:"encoding,omitempty" yaml:"encoding,omitempty"`
	EncodingCandidates []string      `hcl:"encoding_candidates,optional" json:"encoding_candidates,omitempty" yaml:"encoding_candidates,omitempty"`
	EncodingThreshold  float64       `hcl:"encoding_threshold,optional" json:"encoding_threshold,omitempty" yaml:"encoding_threshold,omitempty"`
	Format             string        `hcl:"format,optional" json:"format,omitempty" yaml:"format,omitempty"`
	Keywords           []KeywordRule `hcl:"keyword,block" json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// knownActions guards keyword rules against typos.
var knownActions = map[string]model.Action{
	"new":      model.ActionNew,
	"same":     model.ActionSame,
	"changed":  model.ActionChanged,
	"tweaked":  model.ActionTweaked,
	"older":    model.ActionOlder,
	"newer":    model.ActionNewer,
	"extra":    model.ActionExtra,
	"mismatch": model.ActionMismatch,
	"failed":   model.ActionFailed,
	"lonely":   model.ActionLonely,
	"unknown":  model.ActionUnknown,
}

// 🔍 Validate checks the configuration is usable.
func (cfg *Config) Validate() error {
	if cfg.EncodingThreshold < 0 || cfg.EncodingThreshold >= 1 {
		return errors.Errorf("encoding_threshold must be in [0, 1), got %v", cfg.EncodingThreshold)
	}
	if cfg.Format != "" && cfg.Format != "json" && cfg.Format != "yaml" {
		return errors.Errorf("format must be json or yaml, got %q", cfg.Format)
	}
	for _, kw := range cfg.Keywords {
		if kw.Token == "" {
			return errors.New("keyword token is required")
		}
		if kw.Kind != string(model.KindDir) && kw.Kind != string(model.KindFile) {
			return errors.Errorf("keyword %q: kind must be dir or file, got %q", kw.Token, kw.Kind)
		}
		if _, ok := knownActions[strings.ToLower(kw.Action)]; !ok {
			return errors.Errorf("keyword %q: unknown action %q", kw.Token, kw.Action)
		}
	}
	return nil
}

// 🎯 ParserOptions converts the configuration into parse options.
func (cfg *Config) ParserOptions() parser.Options {
	opts := parser.Options{
		Encoding:           cfg.Encoding,
		EncodingCandidates: cfg.EncodingCandidates,
		EncodingThreshold:  cfg.EncodingThreshold,
	}
	if len(cfg.Keywords) > 0 {
		opts.Keywords = make(map[string]parser.Keyword, len(cfg.Keywords))
		for _, kw := range cfg.Keywords {
			opts.Keywords[kw.Token] = parser.Keyword{
				Kind:   model.EntryKind(kw.Kind),
				Action: knownActions[strings.ToLower(kw.Action)],
			}
		}
	}
	return opts
}
