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

package model

import "time"

// 📚 Document is the structured result of parsing one Robocopy log.
// It is built once by the parser and never mutated afterwards.
type Document struct {
	Header   RunHeader `json:"header" yaml:"header"`
	Entries  []Entry   `json:"entries" yaml:"entries"`
	Summary  Summary   `json:"summary" yaml:"summary"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// 📦 RunHeader holds the run metadata from the log header section.
type RunHeader struct {
	StartedAt   *time.Time        `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Source      string            `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	Destination string            `json:"destination_path,omitempty" yaml:"destination_path,omitempty"`
	FileFilter  string            `json:"file_filter,omitempty" yaml:"file_filter,omitempty"`
	Options     string            `json:"options_string,omitempty" yaml:"options_string,omitempty"`
	LogPath     string            `json:"log_path,omitempty" yaml:"log_path,omitempty"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"` // recognized-but-unmodeled labels
}

// 🔢 Stat is one summary row: the six counter columns Robocopy prints.
// Bytes rows are canonical byte counts, Times rows canonical seconds.
type Stat struct {
	Total    int64 `json:"total" yaml:"total"`
	Copied   int64 `json:"copied" yaml:"copied"`
	Skipped  int64 `json:"skipped" yaml:"skipped"`
	Mismatch int64 `json:"mismatch" yaml:"mismatch"`
	Failed   int64 `json:"failed" yaml:"failed"`
	Extras   int64 `json:"extras" yaml:"extras"`
}

// 📊 Summary is the end-of-run statistics block.
// Times is optional: Robocopy omits the row under some flag combinations.
type Summary struct {
	Dirs  *Stat `json:"dirs,omitempty" yaml:"dirs,omitempty"`
	Files *Stat `json:"files,omitempty" yaml:"files,omitempty"`
	Bytes *Stat `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Times *Stat `json:"times,omitempty" yaml:"times,omitempty"`

	EndedAt          *time.Time `json:"ended_at,omitempty" yaml:"ended_at,omitempty"`
	SpeedBytesPerSec *int64     `json:"speed_bytes_per_sec,omitempty" yaml:"speed_bytes_per_sec,omitempty"`
	SpeedMBPerMin    *float64   `json:"speed_mb_per_min,omitempty" yaml:"speed_mb_per_min,omitempty"`
}
