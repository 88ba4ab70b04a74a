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

package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Operation is a unit of work the CLI can run.
type Operation interface {
	// Name identifies the operation in logs.
	Name() string

	// Execute runs the operation.
	Execute(ctx context.Context) error
}

// 🏃 Runner executes operations, honoring context cancellation.
type Runner struct{}

// 🏗️ NewRunner creates a new runner.
func NewRunner() *Runner {
	return &Runner{}
}

// 🏃 Run executes an operation.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("%s: %w", op.Name(), err)
	}
	return nil
}
