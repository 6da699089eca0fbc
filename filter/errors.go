// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

var (
	// ErrInvalidExpression is returned when a filter expression fails
	// parsing or type checking.
	ErrInvalidExpression = errors.New("invalid filter expression")

	// ErrEvaluation is returned when evaluating a filter fails at runtime.
	ErrEvaluation = errors.New("filter evaluation failed")
)

// Issue locates one problem inside a filter expression.
type Issue struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ExpressionError reports a filter expression rejected at compile time,
// with per-issue locations for API error responses.
type ExpressionError struct {
	Source string  `json:"source"`
	Issues []Issue `json:"issues,omitempty"`

	original error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid filter expression %q: %s", e.Source, e.original)
}

// Unwrap returns the underlying error, which matches ErrInvalidExpression.
func (e *ExpressionError) Unwrap() error {
	return e.original
}

func newExpressionError(source string, issues *cel.Issues) error {
	e := &ExpressionError{
		Source:   source,
		Issues:   make([]Issue, 0, len(issues.Errors())),
		original: fmt.Errorf("%w: %w", ErrInvalidExpression, issues.Err()),
	}
	for _, err := range issues.Errors() {
		e.Issues = append(e.Issues, Issue{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return e
}
