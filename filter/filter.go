// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package filter evaluates CEL expressions against catalog packages.
package filter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/skillmesh/registry-core/catalog"
)

const (
	// DefaultMaxExpressionLength bounds filter expressions. Filters arrive
	// as untrusted query parameters, so the limit is deliberately tight.
	DefaultMaxExpressionLength = 2048

	// DefaultCostLimit is the runtime cost limit for evaluating one filter
	// against one package.
	DefaultCostLimit = 100000
)

// Engine compiles filter expressions over the package variable set.
// It is safe for concurrent use from multiple goroutines.
type Engine struct {
	envOnce             sync.Once
	env                 *cel.Env
	envErr              error
	maxExpressionLength int
	costLimit           uint64
}

// Filter is a compiled expression ready to match packages.
type Filter struct {
	source  string
	program cel.Program
}

// Source returns the original expression string.
func (f *Filter) Source() string {
	return f.source
}

// NewEngine creates an engine with the package variable declarations and
// default limits.
func NewEngine() *Engine {
	return &Engine{
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

// WithMaxExpressionLength sets the maximum allowed expression length.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit per evaluation.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

func (e *Engine) getEnv() (*cel.Env, error) {
	e.envOnce.Do(func() {
		e.env, e.envErr = cel.NewEnv(
			cel.Variable("kind", cel.StringType),
			cel.Variable("slug", cel.StringType),
			cel.Variable("displayName", cel.StringType),
			cel.Variable("downloads", cel.IntType),
			cel.Variable("stars", cel.IntType),
			cel.Variable("versions", cel.IntType),
			cel.Variable("tags", cel.ListType(cel.StringType)),
		)
	})
	return e.env, e.envErr
}

// Compile parses, type checks, and compiles a filter expression. The
// expression must produce a boolean.
//
// Invalid expressions return an *ExpressionError carrying per-issue line
// and column details suitable for surfacing to API callers.
func (e *Engine) Compile(expr string) (*Filter, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrInvalidExpression, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newExpressionError(expr, issues)
	}
	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, newExpressionError(expr, issues)
	}
	if checked.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("%w: expression must evaluate to bool, got %s",
			ErrInvalidExpression, checked.OutputType())
	}

	program, err := env.Program(checked, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("creating CEL program for %q: %w", expr, err)
	}

	return &Filter{source: expr, program: program}, nil
}

// Match evaluates the filter against one package.
func (f *Filter) Match(pkg *catalog.Package) (bool, error) {
	tags := make([]string, 0, len(pkg.Tags))
	for tag := range pkg.Tags {
		tags = append(tags, tag)
	}

	out, _, err := f.program.Eval(map[string]any{
		"kind":        string(pkg.Kind),
		"slug":        pkg.Slug,
		"displayName": pkg.DisplayName,
		"downloads":   pkg.Stats.Downloads,
		"stars":       pkg.Stats.Stars,
		"versions":    pkg.Stats.Versions,
		"tags":        tags,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrEvaluation, out.Value())
	}
	return result, nil
}
