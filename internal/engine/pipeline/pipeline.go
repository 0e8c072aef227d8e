package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dtsforge/internal/core/errors"
	"dtsforge/internal/engine/passes"
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/shared/observability"
	"dtsforge/internal/ts"
)

// Pass is one rewrite step. Apply receives a root scope for the current
// state of the file and returns the rewritten file, which may be the
// same pointer when nothing changed.
type Pass struct {
	Name  string
	Apply func(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile
}

// Timing records how long one pass took and whether it changed the tree.
type Timing struct {
	Pass     string
	Duration time.Duration
	Changed  bool
}

// Result is the outcome of running the full pass list over one file.
type Result struct {
	File    *ts.ParsedFile
	Timings []Timing
}

// Pipeline runs an ordered pass list over parsed declaration files,
// rebuilding name resolution between passes so each pass sees the
// output of the previous one.
type Pipeline struct {
	passes []Pass
	deps   map[ts.LibIdent]*ts.ParsedFile
	logger *slog.Logger
}

func New(logger *slog.Logger, deps map[ts.LibIdent]*ts.ParsedFile, ps []Pass) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{passes: ps, deps: deps, logger: logger}
}

// Default returns the standard pass list in its required order. The order
// is load-bearing: earlier passes establish the shapes later passes expect,
// and library patches run last so they see the fully rewritten tree.
func Default() []Pass {
	return []Pass{
		{Name: "HandleCommonJSModules", Apply: passes.HandleCommonJSModules},
		{Name: "MoveGlobals", Apply: passes.MoveGlobals},
		{Name: "InferEnumTypes", Apply: passes.InferEnumTypes},
		{Name: "RejiggerIntersections", Apply: passes.RejiggerIntersections},
		{Name: "SplitMethods", Apply: passes.SplitMethods},
		{Name: "RemoveStubs", Apply: passes.RemoveStubs},
		{Name: "DropProperties", Apply: passes.DropProperties},
		{Name: "ResolveTypeQueries", Apply: passes.ResolveTypeQueries},
		{Name: "InlineTrivial", Apply: passes.InlineTrivial},
		{Name: "SimplifyParents", Apply: passes.SimplifyParents},
		{Name: "TypeAliasIntersection", Apply: passes.TypeAliasIntersection},
		{Name: "ExtractClasses", Apply: passes.ExtractClasses},
		{Name: "LibrarySpecific", Apply: passes.LibrarySpecific},
	}
}

// Run applies every pass in order to the file belonging to lib. A fresh
// root scope is built before each pass so lookups always resolve against
// the current tree. A panicking pass aborts the run with a typed error
// rather than taking the process down.
func (p *Pipeline) Run(ctx context.Context, lib ts.LibIdent, file *ts.ParsedFile) (res Result, err error) {
	start := time.Now()
	ctx, span := observability.Tracer.Start(ctx, "pipeline.Run",
		trace.WithAttributes(attribute.String("library", lib.Name)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			observability.FileErrorsTotal.Inc()
			err = errors.New(errors.CodeTransformError,
				fmt.Sprintf("pass panicked on %s: %v", lib.Name, r))
		}
	}()

	current := file
	timings := make([]Timing, 0, len(p.passes))
	for _, pass := range p.passes {
		if cerr := ctx.Err(); cerr != nil {
			return Result{}, errors.Wrap(cerr, errors.CodeTransformError, "pipeline canceled")
		}

		_, passSpan := observability.Tracer.Start(ctx, "pipeline.pass",
			trace.WithAttributes(attribute.String("pass", pass.Name)))
		passStart := time.Now()

		root := scope.NewRoot(lib, p.logger.With("pass", pass.Name), p.deps)
		next := pass.Apply(root, current)
		if next == nil {
			next = current
		}

		elapsed := time.Since(passStart)
		passSpan.End()
		observability.PassDuration.WithLabelValues(pass.Name).Observe(elapsed.Seconds())

		changed := next != current
		timings = append(timings, Timing{Pass: pass.Name, Duration: elapsed, Changed: changed})
		if changed {
			p.logger.Debug("pass rewrote tree", "pass", pass.Name, "library", lib.Name, "took", elapsed)
		}
		current = next
	}

	observability.PipelineDuration.WithLabelValues(lib.Name).Observe(time.Since(start).Seconds())
	observability.FilesProcessedTotal.Inc()
	return Result{File: current, Timings: timings}, nil
}
