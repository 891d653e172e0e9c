// Package exec drives the pipeline and dispatches each command to its
// registered handler. It is single-threaded and synchronous by design: a
// functional-options constructor, a *slog.Logger field defaulting to a
// discarding handler, and fmt.Errorf("%w: ...")-wrapped sentinel errors
// for capacity and dispatch failures.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/truman-dome/domeshell/internal/domain"
	"github.com/truman-dome/domeshell/internal/redirect"
	"github.com/truman-dome/domeshell/internal/registry"
)

// MaxPipelineDepth is the maximum number of commands in a single pipeline
// (successors + 1).
const MaxPipelineDepth = 10

// ErrPipelineTooDeep is returned, wrapped with the observed depth, when a
// pipeline exceeds MaxPipelineDepth.
var ErrPipelineTooDeep = errors.New("pipeline too deep")

// Executor runs a parsed, expanded command tree to completion.
type Executor struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// Option is a functional option for configuring an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for per-stage debug/error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// New creates an Executor bound to reg. With no WithLogger option, logging
// is discarded by default.
func New(reg *registry.Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the pipeline headed by head, starting from execCtx. On
// success it returns the redirected output and the context to carry into
// the next top-level invocation (Stdin cleared, CurrentPath updated if any
// stage changed it via cd). On failure, no partial output is returned.
func (e *Executor) Run(ctx context.Context, head *domain.Command, execCtx domain.ExecContext) (string, domain.ExecContext, error) {
	if err := ctx.Err(); err != nil {
		return "", execCtx, err
	}

	depth := head.Depth()
	if depth > MaxPipelineDepth {
		return "", execCtx, fmt.Errorf("%w: %d commands (max %d)\n", ErrPipelineTooDeep, depth, MaxPipelineDepth)
	}

	tail := head.TailCommand()
	current := execCtx

	output, updated, err := e.dispatch(head, current)
	if err != nil {
		return "", execCtx, err
	}
	current = applyUpdate(current, updated)

	for _, succ := range head.Pipes {
		if err := ctx.Err(); err != nil {
			return "", execCtx, err
		}
		current = current.WithStdin(output)
		output, updated, err = e.dispatch(succ, current)
		if err != nil {
			return "", execCtx, err
		}
		current = applyUpdate(current, updated)
	}

	final, err := redirect.Apply(tail.Redirects, output, current)
	if err != nil {
		return "", execCtx, err
	}

	return final, current.ClearStdin(), nil
}

// dispatch resolves cmd's identity to a handler and invokes it. Unknown
// commands short-circuit to the canonical bash not-found message without
// ever entering the handler table.
func (e *Executor) dispatch(cmd *domain.Command, execCtx domain.ExecContext) (string, *domain.ExecContext, error) {
	if cmd.IsUnknown() {
		e.logger.Debug("dispatch: unknown command", "name", cmd.UnknownName)
		return "", nil, fmt.Errorf("bash: %s: command not found\n", cmd.UnknownName)
	}

	handler, ok := e.registry.Lookup(cmd.Name)
	if !ok {
		e.logger.Error("dispatch: no handler registered", "name", cmd.HeadText())
		return "", nil, fmt.Errorf("bash: %s: command not found\n", cmd.HeadText())
	}

	args := argsOf(cmd)
	e.logger.Debug("dispatch: running handler", "name", cmd.HeadText(), "args", args)

	res, err := handler(args, execCtx)
	if err != nil {
		e.logger.Debug("dispatch: handler failed", "name", cmd.HeadText(), "error", err)
		return "", nil, err
	}

	return res.Output, res.UpdatedContext, nil
}

func argsOf(cmd *domain.Command) []string {
	args := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = a.Raw
	}
	return args
}

func applyUpdate(ctx domain.ExecContext, updated *domain.ExecContext) domain.ExecContext {
	if updated == nil {
		return ctx
	}
	return *updated
}
