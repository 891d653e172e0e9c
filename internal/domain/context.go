package domain

// ExecContext is threaded through the expander and the executor. It is
// never mutated in place: the executor produces a new ExecContext (with an
// updated CurrentPath) when a handler signals a directory change, and
// handlers never mutate the context they are handed.
//
// Invariant: CurrentPath is always an absolute, canonical path within some
// root of Sandbox.
type ExecContext struct {
	// CurrentPath is the working directory for path resolution.
	CurrentPath string
	// Sandbox is immutable for the life of this context.
	Sandbox SandboxConfig
	// Stdin is the pipeline's carried input, if any. Cleared between
	// top-level invocations so it never leaks into a later call.
	Stdin string
}

// NewExecContext builds the initial context for a top-level invocation: the
// sandbox's home directory, no carried stdin.
func NewExecContext(sandbox SandboxConfig) ExecContext {
	return ExecContext{
		CurrentPath: sandbox.Home(),
		Sandbox:     sandbox,
	}
}

// WithCurrentPath returns a copy of ctx with CurrentPath replaced. Used by
// the executor to apply a handler-returned path change (e.g. cd) without
// mutating the caller's context.
func (ctx ExecContext) WithCurrentPath(path string) ExecContext {
	ctx.CurrentPath = path
	return ctx
}

// WithStdin returns a copy of ctx with Stdin replaced. Used by the executor
// to thread a pipeline stage's output into the next stage's input.
func (ctx ExecContext) WithStdin(stdin string) ExecContext {
	ctx.Stdin = stdin
	return ctx
}

// ClearStdin returns a copy of ctx with Stdin reset to empty, as returned to
// the caller at the end of a top-level invocation.
func (ctx ExecContext) ClearStdin() ExecContext {
	ctx.Stdin = ""
	return ctx
}
