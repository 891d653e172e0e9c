// Package domeshell is the pipeline core's public surface: the primary
// Execute API, plus the Parse and ValidatePath auxiliary APIs exposed for
// callers that want inspection or containment checks without running a
// full invocation.
package domeshell

import (
	"context"
	"errors"
	"fmt"

	"github.com/truman-dome/domeshell/internal/domain"
	"github.com/truman-dome/domeshell/internal/exec"
	"github.com/truman-dome/domeshell/internal/expand"
	"github.com/truman-dome/domeshell/internal/parse"
	"github.com/truman-dome/domeshell/internal/registry"
	"github.com/truman-dome/domeshell/internal/validator"
)

// Re-exported domain types so callers outside this module never need to
// import the internal packages directly.
type (
	// SandboxConfig is the immutable dome configuration: canonical root
	// paths plus a designated home path.
	SandboxConfig = domain.SandboxConfig
	// ExecContext is the per-invocation execution context threaded
	// through the expander and executor.
	ExecContext = domain.ExecContext
	// Command is a node of the parsed command tree.
	Command = domain.Command
	// Handler is the contract a concrete command handler implements.
	Handler = registry.Handler
	// HandlerResult is a handler's successful outcome.
	HandlerResult = registry.Result
)

// NewSandboxConfig constructs a SandboxConfig; see domain.NewSandboxConfig.
func NewSandboxConfig(roots []string, home string) (SandboxConfig, error) {
	return domain.NewSandboxConfig(roots, home)
}

// NewExecContext builds the initial context for a top-level invocation
// from sandbox: current path set to the dome's home, no carried stdin.
func NewExecContext(sandbox SandboxConfig) ExecContext {
	return domain.NewExecContext(sandbox)
}

// Runtime is the shell's entry point: a command registry bound to an
// Executor. Build one per process (or per test) and reuse it across
// invocations; it holds no per-invocation state itself.
type Runtime struct {
	registry *registry.Registry
	executor *exec.Executor
	opts     []exec.Option
}

// New builds a Runtime with an empty handler registry. Use Register to
// install concrete command handlers (an external collaborator to this
// module) before calling Execute.
func New(opts ...exec.Option) *Runtime {
	reg := registry.New()
	return &Runtime{
		registry: reg,
		executor: exec.New(reg, opts...),
		opts:     opts,
	}
}

// Register installs the handler for a recognised command name. It must be
// called before Execute is used for that command.
func (rt *Runtime) Register(name domain.CommandName, h Handler) {
	rt.registry.Register(name, h)
	// The executor closes over the registry by reference, so no
	// reconstruction is required after a late registration.
}

// Command name constants re-exported for callers registering handlers.
const (
	CommandCat   = domain.CommandCat
	CommandCd    = domain.CommandCd
	CommandCp    = domain.CommandCp
	CommandDate  = domain.CommandDate
	CommandEcho  = domain.CommandEcho
	CommandFalse = domain.CommandFalse
	CommandFind  = domain.CommandFind
	CommandGrep  = domain.CommandGrep
	CommandHead  = domain.CommandHead
	CommandLs    = domain.CommandLs
	CommandMkdir = domain.CommandMkdir
	CommandMv    = domain.CommandMv
	CommandPwd   = domain.CommandPwd
	CommandRm    = domain.CommandRm
	CommandTail  = domain.CommandTail
	CommandTouch = domain.CommandTouch
	CommandTrue  = domain.CommandTrue
	CommandWc    = domain.CommandWc
	CommandWhich = domain.CommandWhich
)

// ErrEmptyCommand is returned before any other validation when input
// tokenizes to nothing.
var ErrEmptyCommand = parse.ErrEmptyCommand

// Execute is the primary API: it tokenizes, parses, expands and runs
// input against execCtx, returning the pipeline's final output and the
// context to carry into a subsequent chained invocation.
//
// If execCtx is the zero value (no sandbox configured), callers must have
// built one via NewExecContext; Execute never performs configuration
// discovery itself -- that is the CLI's job (see cmd/domesh).
func (rt *Runtime) Execute(ctx context.Context, input string, execCtx ExecContext) (string, ExecContext, error) {
	head, err := parse.Parse(input)
	if err != nil {
		return "", execCtx, err
	}

	expanded := expand.Expand(head, execCtx)

	return rt.executor.Run(ctx, expanded, execCtx)
}

// Parse exposes the parser for callers that want inspection without
// execution.
func Parse(input string) (*Command, error) {
	return parse.Parse(input)
}

// ValidatePath exposes the path validator for external sandboxing hooks.
// It returns the resolved canonical path, or an error whose message is
// already collapsed to the 404-principle-compliant boundary text.
func ValidatePath(path string, sandbox SandboxConfig, baseOrCwd string) (string, error) {
	resolved, err := validator.Validate(path, sandbox, baseOrCwd)
	if err != nil {
		return "", errors.New(validator.ToUserMessage(err))
	}
	return resolved, nil
}

// FormatNotFound renders the bash-compatible "command not found" message
// for name, matching the dispatch error text produced internally by
// internal/exec so callers building their own error surfaces (e.g. a CLI)
// stay byte-for-byte consistent with it.
func FormatNotFound(name string) string {
	return fmt.Sprintf("bash: %s: command not found\n", name)
}
