// Package registry defines the command-handler contract and the table
// that maps a recognised CommandName to its handler. Concrete handlers
// (ls, cat, grep, ...) are an external collaborator -- out of scope for
// this module -- and are supplied by the caller via New/Register.
//
// Dispatch is a table keyed by the closed CommandName enum rather than a
// dynamic lookup by symbol name, so hostile head words can never grow an
// identifier table. The key set is fixed at compile time; the handlers in
// the table are installed at run time.
package registry

import (
	"fmt"

	"github.com/truman-dome/domeshell/internal/domain"
)

// Result is a handler's successful outcome: the output it produced, and
// optionally an updated execution context signalling a path-changing
// effect such as `cd`. Handlers must not mutate the context they receive;
// UpdatedContext is how they instead signal the change.
type Result struct {
	Output         string
	UpdatedContext *domain.ExecContext
}

// Handler is the contract every command handler implements: given its
// expanded argument list and the current execution context, it returns
// either a Result or an error carrying the bash-compatible message text.
// Handlers must not mutate ctx.
type Handler func(args []string, ctx domain.ExecContext) (Result, error)

// Registry is the table mapping a recognised command identity to its
// handler. It starts empty and is filled at run time by Register; its
// contents are not fixed at compile time.
type Registry struct {
	handlers map[domain.CommandName]Handler
}

// New builds an empty Registry. Use Register to populate it; callers
// typically build one Registry at process start and share it across
// invocations, since handlers hold no mutable state of their own.
func New() *Registry {
	return &Registry{handlers: make(map[domain.CommandName]Handler)}
}

// Register installs the handler for name, overwriting any previous
// registration. It is a programmer error to register CommandUnknown; doing
// so panics, since unknown-name commands are dispatched specially (never
// through the table) by the executor.
func (r *Registry) Register(name domain.CommandName, h Handler) {
	if name == domain.CommandUnknown {
		panic(fmt.Errorf("registry: cannot register a handler for CommandUnknown"))
	}
	r.handlers[name] = h
}

// Lookup returns the handler registered for name, if any.
func (r *Registry) Lookup(name domain.CommandName) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
