// Package domain holds the data types shared across the pipeline stages:
// the command tree produced by the parser and consumed by the executor,
// the sandbox configuration, and the per-invocation execution context.
package domain

// CommandName identifies a recognised command head. The zero value,
// CommandUnknown, is used together with UnknownName on a Command to carry
// a head word that is not in the closed allowlist.
type CommandName int

// The closed set of recognised command names. Any head
// word outside this set is parsed as CommandUnknown.
const (
	CommandUnknown CommandName = iota
	CommandCat
	CommandCd
	CommandCp
	CommandDate
	CommandEcho
	CommandFalse
	CommandFind
	CommandGrep
	CommandHead
	CommandLs
	CommandMkdir
	CommandMv
	CommandPwd
	CommandRm
	CommandTail
	CommandTouch
	CommandTrue
	CommandWc
	CommandWhich
)

// commandNames maps the closed allowlist to their canonical spelling. Kept
// as a plain map rather than a generated stringer: the set is small and
// fixed at compile time.
var commandNames = map[string]CommandName{
	"cat":   CommandCat,
	"cd":    CommandCd,
	"cp":    CommandCp,
	"date":  CommandDate,
	"echo":  CommandEcho,
	"false": CommandFalse,
	"find":  CommandFind,
	"grep":  CommandGrep,
	"head":  CommandHead,
	"ls":    CommandLs,
	"mkdir": CommandMkdir,
	"mv":    CommandMv,
	"pwd":   CommandPwd,
	"rm":    CommandRm,
	"tail":  CommandTail,
	"touch": CommandTouch,
	"true":  CommandTrue,
	"wc":    CommandWc,
	"which": CommandWhich,
}

// LookupCommandName resolves a head word against the closed allowlist. The
// bool result is false for any word outside the set; callers construct the
// "unknown name" variant themselves (see Command.UnknownName) rather than
// interning the string into a runtime symbol table, so hostile input can
// never grow an identifier table.
func LookupCommandName(word string) (CommandName, bool) {
	name, ok := commandNames[word]
	return name, ok
}

// AtomKind distinguishes a literal argument from one that still carries an
// unexpanded glob pattern.
type AtomKind int

const (
	// AtomLiteral is quoted input, or unquoted input with no wildcard
	// characters. It is never subject to filesystem listing.
	AtomLiteral AtomKind = iota
	// AtomGlob is unquoted input containing *, ?, [ or ]. The expander
	// replaces a single AtomGlob with zero or more AtomLiteral atoms.
	AtomGlob
)

// Atom is a single parsed argument. Raw holds the literal text for
// AtomLiteral, or the original (pre-expansion) pattern text for AtomGlob.
type Atom struct {
	Kind AtomKind
	Raw  string
}

// Literal constructs a literal argument atom.
func Literal(s string) Atom { return Atom{Kind: AtomLiteral, Raw: s} }

// Glob constructs a glob-pattern argument atom.
func Glob(pattern string) Atom { return Atom{Kind: AtomGlob, Raw: pattern} }

// RedirectKind identifies the shape of a parsed redirect operator.
type RedirectKind int

const (
	// RedirectStdoutTruncate is '>'.
	RedirectStdoutTruncate RedirectKind = iota
	// RedirectStdoutAppend is '>>'.
	RedirectStdoutAppend
	// RedirectStderrTruncate is '2>'.
	RedirectStderrTruncate
	// RedirectStderrAppend is '2>>'.
	RedirectStderrAppend
	// RedirectStdin is '<'.
	RedirectStdin
)

// IsStdout reports whether this redirect kind is consumed by the
// redirector; stderr and stdin kinds are parsed and preserved but ignored.
func (k RedirectKind) IsStdout() bool {
	return k == RedirectStdoutTruncate || k == RedirectStdoutAppend
}

// IsAppend reports whether the redirect opens its target in append mode.
func (k RedirectKind) IsAppend() bool {
	return k == RedirectStdoutAppend || k == RedirectStderrAppend
}

// Redirect pairs a redirect operator with its target path, exactly as
// written by the user (tilde expansion of redirect targets happens in the
// expander, before the executor ever sees the command tree; redirect
// targets are never glob-expanded).
type Redirect struct {
	Kind   RedirectKind
	Target string
}

// Command is a single node of the command tree. A Command with a non-empty
// Pipes list is the head of a pipeline; every element of Pipes is itself a
// Command with an empty Pipes list (the pipeline is expressed as a flat
// list at the head, never as a nested tree).
type Command struct {
	// Name is the resolved identity, or CommandUnknown if UnknownName is set.
	Name CommandName
	// UnknownName carries the original head text when Name == CommandUnknown.
	UnknownName string
	// Args is the ordered list of argument atoms following the head word.
	Args []Atom
	// Pipes is the ordered list of pipe successors. Empty on a successor.
	Pipes []*Command
	// Redirects is the ordered list of redirect descriptors attached to
	// this command node by the parser.
	Redirects []Redirect
}

// IsUnknown reports whether this command's head word was outside the
// closed allowlist.
func (c *Command) IsUnknown() bool {
	return c.Name == CommandUnknown
}

// HeadText returns the original head word for error reporting, whether or
// not it resolved to a known command.
func (c *Command) HeadText() string {
	if c.IsUnknown() {
		return c.UnknownName
	}
	for text, name := range commandNames {
		if name == c.Name {
			return text
		}
	}
	return ""
}

// Depth returns the number of commands in the pipeline headed by c: 1 plus
// the number of pipe successors. The executor's depth-10 capacity check
// operates on this value.
func (c *Command) Depth() int {
	return 1 + len(c.Pipes)
}

// TailCommand returns the command whose Redirects are actually applied by
// the redirector: the last pipe successor if any exist, else c itself.
func (c *Command) TailCommand() *Command {
	if len(c.Pipes) == 0 {
		return c
	}
	return c.Pipes[len(c.Pipes)-1]
}
