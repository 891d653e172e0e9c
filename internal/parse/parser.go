// Package parse consumes the tokenizer's output and builds the command
// tree (internal/domain.Command) that the expander and executor operate
// on. Parsing is a single iterative pass with an explicit accumulator --
// never unbounded recursion -- so memory and time stay O(n) in the token
// count.
package parse

import (
	"errors"

	"github.com/truman-dome/domeshell/internal/domain"
	"github.com/truman-dome/domeshell/internal/token"
)

// ErrEmptyCommand is returned before any other validation when the input
// tokenizes to nothing.
var ErrEmptyCommand = errors.New("empty command")

// Parse tokenizes and parses input into the head command of a pipeline.
// Chain tokens (&&, ||, ;) are retained in the sense that the parser does
// not error on them, but they are not yet consumed by any downstream
// stage -- the executor only ever sees the first chain segment.
func Parse(input string) (*domain.Command, error) {
	tokens, err := token.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens builds the command tree from an already-tokenized stream.
func ParseTokens(tokens []token.Token) (*domain.Command, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}

	p := &parser{tokens: tokens}
	head := p.parsePipeline()
	if head == nil {
		return nil, ErrEmptyCommand
	}
	return head, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token.Token { return p.tokens[p.pos] }

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// parsePipeline parses one head command plus its flat list of pipe
// successors, stopping at a Chain token or end of stream. The pipe list is
// built iteratively: `a | b | c` yields a head with Pipes = [b, c], never a
// nested tree.
func (p *parser) parsePipeline() *domain.Command {
	head := p.parseCommand()
	if head == nil {
		return nil
	}

	for !p.atEnd() && p.peek().Kind == token.Pipe {
		p.advance() // consume '|'
		next := p.parseCommand()
		if next == nil {
			break
		}
		head.Pipes = append(head.Pipes, next)
	}

	// Chain tokens are left in place conceptually: the parser's only
	// obligation is not to crash on them, so we simply stop here and let
	// any remaining tokens (a Chain and whatever follows) go unconsumed.
	return head
}

// parseCommand parses a single command: one head token followed by zero or
// more argument/redirect tokens, until a Pipe, Chain, or end of stream.
func (p *parser) parseCommand() *domain.Command {
	if p.atEnd() {
		return nil
	}
	if p.peek().Kind == token.Pipe || p.peek().Kind == token.Chain {
		return nil
	}

	headTok := p.advance()
	cmd := &domain.Command{}
	if name, ok := domain.LookupCommandName(headTok.Value); ok {
		cmd.Name = name
	} else {
		cmd.Name = domain.CommandUnknown
		cmd.UnknownName = headTok.Value
	}

	for !p.atEnd() {
		t := p.peek()
		switch t.Kind {
		case token.Pipe, token.Chain:
			return cmd
		case token.Redirect:
			p.advance()
			cmd.Redirects = append(cmd.Redirects, parseRedirectTarget(p, t))
		case token.Word:
			p.advance()
			cmd.Args = append(cmd.Args, domain.Literal(t.Value))
		case token.Glob:
			p.advance()
			cmd.Args = append(cmd.Args, domain.Glob(t.Value))
		}
	}

	return cmd
}

// parseRedirectTarget pairs a redirect token with the following word token
// to form a redirect descriptor. The following token may be a Word or a
// Glob; its text is taken as the target. If the stream ends or the next
// token is neither, the target is left empty; the redirector then resolves
// an empty stdout target to the current directory and reports the write
// failure as an error rather than panicking.
func parseRedirectTarget(p *parser, redirTok token.Token) domain.Redirect {
	kind := redirectKind(redirTok.Redirect)
	target := ""
	if !p.atEnd() {
		next := p.peek()
		if next.Kind == token.Word || next.Kind == token.Glob {
			p.advance()
			target = next.Value
		}
	}
	return domain.Redirect{Kind: kind, Target: target}
}

func redirectKind(op token.RedirectOp) domain.RedirectKind {
	switch op {
	case token.RedirectStdoutTruncate:
		return domain.RedirectStdoutTruncate
	case token.RedirectStdoutAppend:
		return domain.RedirectStdoutAppend
	case token.RedirectStderrTruncate:
		return domain.RedirectStderrTruncate
	case token.RedirectStderrAppend:
		return domain.RedirectStderrAppend
	default:
		return domain.RedirectStdin
	}
}
