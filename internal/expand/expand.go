package expand

import "github.com/truman-dome/domeshell/internal/domain"

// Expand runs the expander over the whole command tree rooted at head:
// tilde expansion on every argument atom and every redirect path, then
// glob expansion on every glob-tagged atom, visiting the head command and
// every pipe successor. It returns a new tree; the input tree is not
// mutated -- the command tree is never mutated again once the expander
// has finished with it.
func Expand(head *domain.Command, ctx domain.ExecContext) *domain.Command {
	if head == nil {
		return nil
	}
	return expandCommand(head, ctx)
}

func expandCommand(cmd *domain.Command, ctx domain.ExecContext) *domain.Command {
	out := &domain.Command{
		Name:        cmd.Name,
		UnknownName: cmd.UnknownName,
	}

	out.Args = make([]domain.Atom, 0, len(cmd.Args))
	for _, atom := range cmd.Args {
		out.Args = append(out.Args, expandAtom(atom, ctx)...)
	}

	out.Redirects = make([]domain.Redirect, 0, len(cmd.Redirects))
	for _, r := range cmd.Redirects {
		r.Target = expandTilde(r.Target, ctx.Sandbox.Home())
		out.Redirects = append(out.Redirects, r)
	}

	out.Pipes = make([]*domain.Command, 0, len(cmd.Pipes))
	for _, succ := range cmd.Pipes {
		out.Pipes = append(out.Pipes, expandCommand(succ, ctx))
	}

	return out
}

// expandAtom applies tilde expansion to any atom, then (for glob atoms)
// flattens the single atom into zero or more literal atoms. Literal atoms
// always produce exactly one atom and never perform filesystem listing.
func expandAtom(atom domain.Atom, ctx domain.ExecContext) []domain.Atom {
	tilded := expandTilde(atom.Raw, ctx.Sandbox.Home())

	if atom.Kind == domain.AtomLiteral {
		return []domain.Atom{domain.Literal(tilded)}
	}

	matches := ExpandGlobAtom(tilded, ctx)
	out := make([]domain.Atom, len(matches))
	for i, m := range matches {
		out[i] = domain.Literal(m)
	}
	return out
}
