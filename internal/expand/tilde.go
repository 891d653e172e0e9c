// Package expand implements the expander: a pure transformation over the
// command tree that materialises tilde and glob expansions before
// execution.
package expand

import "strings"

// expandTilde implements the five recognised tilde forms. It never
// touches the filesystem -- home is a plain string substitution.
func expandTilde(raw, home string) string {
	switch {
	case raw == "~":
		return home
	case raw == "~/":
		return home
	case strings.HasPrefix(raw, "~/"):
		rest := raw[len("~/"):]
		rest = strings.TrimLeft(rest, "/")
		return joinHome(home, rest)
	default:
		// "~user" (or anything else starting with '~' that isn't one of
		// the forms above) is passed through unchanged -- ~user is not
		// supported.
		return raw
	}
}

// joinHome joins home and rest with exactly one separator, collapsing any
// leading repeated separators already stripped from rest by the caller.
func joinHome(home, rest string) string {
	if rest == "" {
		return home
	}
	if strings.HasSuffix(home, "/") {
		return home + rest
	}
	return home + "/" + rest
}
