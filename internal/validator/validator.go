// Package validator implements the path validator: the chokepoint every
// path touched by the pipeline core passes through. It walks a path
// component by component, classifying each hop with Lstat only (never
// Stat) so the walk itself can never be tricked into transparently
// following a symlink. The resolved path is returned to the caller and
// opened later, so a link created between the check and the open is not
// detected: this does not defend against TOCTOU races.
//
// The validator only ever resolves and classifies a path; it never
// touches file contents, so it can be shared by the expander, the
// executor's handler contract, and the redirector alike.
package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/truman-dome/domeshell/internal/domain"
)

// FailureCause classifies why Validate rejected a path. Internally these
// stay distinct for logs and programmer-error checks; only at the outer
// boundary (ToUserMessage) do all four collapse to the single
// non-disclosing message bash would give for a nonexistent path.
type FailureCause int

const (
	causeNone FailureCause = iota
	// CauseEmbeddedVar: the input path (or base directory) contained '$'.
	CauseEmbeddedVar
	// CauseSymlink: a path component resolved to a symbolic link.
	CauseSymlink
	// CauseOutsideBoundary: the fully walked path does not lie within any
	// configured sandbox root.
	CauseOutsideBoundary
	// CauseELoop: symlink-following mode exceeded the maximum hop count.
	CauseELoop
)

// Sentinel errors, one per FailureCause, so callers can use errors.Is
// without inspecting the classifying struct when they only care about the
// kind of failure.
var (
	ErrEmbeddedVar      = errors.New("path contains an embedded variable reference")
	ErrSymlink          = errors.New("path resolves through a symbolic link")
	ErrOutsideBoundary  = errors.New("path resolves outside the sandbox boundary")
	ErrELoop            = errors.New("too many levels of symbolic links")
	ErrBaseDirNotAbs    = errors.New("programming error: base directory must be absolute")
	ErrBaseDirNotCanon  = errors.New("programming error: base directory must be canonical")
)

// maxSymlinkDepth bounds the hop count for the symlink-following mode used
// by sibling utilities that explicitly opt in via WithFollowSymlinks; the
// core validator itself never follows a link.
const maxSymlinkDepth = 10

// Error wraps a FailureCause with the path that triggered it, for logging
// and programmer-error diagnostics. It is never shown to the agent
// directly -- ToUserMessage is the only boundary-crossing conversion.
type Error struct {
	Cause FailureCause
	Path  string
	err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.err, e.Path)
}

func (e *Error) Unwrap() error { return e.err }

func newError(cause FailureCause, sentinel error, path string) *Error {
	return &Error{Cause: cause, Path: path, err: sentinel}
}

// ToUserMessage collapses any validator failure to the single user-visible
// 404 message. Errors that are not *Error (including nil) pass through
// unchanged -- callers should only apply this at the outer boundary where a
// containment failure is about to be shown to the agent.
func ToUserMessage(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return "No such file or directory"
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Option configures optional Validate behaviour.
type Option func(*options)

type options struct {
	followSymlinks bool
}

// WithFollowSymlinks enables the symlink-following mode used by sibling
// utilities that do allow symlinks. The core validator never passes
// this option; it is provided so the same walk logic serves both policies
// without duplicating the canonicalisation and boundary-check code.
func WithFollowSymlinks() Option {
	return func(o *options) { o.followSymlinks = true }
}

// Validate is the path validator's contract: given an input path, a
// sandbox configuration, and an optional base directory, it returns the
// resolved absolute canonical path or a classified *Error.
//
// baseDir must be absolute and canonical when non-empty; violating this is
// a programming error, not a user error, and is reported as such rather
// than silently tolerated.
func Validate(inputPath string, cfg domain.SandboxConfig, baseDir string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if strings.Contains(inputPath, "$") || strings.Contains(baseDir, "$") {
		return "", newError(CauseEmbeddedVar, ErrEmbeddedVar, inputPath)
	}

	if baseDir != "" {
		if !filepath.IsAbs(baseDir) {
			panic(fmt.Errorf("%w: %s", ErrBaseDirNotAbs, baseDir))
		}
		if filepath.Clean(baseDir) != baseDir {
			panic(fmt.Errorf("%w: %s", ErrBaseDirNotCanon, baseDir))
		}
	}

	var full string
	if filepath.IsAbs(inputPath) {
		full = inputPath
	} else {
		full = filepath.Join(baseDir, inputPath)
	}

	// Textual canonicalisation: filepath.Join/Clean already resolve "."
	// and ".." segments, and a ".." from the root is a no-op on POSIX
	// (bash-compatible), which is exactly what filepath.Clean gives us.
	clean := filepath.Clean(full)

	resolved, err := walk(clean, o.followSymlinks)
	if err != nil {
		return "", err
	}

	if !cfg.Contains(resolved) {
		return "", newError(CauseOutsideBoundary, ErrOutsideBoundary, resolved)
	}

	return resolved, nil
}

// walk traverses the canonicalised path one component at a time from the
// filesystem root, querying the link status at each step via Lstat (never
// Stat, so the query itself cannot be tricked into following a link). If a
// component does not yet exist, the remaining path is accepted unresolved
// (supports create-operations like `>` or `mkdir`). Any other I/O error is
// treated as "allow" -- the real operation downstream will produce its own
// canonical error.
func walk(clean string, followSymlinks bool) (string, error) {
	vol := filepath.VolumeName(clean)
	rest := strings.TrimPrefix(clean[len(vol):], string(filepath.Separator))
	if rest == "" {
		return clean, nil
	}
	components := strings.Split(rest, string(filepath.Separator))

	current := vol + string(filepath.Separator)
	depth := 0

	for i := 0; i < len(components); i++ {
		component := components[i]
		if component == "" {
			continue
		}
		current = filepath.Join(current, component)

		info, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				// Stop walking; accept the remaining path unresolved. Built
				// from `current` plus whatever components are left rather
				// than the original `clean` string, since a prior symlink
				// hop may have spliced in a different prefix.
				return filepath.Join(current, filepath.Join(components[i+1:]...)), nil
			}
			// Other I/O errors propagate as allow.
			return filepath.Join(current, filepath.Join(components[i+1:]...)), nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !followSymlinks {
				return "", newError(CauseSymlink, ErrSymlink, current)
			}

			depth++
			if depth > maxSymlinkDepth {
				return "", newError(CauseELoop, ErrELoop, current)
			}

			target, err := os.Readlink(current)
			if err != nil {
				return clean, nil
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(current), target)
			}
			target = filepath.Clean(target)

			// Splice the resolved target in place of `current` and
			// continue the walk over its components plus whatever
			// remained after this hop -- depth must carry across hops
			// so a chain of single-hop links still counts toward the
			// same budget (a common bug this threading avoids).
			remaining := components[i+1:]
			targetComponents := splitComponents(target)
			components = append(append([]string{}, targetComponents...), remaining...)
			i = -1
			current = filepath.VolumeName(target) + string(filepath.Separator)
		}
	}

	return current, nil
}

func splitComponents(p string) []string {
	vol := filepath.VolumeName(p)
	rest := strings.TrimPrefix(p[len(vol):], string(filepath.Separator))
	if rest == "" {
		return nil
	}
	parts := strings.Split(rest, string(filepath.Separator))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
