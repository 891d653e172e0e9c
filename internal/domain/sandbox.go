package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel construction errors for SandboxConfig, wrapped with
// fmt.Errorf("%w: ...") rather than built as ad-hoc strings.
var (
	// ErrNoRoots indicates a sandbox configuration with no canonical roots.
	ErrNoRoots = errors.New("sandbox configuration requires at least one root")
	// ErrRootNotAbsolute indicates a configured root was not an absolute path.
	ErrRootNotAbsolute = errors.New("sandbox root must be an absolute path")
	// ErrHomeOutsideRoots indicates the home path does not lie within any root.
	ErrHomeOutsideRoots = errors.New("sandbox home path must lie within a configured root")
)

// SandboxConfig is the immutable allow-list of canonical root paths plus a
// designated home path, constructed once and never mutated afterward. Every
// root is stored in canonical form: no "..", no "$", no redundant
// separators.
type SandboxConfig struct {
	roots []string
	home  string
}

// NewSandboxConfig canonicalises and validates the given roots and home
// path, returning an immutable SandboxConfig. At least one root is
// required, and the home path must be equal to or a descendant of one of
// the roots.
func NewSandboxConfig(roots []string, home string) (SandboxConfig, error) {
	if len(roots) == 0 {
		return SandboxConfig{}, ErrNoRoots
	}

	canonRoots := make([]string, 0, len(roots))
	for _, r := range roots {
		if !filepath.IsAbs(r) {
			return SandboxConfig{}, fmt.Errorf("%w: %s", ErrRootNotAbsolute, r)
		}
		if strings.Contains(r, "$") {
			return SandboxConfig{}, fmt.Errorf("sandbox root must not contain '$': %s", r)
		}
		canonRoots = append(canonRoots, canonicalize(r))
	}

	canonHome := canonicalize(home)
	cfg := SandboxConfig{roots: canonRoots, home: canonHome}
	if !cfg.withinAnyRoot(canonHome) {
		return SandboxConfig{}, fmt.Errorf("%w: %s", ErrHomeOutsideRoots, home)
	}

	return cfg, nil
}

// canonicalize removes "." and ".." segments and redundant separators
// without touching the filesystem (filepath.Clean already behaves this way
// on POSIX paths).
func canonicalize(p string) string {
	return filepath.Clean(p)
}

// Roots returns a copy of the configured canonical root paths.
func (c SandboxConfig) Roots() []string {
	out := make([]string, len(c.roots))
	copy(out, c.roots)
	return out
}

// Home returns the canonical home path.
func (c SandboxConfig) Home() string {
	return c.home
}

// withinAnyRoot reports whether p lies within one of the configured roots
// using a canonical prefix check: p equals the root, or has it as a prefix
// followed by the path separator. A raw-string prefix match is not
// sufficient on its own -- "/root2/x" must not match root "/root" -- so the
// separator boundary is always checked.
func (c SandboxConfig) withinAnyRoot(p string) bool {
	for _, root := range c.roots {
		if p == root {
			return true
		}
		if strings.HasPrefix(p, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Contains reports whether the canonical absolute path p lies within this
// sandbox's dome. p must already be canonicalised (callers normally pass
// the output of the path validator).
func (c SandboxConfig) Contains(p string) bool {
	return c.withinAnyRoot(canonicalize(p))
}
