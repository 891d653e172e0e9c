// Package sandboxcfg loads the dome's root allow-list and home path from a
// TOML configuration file: a thin struct wrapping toml.Unmarshal.
//
// The loading mechanics are an external collaborator to the pipeline core
// -- the core itself only ever consumes an already-built
// domain.SandboxConfig -- so this package is kept deliberately minimal: a
// schema of exactly the two fields the core needs.
package sandboxcfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/truman-dome/domeshell/internal/domain"
)

// ErrNoConfigPath is returned when Load is called with an empty path.
var ErrNoConfigPath = errors.New("config file path is required")

// fileSpec mirrors the on-disk TOML schema:
//
//	roots = ["/dome", "/dome/shared"]
//	home  = "/dome"
type fileSpec struct {
	Roots []string `toml:"roots"`
	Home  string   `toml:"home"`
}

// Load reads and parses the TOML file at path, then constructs and
// validates a domain.SandboxConfig from it, canonicalising all paths so
// the result is immutable and canonical from construction onward.
func Load(path string) (domain.SandboxConfig, error) {
	if path == "" {
		return domain.SandboxConfig{}, ErrNoConfigPath
	}

	// #nosec G304 -- path is an operator-supplied config file, not
	// untrusted agent input; the dome boundary it describes is what
	// protects agent input, not the other way around.
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SandboxConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var spec fileSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return domain.SandboxConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return domain.NewSandboxConfig(spec.Roots, spec.Home)
}
