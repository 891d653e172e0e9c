package sandboxcfg

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/truman-dome/domeshell/internal/domain"
)

// domeEnvVar is the environment variable naming the sandbox root when no
// configuration file is used.
const domeEnvVar = "TRUMAN_DOME"

// Discover builds a SandboxConfig from the TRUMAN_DOME environment
// variable, falling back to the process working directory when it is
// empty or unset. Tilde, ".", and a leading "./" are expanded; a leading
// "$" is deliberately left unexpanded -- interpreting it here would let an
// agent-controlled environment smuggle a variable reference past the
// sandboxing hook that calls this function, which is exactly what
// internal/validator's embedded-var rejection exists to prevent at the
// path-validation layer too.
func Discover() (domain.SandboxConfig, error) {
	raw := os.Getenv(domeEnvVar)

	root, err := resolveDomeRoot(raw)
	if err != nil {
		return domain.SandboxConfig{}, err
	}

	return domain.NewSandboxConfig([]string{root}, root)
}

func resolveDomeRoot(raw string) (string, error) {
	if raw == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return cwd, nil
	}

	if strings.HasPrefix(raw, "$") {
		// Never expanded: see Discover's doc comment.
		return filepath.Clean(raw), nil
	}

	switch {
	case raw == "~":
		return homeDir()
	case strings.HasPrefix(raw, "~/"):
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, raw[len("~/"):]), nil
	case raw == "." || strings.HasPrefix(raw, "./"):
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return filepath.Clean(filepath.Join(cwd, raw)), nil
	default:
		if filepath.IsAbs(raw) {
			return filepath.Clean(raw), nil
		}
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return filepath.Clean(filepath.Join(cwd, raw)), nil
	}
}

func homeDir() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return u.HomeDir, nil
}
