// Package redirect implements the redirector: the final pipeline stage
// that applies stdout redirects to the executor's output, truncating or
// appending through os.OpenFile with every target resolved through
// internal/validator first, so no redirect target can escape the dome.
package redirect

import (
	"fmt"
	"os"

	"github.com/truman-dome/domeshell/internal/domain"
	"github.com/truman-dome/domeshell/internal/validator"
)

// filePerm is an explicit, narrow file mode rather than relying on the
// process umask.
const filePerm os.FileMode = 0o644

// Apply applies the stdout redirects in redirects to output:
// an empty list passes output through unchanged; non-stdout kinds
// (stderr, stdin) are skipped without error; for a sequence of k stdout
// redirects, the first k-1 are created/truncated (or, for append,
// opened in append mode with no write) with no content written, and only
// the last receives output.
//
// Every target is resolved via validator.Validate against ctx; resolution
// failures collapse to the bash-compatible 404 message, and write failures
// surface the canonical posix message text, both prefixed "bash: <target>:"
// per the redirector's error contract.
func Apply(redirects []domain.Redirect, output string, ctx domain.ExecContext) (string, error) {
	stdoutRedirects := make([]domain.Redirect, 0, len(redirects))
	for _, r := range redirects {
		if r.Kind.IsStdout() {
			stdoutRedirects = append(stdoutRedirects, r)
		}
	}

	if len(stdoutRedirects) == 0 {
		return output, nil
	}

	last := len(stdoutRedirects) - 1
	for i, r := range stdoutRedirects {
		content := ""
		if i == last {
			content = output
		}
		if err := writeOne(r, content, ctx); err != nil {
			return "", err
		}
	}

	return "", nil
}

// writeOne resolves and writes (or, for an intermediate no-op target,
// merely opens) a single stdout redirect target.
func writeOne(r domain.Redirect, content string, ctx domain.ExecContext) error {
	resolved, err := validator.Validate(r.Target, ctx.Sandbox, ctx.CurrentPath)
	if err != nil {
		return fmt.Errorf("bash: %s: %s\n", r.Target, validator.ToUserMessage(err))
	}

	flag := os.O_WRONLY | os.O_CREATE
	if r.Kind.IsAppend() {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}

	f, err := os.OpenFile(resolved, flag, filePerm)
	if err != nil {
		return fmt.Errorf("bash: %s: %s\n", r.Target, posixMessage(err))
	}
	defer f.Close()

	if content != "" {
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("bash: %s: %s\n", r.Target, posixMessage(err))
		}
	}

	return nil
}

// posixMessage strips Go's wrapping of the underlying syscall error down
// to the canonical posix message text (e.g. "is a directory",
// "permission denied"), matching the pattern expected by the redirector's
// write-failure contract.
func posixMessage(err error) string {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err.Error()
	}
	return err.Error()
}
