// Command domesh is the CLI entry point for the dome shell's pipeline
// core. It is an external collaborator to the core: argument
// parsing and configuration discovery live here, never inside the core
// packages themselves. It dispatches subcommands by hand over os.Args
// rather than pulling in a CLI framework.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/truman-dome/domeshell"
	"github.com/truman-dome/domeshell/internal/sandboxcfg"
)

var errUsage = errors.New("usage: domesh <execute|validate-path|parse> ...")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, errUsage)
		os.Exit(1)
	}

	runID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("run_id", runID)

	var err error
	switch os.Args[1] {
	case "execute":
		err = runExecute(logger, os.Args[2:])
	case "validate-path":
		err = runValidatePath(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	default:
		err = errUsage
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runExecute(logger *slog.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: domesh execute <string>")
	}

	sandbox, err := sandboxcfg.Discover()
	if err != nil {
		return err
	}

	// Concrete command handlers (ls, cat, grep, ...) are an external
	// collaborator to this module: this CLI wires none of them
	// up, so every command dispatch currently reports "command not
	// found" via the executor's unregistered-handler path. A caller
	// embedding this core registers real handlers with rt.Register
	// before calling Execute.
	rt := domeshell.New()

	execCtx := domeshell.NewExecContext(sandbox)
	output, _, err := rt.Execute(context.Background(), args[0], execCtx)
	if err != nil {
		logger.Debug("execute failed", "error", err)
		return err
	}

	fmt.Print(output)
	return nil
}

func runValidatePath(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: domesh validate-path <path> <cwd>")
	}

	sandbox, err := sandboxcfg.Discover()
	if err != nil {
		return err
	}

	resolved, err := domeshell.ValidatePath(args[0], sandbox, args[1])
	if err != nil {
		return err
	}

	fmt.Println(resolved)
	return nil
}

func runParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: domesh parse <string>")
	}

	cmd, err := domeshell.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Println(describe(cmd, 0))
	return nil
}

// describe renders a command tree as a structured, human-readable
// representation -- plain text rather than JSON, suited to one-shot CLI
// inspection.
func describe(cmd *domeshell.Command, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	head := cmd.HeadText()
	out := fmt.Sprintf("%scommand: %s", indent, head)
	for _, a := range cmd.Args {
		out += fmt.Sprintf("\n%s  arg: %q", indent, a.Raw)
	}
	for _, r := range cmd.Redirects {
		out += fmt.Sprintf("\n%s  redirect(%d): %s", indent, r.Kind, r.Target)
	}
	for _, succ := range cmd.Pipes {
		out += "\n" + describe(succ, depth+1)
	}
	return out
}
