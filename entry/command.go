package entry

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// program returns the one-line Python program that imports the entry module
// and invokes its callable.
func (e *Entry) program() string {
	return fmt.Sprintf("from %s import %s; %s()", e.Module, e.Callable, e.Callable)
}

// Argv returns the complete argument vector the server is started with.
func (e *Entry) Argv() []string {
	argv := make([]string, 0, len(e.Args)+3)
	argv = append(argv, e.Interpreter)
	argv = append(argv, e.Args...)
	argv = append(argv, "-c", e.program())
	return argv
}

// Command builds an exec.Cmd for the entry with inherited standard streams,
// for platforms without process takeover.
func (e *Entry) Command(ctx context.Context) *exec.Cmd {
	argv := e.Argv()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = e.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
