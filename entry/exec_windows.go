//go:build windows

package entry

import (
	"context"
	"os"
	"os/exec"

	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/logger"
)

// Start runs the server as a child process with inherited standard streams
// and exits with its exit code. Windows has no exec takeover, so the
// launcher stays resident as a thin supervisor.
func (e *Entry) Start(ctx context.Context) error {
	cmd := e.Command(ctx)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debugw("language server exited", logger.FieldExitCode, exitErr.ExitCode())
			os.Exit(exitErr.ExitCode())
		}
		return errors.Wrapf(err, "running %q", e.Interpreter)
	}
	os.Exit(0)
	return nil
}
