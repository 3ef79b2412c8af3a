//go:build !windows

package entry

import (
	"context"
	"syscall"

	"github.com/pywire-lang/pywire-launcher/errors"
)

// Start replaces the launcher process with the server. On success it never
// returns: the server inherits the launcher's standard streams and process
// id, so the editor keeps talking to the same pid over stdio.
func (e *Entry) Start(ctx context.Context) error {
	if err := syscall.Exec(e.Interpreter, e.Argv(), e.Env); err != nil {
		return errors.Wrapf(err, "executing %q", e.Interpreter)
	}
	return nil
}
