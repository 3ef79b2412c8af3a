package entry

import (
	"fmt"
	"io"
)

// Diagnostics receives the deliberate failure report when resolution fails.
// The launcher writes it to stderr before exiting; embedders may capture it
// instead.
type Diagnostics interface {
	// ResolutionFailure reports why the server could not be resolved and
	// which module roots were searched, in search order.
	ResolutionFailure(detail string, modules []string) error
}

// NopDiagnostics discards all reports.
type NopDiagnostics struct{}

func (NopDiagnostics) ResolutionFailure(string, []string) error { return nil }

// WriterDiagnostics writes the two-line failure report to W: one line with
// the failure detail, one with the module roots that were searched.
type WriterDiagnostics struct {
	W io.Writer
}

func (d WriterDiagnostics) ResolutionFailure(detail string, modules []string) error {
	if _, err := fmt.Fprintf(d.W, "Failed to start language server: %s\n", detail); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.W, "module search path: %v\n", modules)
	return err
}

var (
	_ Diagnostics = NopDiagnostics{}
	_ Diagnostics = WriterDiagnostics{}
)
