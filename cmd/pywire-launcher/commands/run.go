package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/entry"
	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/launch"
)

// RunCmd performs the launch explicitly. Bare invocation does the same
// thing through the root command.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve and start the language server",
	Long: `Resolve the language server against the module search order and replace
this process with it. On success this command does not return.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               Launch,
}

// Launch resolves the server and starts it; it returns only on failure.
// A resolution failure has already been written to stderr as the two-line
// report, so it exits with code 1 directly instead of handing the error
// back for a second print.
func Launch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	err = launch.NewLauncher(cfg).Run(cmd.Context())

	var resErr *entry.ResolutionError
	if errors.As(err, &resErr) {
		os.Exit(1)
	}
	return err
}
