package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pywire-lang/pywire-launcher/cmd/pywire-launcher/commands"
	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pywire-launcher",
	Short: "Launcher for the PyWire language server",
	Long: `pywire-launcher locates a PyWire language server installation and replaces
itself with the server process. Editors invoke it as their LSP command; on
success it never returns and the server owns stdio.

Invoked without a subcommand it performs the launch. The inspection
subcommands show what a launch would do without starting anything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Editors append transport flags like --stdio to the server command.
	// stdio is the only transport, so unknown flags are accepted and
	// ignored rather than failing the launch.
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               commands.Launch,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")

		// Flags win; the config file supplies defaults. A broken config is
		// not fatal here since the command itself reports it properly.
		if cfg, err := config.Load(); err == nil {
			if verbosity == 0 {
				verbosity = cfg.Log.Verbosity
			}
			jsonLogs = jsonLogs || cfg.Log.JSON
		}
		return logger.Initialize(verbosity, jsonLogs)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v",
		"Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().Bool("json-logs", false,
		"Emit logs as JSON instead of plain text")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.PathsCmd)
	rootCmd.AddCommand(commands.DoctorCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
