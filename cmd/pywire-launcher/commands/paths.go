package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/entry"
	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/launch"
)

var pathsJSON bool

// PathsCmd prints the search order a launch would use, without starting
// anything. Inspection output goes to stdout; only an actual launch keeps
// stdout reserved for the server.
var PathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the search order a launch would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		launcher := launch.NewLauncher(cfg)
		launcher.Diag = entry.NopDiagnostics{}

		plan, err := launcher.BuildPlan(cmd.Context())
		var resErr *entry.ResolutionError
		if err != nil && !errors.As(err, &resErr) {
			return err
		}

		if pathsJSON {
			return printPlanJSON(cmd.OutOrStdout(), plan, resErr)
		}
		printPlan(plan, resErr)
		return nil
	},
}

func init() {
	PathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Output as JSON")
}

func printPlan(plan *launch.Plan, resErr *entry.ResolutionError) {
	fmt.Printf("Launcher: %s\n", plan.ExePath)

	fmt.Printf("\nModule roots (highest precedence first):\n")
	for i, root := range plan.State.Modules {
		marker := ""
		if plan.Entry != nil && root == plan.Entry.Root {
			marker = pterm.LightGreen("  <- entry resolves here")
		} else if !dirExists(root) {
			marker = pterm.Gray("  (absent)")
		}
		fmt.Printf("  %d. %s%s\n", i+1, root, marker)
	}

	if len(plan.State.Executables) > 0 {
		fmt.Printf("\nExecutable dirs prepended to PATH:\n")
		for i, dir := range plan.State.Executables {
			fmt.Printf("  %d. %s\n", i+1, dir)
		}
	}

	if plan.Venv != nil {
		fmt.Printf("\nVirtual environment: %s\n", plan.Venv.Root)
	}
	if plan.Interpreter != "" {
		fmt.Printf("Interpreter: %s\n", plan.Interpreter)
	}

	fmt.Println()
	if plan.Entry != nil {
		pterm.Success.Printf("Entry %s:%s resolves under %s\n",
			plan.Entry.Module, plan.Entry.Callable, plan.Entry.Root)
	}
	if resErr != nil {
		pterm.Warning.Printf("Launch would fail: %s\n", resErr.Detail)
	}
}

type planView struct {
	Launcher       string   `json:"launcher"`
	ModuleRoots    []string `json:"module_roots"`
	ExecutableDirs []string `json:"executable_dirs,omitempty"`
	Venv           string   `json:"venv,omitempty"`
	Interpreter    string   `json:"interpreter,omitempty"`
	ResolvedRoot   string   `json:"resolved_root,omitempty"`
	Module         string   `json:"module,omitempty"`
	Callable       string   `json:"callable,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func printPlanJSON(w io.Writer, plan *launch.Plan, resErr *entry.ResolutionError) error {
	view := planView{
		Launcher:       plan.ExePath,
		ModuleRoots:    plan.State.Modules,
		ExecutableDirs: plan.State.Executables,
		Interpreter:    plan.Interpreter,
	}
	if plan.Venv != nil {
		view.Venv = plan.Venv.Root
	}
	if plan.Entry != nil {
		view.ResolvedRoot = plan.Entry.Root
		view.Module = plan.Entry.Module
		view.Callable = plan.Entry.Callable
	}
	if resErr != nil {
		view.Error = resErr.Detail
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding paths output")
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
