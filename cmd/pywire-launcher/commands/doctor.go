package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/entry"
	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/launch"
	"github.com/pywire-lang/pywire-launcher/pyenv"
)

// DoctorCmd walks through everything a launch would decide and reports each
// finding. Exit code 0 means a launch would start the server.
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether a launch would succeed and why",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			pterm.Error.Printf("Configuration invalid: %v\n", err)
			return errors.New("configuration check failed")
		}
		pterm.Success.Println("Configuration valid")

		launcher := launch.NewLauncher(cfg)
		launcher.Diag = entry.NopDiagnostics{}

		plan, planErr := launcher.BuildPlan(cmd.Context())
		var resErr *entry.ResolutionError
		if planErr != nil && !errors.As(planErr, &resErr) {
			return planErr
		}

		pterm.Info.Printf("Launcher at %s\n", plan.ExePath)
		reportLocation("Bundled libs", plan.Layout.BundledLibs)
		reportLocation("Bundled bin", plan.Layout.BundledBin)
		reportLocation("Dev checkout", plan.Layout.DevServerRoot)

		if plan.Venv != nil {
			pterm.Success.Printf("Virtual environment at %s\n", plan.Venv.Root)
			if plan.Venv.SitePackages != "" {
				pterm.Success.Printf("Site-packages at %s\n", plan.Venv.SitePackages)
			} else {
				pterm.Warning.Println("Virtual environment has no site-packages")
			}
		} else {
			pterm.Info.Println("No virtual environment in play")
		}

		if plan.Interpreter != "" {
			if ver, err := pyenv.Probe(cmd.Context(), plan.Interpreter); err == nil {
				pterm.Success.Printf("Interpreter %s (Python %s)\n", plan.Interpreter, ver)
			} else {
				pterm.Warning.Printf("Interpreter %s did not answer a version probe: %v\n",
					plan.Interpreter, err)
			}
		} else {
			pterm.Error.Println("No usable Python interpreter found")
		}

		if plan.Entry != nil {
			reportManifest(plan.Entry.Root, plan.State.ExecutablePath(os.Getenv("PATH")))
			pterm.Success.Printf("Launch would start %s:%s from %s\n",
				plan.Entry.Module, plan.Entry.Callable, plan.Entry.Root)
			return nil
		}

		pterm.Error.Printf("Launch would fail: %s\n", resErr.Detail)
		return errors.New("launch would fail")
	},
}

func reportLocation(label, path string) {
	if dirExists(path) {
		pterm.Success.Printf("%s at %s\n", label, path)
	} else {
		pterm.Info.Printf("%s not present (%s)\n", label, path)
	}
}

func reportManifest(root, pathValue string) {
	m, err := entry.LoadManifest(root)
	if err != nil {
		pterm.Warning.Printf("Server manifest unreadable: %v\n", err)
		return
	}
	if m == nil {
		pterm.Info.Println("No server manifest")
		return
	}

	if m.Server.Name != "" {
		pterm.Success.Printf("Server manifest: %s %s\n", m.Server.Name, m.Server.Version)
	} else {
		pterm.Success.Println("Server manifest present")
	}
	if m.Python.Requires != "" {
		pterm.Info.Printf("Manifest requires Python %s\n", m.Python.Requires)
	}
	for _, name := range m.Requires.Executables {
		if found, ok := entry.LookupExecutable(pathValue, name); ok {
			pterm.Success.Printf("Helper %s at %s\n", name, found)
		} else {
			pterm.Warning.Printf("Helper %s not found on the assembled PATH\n", name)
		}
	}
}
