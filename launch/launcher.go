package launch

import (
	"context"
	"os"

	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/entry"
	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/logger"
	"github.com/pywire-lang/pywire-launcher/pyenv"
)

// Launcher performs one launch attempt: locate the binary, assemble the
// search state, resolve the entry point, start the server.
type Launcher struct {
	Config *config.Config

	// Diag receives the deliberate failure report. Nil means discard;
	// NewLauncher wires stderr.
	Diag entry.Diagnostics
}

// NewLauncher returns a launcher for cfg that reports failures to stderr.
func NewLauncher(cfg *config.Config) *Launcher {
	return &Launcher{
		Config: cfg,
		Diag:   entry.WriterDiagnostics{W: os.Stderr},
	}
}

// Plan is everything a launch attempt decided before starting the server.
// Inspection commands print it instead of executing it.
type Plan struct {
	ExePath     string
	Layout      Layout
	State       *SearchState
	Venv        *pyenv.Env
	Interpreter string
	Entry       *entry.Entry
}

// Prepare assembles the search state for the given layout. Each step
// prepends, so later steps outrank earlier ones. Net module precedence,
// highest first: configured server root, extra module dirs, venv
// site-packages, dev src, bundled libs. Executable precedence: bundled bin,
// venv bin, then the inherited PATH.
func (l *Launcher) Prepare(layout Layout) (*SearchState, *pyenv.Env, error) {
	st := NewSearchState()
	st.PrependModule(layout.BundledLibs)

	var venv *pyenv.Env
	if !l.Config.Search.DisableDev && layout.DevCheckoutExists() {
		st.PrependModule(layout.DevServerSrc)
		env, err := pyenv.Locate(layout.DevServerRoot)
		if err != nil {
			return nil, nil, err
		}
		venv = env
		if venv != nil {
			if venv.SitePackages != "" {
				st.PrependModule(venv.SitePackages)
			}
			st.PrependExecutable(venv.BinDir)
			logger.Debugw("virtual environment found",
				logger.FieldVenv, venv.Root,
				"site_packages", venv.SitePackages,
			)
		}
	}

	st.PrependModules(l.Config.Search.ExtraModuleDirs)
	if root := l.Config.Server.Root; root != "" {
		st.PrependModule(root)
	}

	// Prepended last so it outranks the venv bin on PATH.
	if layout.BundledBinExists() {
		st.PrependExecutable(layout.BundledBin)
	}

	logger.Debugw("search state assembled",
		logger.FieldModuleDirs, st.Modules,
		logger.FieldExecDirs, st.Executables,
	)
	return st, venv, nil
}

// BuildPlan runs every step of a launch short of starting the server.
func (l *Launcher) BuildPlan(ctx context.Context) (*Plan, error) {
	exePath, err := SelfLocate()
	if err != nil {
		return &Plan{}, err
	}
	return l.PlanFor(ctx, exePath)
}

// PlanFor computes the plan as if the launcher binary were at exePath. On
// failure the returned plan still carries everything decided before the
// failing step, so inspection commands can show partial results.
func (l *Launcher) PlanFor(ctx context.Context, exePath string) (*Plan, error) {
	plan := &Plan{ExePath: exePath, Layout: ResolveLayout(exePath)}
	logger.Infow("launcher located",
		logger.FieldPath, exePath,
		logger.FieldDir, plan.Layout.LauncherDir,
	)

	st, venv, err := l.Prepare(plan.Layout)
	if err != nil {
		return plan, err
	}
	plan.State = st
	plan.Venv = venv

	interpreter, err := pyenv.FindInterpreter(venv, l.Config.Python.Interpreter)
	if err != nil {
		return plan, &entry.ResolutionError{Detail: err.Error(), Modules: st.Modules}
	}
	plan.Interpreter = interpreter

	args, err := l.Config.PythonArgs()
	if err != nil {
		return plan, err
	}

	environ := st.Environ(os.Environ())
	if logger.ShouldOutput(logger.CurrentVerbosity, logger.OutputEnviron) {
		logger.Debugw("child environment rendered", "environ", environ)
	}

	resolver := &entry.ServerResolver{
		Module:      l.Config.GetEntryModule(),
		Callable:    l.Config.GetEntryCallable(),
		Interpreter: interpreter,
		Environ:     environ,
		ExtraArgs:   args,
		Log:         logger.ComponentLogger("entry.resolver"),
	}
	e, err := resolver.Resolve(ctx, st.Modules)
	if err != nil {
		return plan, err
	}
	plan.Entry = e
	return plan, nil
}

// Run performs one full launch attempt. On success it does not return on
// unix platforms: the server takes over the process. A returned
// *entry.ResolutionError has already been written through Diag.
func (l *Launcher) Run(ctx context.Context) error {
	plan, err := l.BuildPlan(ctx)
	if err != nil {
		var resErr *entry.ResolutionError
		if errors.As(err, &resErr) {
			return l.report(resErr)
		}
		return err
	}

	logger.Infow("starting language server",
		logger.FieldInterpreter, plan.Entry.Interpreter,
		logger.FieldModule, plan.Entry.Module,
		logger.FieldCallable, plan.Entry.Callable,
		logger.FieldRoot, plan.Entry.Root,
		logger.FieldArgs, plan.Entry.Args,
	)
	logger.Cleanup()
	return plan.Entry.Start(ctx)
}

func (l *Launcher) report(resErr *entry.ResolutionError) error {
	if err := l.diag().ResolutionFailure(resErr.Detail, resErr.Modules); err != nil {
		return errors.Wrap(err, "writing failure report")
	}
	return resErr
}

func (l *Launcher) diag() entry.Diagnostics {
	if l.Diag != nil {
		return l.Diag
	}
	return entry.NopDiagnostics{}
}
