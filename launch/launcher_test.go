package launch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pywire-lang/pywire-launcher/config"
	"github.com/pywire-lang/pywire-launcher/entry"
	"github.com/pywire-lang/pywire-launcher/errors"
)

// extensionTree lays out <tmp>/ext/src and returns the launcher path inside
// it. The bundled directory and the sibling dev checkout hang off the same
// tree, mirroring a deployed editor extension.
func extensionTree(t *testing.T) (tmp, exe string) {
	t.Helper()
	tmp = t.TempDir()
	src := filepath.Join(tmp, "ext", "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	return tmp, filepath.Join(src, "pywire-launcher")
}

func bundledLibsAt(tmp string) string {
	return filepath.Join(tmp, "ext", "bundled", "libs")
}

func devRootAt(tmp string) string {
	return filepath.Join(tmp, "pywire-language-server")
}

// writeServerModule plants the default entry module under root.
func writeServerModule(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "pywire_language_server")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.py"), []byte("def start(): ...\n"), 0o644))
}

func fakeInterpreter(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter scripts need a shell")
	}
	path := filepath.Join(t.TempDir(), "python3")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho \"Python 3.12.4\"\n"), 0o755))
	return path
}

func TestPrepare_BundledOnly(t *testing.T) {
	tmp, exe := extensionTree(t)
	require.NoError(t, os.MkdirAll(bundledLibsAt(tmp), 0o755))

	l := &Launcher{Config: &config.Config{}}
	st, venv, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)

	assert.Equal(t, []string{bundledLibsAt(tmp)}, st.Modules,
		"with no dev checkout the bundled libs are the only module root")
	assert.Empty(t, st.Executables)
	assert.Nil(t, venv)
}

func TestPrepare_BundledRegisteredEvenWhenAbsent(t *testing.T) {
	tmp, exe := extensionTree(t)

	l := &Launcher{Config: &config.Config{}}
	st, _, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)

	assert.Equal(t, []string{bundledLibsAt(tmp)}, st.Modules,
		"the bundled root is registered without an existence check so failure reports show it")
}

func TestPrepare_FullPrecedence(t *testing.T) {
	tmp, exe := extensionTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(bundledLibsAt(tmp), "bin"), 0o755))

	devRoot := devRootAt(tmp)
	devSrc := filepath.Join(devRoot, "src")
	sitePackages := filepath.Join(devRoot, ".venv", "lib", "python3.12", "site-packages")
	venvBin := filepath.Join(devRoot, ".venv", "bin")
	require.NoError(t, os.MkdirAll(devSrc, 0o755))
	require.NoError(t, os.MkdirAll(sitePackages, 0o755))
	require.NoError(t, os.MkdirAll(venvBin, 0o755))

	cfg := &config.Config{}
	cfg.Server.Root = filepath.Join(tmp, "opt-server")
	cfg.Search.ExtraModuleDirs = []string{"/x1", "/x2"}

	l := &Launcher{Config: cfg}
	st, venv, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)
	require.NotNil(t, venv)

	assert.Equal(t, []string{
		cfg.Server.Root,
		"/x1", "/x2",
		sitePackages,
		devSrc,
		bundledLibsAt(tmp),
	}, st.Modules)
	assert.Equal(t, []string{
		filepath.Join(bundledLibsAt(tmp), "bin"),
		venvBin,
	}, st.Executables, "bundled helpers outrank the venv bin on PATH")
}

func TestPrepare_DisableDev(t *testing.T) {
	tmp, exe := extensionTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(devRootAt(tmp), "src"), 0o755))

	cfg := &config.Config{}
	cfg.Search.DisableDev = true

	l := &Launcher{Config: cfg}
	st, venv, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)

	assert.Equal(t, []string{bundledLibsAt(tmp)}, st.Modules)
	assert.Nil(t, venv)
}

func TestPrepare_DevWithoutVenv(t *testing.T) {
	tmp, exe := extensionTree(t)
	devSrc := filepath.Join(devRootAt(tmp), "src")
	require.NoError(t, os.MkdirAll(devSrc, 0o755))

	l := &Launcher{Config: &config.Config{}}
	st, venv, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)

	assert.Equal(t, []string{devSrc, bundledLibsAt(tmp)}, st.Modules)
	assert.Empty(t, st.Executables, "no venv means the environment contributes nothing")
	assert.Nil(t, venv)
}

func TestPrepare_VenvWithoutSitePackages(t *testing.T) {
	tmp, exe := extensionTree(t)
	devRoot := devRootAt(tmp)
	require.NoError(t, os.MkdirAll(filepath.Join(devRoot, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(devRoot, ".venv", "lib", "python3.12"), 0o755))

	l := &Launcher{Config: &config.Config{}}
	st, venv, err := l.Prepare(ResolveLayout(exe))
	require.NoError(t, err)
	require.NotNil(t, venv)

	assert.Equal(t, []string{filepath.Join(devRoot, "src"), bundledLibsAt(tmp)}, st.Modules,
		"a venv without site-packages contributes no module root")
	assert.Equal(t, []string{filepath.Join(devRoot, ".venv", "bin")}, st.Executables,
		"its bin directory is still registered")
}

func TestPlanFor_ResolvesFromBundled(t *testing.T) {
	tmp, exe := extensionTree(t)
	writeServerModule(t, bundledLibsAt(tmp))

	cfg := &config.Config{}
	cfg.Python.Interpreter = fakeInterpreter(t)

	l := &Launcher{Config: cfg}
	plan, err := l.PlanFor(context.Background(), exe)
	require.NoError(t, err)

	require.NotNil(t, plan.Entry)
	assert.Equal(t, bundledLibsAt(tmp), plan.Entry.Root)
	assert.Equal(t, "pywire_language_server.server", plan.Entry.Module)
	assert.Equal(t, "start", plan.Entry.Callable)
	assert.Equal(t, cfg.Python.Interpreter, plan.Interpreter)

	var pythonpath string
	for _, kv := range plan.Entry.Env {
		if strings.HasPrefix(kv, "PYTHONPATH=") {
			pythonpath = kv
		}
	}
	assert.Contains(t, pythonpath, bundledLibsAt(tmp))
}

func TestPlanFor_NoInterpreter(t *testing.T) {
	tmp, exe := extensionTree(t)
	writeServerModule(t, bundledLibsAt(tmp))
	t.Setenv("PATH", t.TempDir())

	l := &Launcher{Config: &config.Config{}}
	plan, err := l.PlanFor(context.Background(), exe)
	require.Error(t, err)

	var resErr *entry.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, plan.State.Modules, resErr.Modules,
		"the report carries the assembled module roots even when the interpreter is missing")
	assert.Empty(t, plan.Interpreter)
}

func TestPlanFor_ModuleMissing(t *testing.T) {
	tmp, exe := extensionTree(t)
	require.NoError(t, os.MkdirAll(bundledLibsAt(tmp), 0o755))

	cfg := &config.Config{}
	cfg.Python.Interpreter = fakeInterpreter(t)

	l := &Launcher{Config: cfg}
	plan, err := l.PlanFor(context.Background(), exe)
	require.Error(t, err)

	var resErr *entry.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Detail, "pywire_language_server.server")
	assert.Equal(t, []string{bundledLibsAt(tmp)}, resErr.Modules)
	assert.Nil(t, plan.Entry)
}

func TestRun_ReportsResolutionFailure(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer
	l := &Launcher{Config: &config.Config{}, Diag: entry.WriterDiagnostics{W: &buf}}

	err := l.Run(context.Background())
	require.Error(t, err)

	var resErr *entry.ResolutionError
	require.ErrorAs(t, err, &resErr)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Failed to start language server: "))
	assert.Contains(t, lines[1], filepath.Join("bundled", "libs"),
		"the searched roots name where the bundle was expected")
}

func TestRun_AbruptErrorIsNotReported(t *testing.T) {
	cfg := &config.Config{}
	cfg.Python.Interpreter = fakeInterpreter(t)
	cfg.Python.Args = `-X "dev` // unbalanced quote

	var buf bytes.Buffer
	l := &Launcher{Config: cfg, Diag: entry.WriterDiagnostics{W: &buf}}

	err := l.Run(context.Background())
	require.Error(t, err)

	var resErr *entry.ResolutionError
	assert.False(t, errors.As(err, &resErr), "argument parse failures are abrupt")
	assert.Empty(t, buf.String(), "no deliberate report for abrupt failures")
}

func TestLauncher_NilDiagIsSafe(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	l := &Launcher{Config: &config.Config{}}
	err := l.Run(context.Background())
	require.Error(t, err)
}

func TestNewLauncher_ReportsToStderr(t *testing.T) {
	l := NewLauncher(&config.Config{})
	d, ok := l.Diag.(entry.WriterDiagnostics)
	require.True(t, ok)
	assert.Equal(t, os.Stderr, d.W)
}
