// Package entry resolves the language server's entry point against an
// ordered list of module roots and starts it.
package entry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/pywire-lang/pywire-launcher/errors"
	"github.com/pywire-lang/pywire-launcher/logger"
	"github.com/pywire-lang/pywire-launcher/pyenv"
)

// ResolutionError is the deliberate outcome of a failed resolution attempt.
// It carries the ordered module roots that were searched so the failure
// report can show where the server was expected.
type ResolutionError struct {
	Detail  string
	Modules []string
}

func (e *ResolutionError) Error() string { return e.Detail }

// Resolver turns an ordered list of module roots into a runnable Entry.
// Failures a user can act on are reported as *ResolutionError; anything
// else indicates an environment too broken for a deliberate report.
type Resolver interface {
	Resolve(ctx context.Context, roots []string) (*Entry, error)
}

// Entry is a fully resolved server start: the interpreter to run, the
// module and callable to import, and the environment to do it in.
type Entry struct {
	Interpreter string
	Module      string
	Callable    string
	Root        string   // module root the entry was found under
	Env         []string // complete child environment
	Args        []string // extra interpreter arguments, placed before -c
}

// ServerResolver resolves the configured entry module against module roots
// in order, taking the first root that contains it. When the winning root
// carries a server manifest, the manifest's entry override and requirement
// checks are applied before the entry is returned.
type ServerResolver struct {
	Module      string
	Callable    string
	Interpreter string
	Environ     []string
	ExtraArgs   []string
	Log         *zap.SugaredLogger
}

var _ Resolver = (*ServerResolver)(nil)

func (r *ServerResolver) Resolve(ctx context.Context, roots []string) (*Entry, error) {
	log := r.logger()
	for _, root := range roots {
		if !moduleAt(root, r.Module) {
			log.Debugw("module root skipped", logger.FieldRoot, root, logger.FieldModule, r.Module)
			continue
		}

		entry := &Entry{
			Interpreter: r.Interpreter,
			Module:      r.Module,
			Callable:    r.Callable,
			Root:        root,
			Env:         r.Environ,
			Args:        r.ExtraArgs,
		}

		manifest, err := LoadManifest(root)
		if err != nil {
			return nil, err
		}
		if manifest != nil {
			if err := r.applyManifest(ctx, entry, manifest, roots); err != nil {
				return nil, err
			}
		}

		log.Infow("entry resolved",
			logger.FieldRoot, root,
			logger.FieldModule, entry.Module,
			logger.FieldCallable, entry.Callable,
		)
		return entry, nil
	}

	return nil, &ResolutionError{
		Detail:  fmt.Sprintf("no module root contains %s", r.Module),
		Modules: roots,
	}
}

func (r *ServerResolver) logger() *zap.SugaredLogger {
	if r.Log != nil {
		return r.Log
	}
	return logger.Logger
}

// moduleAt reports whether root contains the dotted module, either as a
// <module>.py file or as a package directory with __init__.py.
func moduleAt(root, module string) bool {
	rel := filepath.Join(strings.Split(module, ".")...)
	if isRegularFile(filepath.Join(root, rel+".py")) {
		return true
	}
	return isRegularFile(filepath.Join(root, rel, "__init__.py"))
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// applyManifest folds manifest overrides into the entry and verifies the
// manifest's requirements. Requirement violations are deliberate failures.
func (r *ServerResolver) applyManifest(ctx context.Context, e *Entry, m *Manifest, roots []string) error {
	if m.Server.Module != "" {
		e.Module = m.Server.Module
		if !moduleAt(e.Root, e.Module) {
			return &ResolutionError{
				Detail:  fmt.Sprintf("manifest entry %s not present under %s", e.Module, e.Root),
				Modules: roots,
			}
		}
	}
	if m.Server.Callable != "" {
		e.Callable = m.Server.Callable
	}

	if m.Python.Requires != "" {
		if err := r.checkPythonRequirement(ctx, m.Python.Requires, roots); err != nil {
			return err
		}
	}

	for _, name := range m.Requires.Executables {
		if _, ok := LookupExecutable(envValue(e.Env, "PATH"), name); !ok {
			return &ResolutionError{
				Detail:  fmt.Sprintf("required executable %s not found on the assembled PATH", name),
				Modules: roots,
			}
		}
	}
	return nil
}

func (r *ServerResolver) checkPythonRequirement(ctx context.Context, constraint string, roots []string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "parsing manifest python requirement %q", constraint)
	}
	version, err := pyenv.Probe(ctx, r.Interpreter)
	if err != nil {
		return errors.Wrap(err, "checking manifest python requirement")
	}
	if !c.Check(version) {
		return &ResolutionError{
			Detail:  fmt.Sprintf("interpreter reports %s but the server requires %s", version, constraint),
			Modules: roots,
		}
	}
	return nil
}

// LookupExecutable resolves name against the directories in pathValue, a
// PATH-style list. Manifest requirements are checked against the assembled
// child PATH rather than the launcher's own, since the child process is the
// one that needs to find them.
func LookupExecutable(pathValue, name string) (string, bool) {
	for _, dir := range filepath.SplitList(pathValue) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() && executableMode(info.Mode()) {
			return candidate, true
		}
	}
	return "", false
}

func envValue(env []string, key string) string {
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if k == key || (runtime.GOOS == "windows" && strings.EqualFold(k, key)) {
			return v
		}
	}
	return ""
}

func executableMode(mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		return true
	}
	return mode&0o111 != 0
}
