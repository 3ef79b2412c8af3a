// Package pyenv discovers Python environments for the launcher: the
// development checkout's virtual environment and a usable interpreter.
package pyenv

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pywire-lang/pywire-launcher/errors"
)

// Env describes a discovered virtual environment. SitePackages is empty when
// the environment exists but no site-packages directory was found; BinDir is
// always set for an existing environment.
type Env struct {
	Root         string // the .venv directory itself
	SitePackages string // lib/<pythonX.Y>/site-packages, or "" when not found
	BinDir       string // bin directory holding the interpreter and scripts
}

// Locate looks for a virtual environment at <devRoot>/.venv and inspects it.
// A missing environment is not an error: Locate returns (nil, nil). An
// environment without a lib directory or without site-packages is still
// returned so its bin directory can be used.
//
// The lib directory is scanned for the first entry named python* and
// site-packages is looked for inside that entry only. Environments carrying
// multiple Python versions resolve to whichever sorts first; rebuilding the
// environment with a single version is the supported setup.
func Locate(devRoot string) (*Env, error) {
	venv := filepath.Join(devRoot, ".venv")
	if _, err := os.Stat(venv); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "inspecting virtual environment %q", venv)
	}

	env := &Env{
		Root:   venv,
		BinDir: filepath.Join(venv, "bin"),
	}

	lib := filepath.Join(venv, "lib")
	dirents, err := os.ReadDir(lib)
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, errors.Wrapf(err, "reading %q", lib)
	}

	for _, dirent := range dirents {
		if !strings.HasPrefix(dirent.Name(), "python") {
			continue
		}
		sitePackages := filepath.Join(lib, dirent.Name(), "site-packages")
		if _, err := os.Stat(sitePackages); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return nil, errors.Wrapf(err, "inspecting %q", sitePackages)
		}
		env.SitePackages = sitePackages
		break
	}
	return env, nil
}
