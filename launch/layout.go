package launch

import (
	"os"
	"path/filepath"

	"github.com/pywire-lang/pywire-launcher/errors"
)

// Layout holds the well-known locations derived from the launcher binary's
// own directory. All fields are computed paths; apart from the development
// checkout none of them is required to exist.
type Layout struct {
	// LauncherDir is the directory holding the launcher executable.
	LauncherDir string

	// BundledLibs is <LauncherDir>/../bundled/libs, the module root shipped
	// inside the editor extension. Always registered, even when absent, so a
	// failure report shows where the bundle was expected.
	BundledLibs string

	// BundledBin is <BundledLibs>/bin, helper executables shipped with the
	// bundle. Registered only when present.
	BundledBin string

	// DevServerRoot is <LauncherDir>/../../pywire-language-server, the
	// sibling development checkout of the server.
	DevServerRoot string

	// DevServerSrc is <DevServerRoot>/src, the in-tree module root used when
	// working on the server itself.
	DevServerSrc string
}

// SelfLocate returns the absolute, symlink-resolved path of the running
// launcher binary. The process cannot continue without it since every
// search location is derived from it.
func SelfLocate() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locating launcher executable")
	}
	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", errors.Wrapf(err, "resolving launcher path %q", exe)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// ResolveLayout computes the layout relative to the launcher executable
// path. It is a pure path computation and performs no filesystem access.
func ResolveLayout(exePath string) Layout {
	dir := filepath.Dir(exePath)
	libs := filepath.Join(dir, "..", "bundled", "libs")
	root := filepath.Join(dir, "..", "..", "pywire-language-server")
	return Layout{
		LauncherDir:   dir,
		BundledLibs:   libs,
		BundledBin:    filepath.Join(libs, "bin"),
		DevServerRoot: root,
		DevServerSrc:  filepath.Join(root, "src"),
	}
}

// DevCheckoutExists reports whether the development checkout root is present
// on disk. The dev source root and its virtual environment are only
// consulted when it is.
func (l Layout) DevCheckoutExists() bool {
	info, err := os.Stat(l.DevServerRoot)
	return err == nil && info.IsDir()
}

// BundledBinExists reports whether the bundled helper directory is present.
func (l Layout) BundledBinExists() bool {
	info, err := os.Stat(l.BundledBin)
	return err == nil && info.IsDir()
}
