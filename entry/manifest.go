package entry

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pywire-lang/pywire-launcher/errors"
)

// ManifestName is the optional manifest looked for in the winning module
// root. Deployments ship it next to the server package to pin the entry
// point and declare runtime requirements.
const ManifestName = "pywire-server.toml"

// Manifest describes a deployed server build.
type Manifest struct {
	Server   ManifestServer   `toml:"server"`
	Python   ManifestPython   `toml:"python"`
	Requires ManifestRequires `toml:"requires"`
}

// ManifestServer identifies the build and optionally overrides the entry
// point the launcher was configured with.
type ManifestServer struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Module   string `toml:"module"`
	Callable string `toml:"callable"`
}

// ManifestPython constrains the interpreter, e.g. ">= 3.9".
type ManifestPython struct {
	Requires string `toml:"requires"`
}

// ManifestRequires lists helper executables the server expects to find on
// its PATH.
type ManifestRequires struct {
	Executables []string `toml:"executables"`
}

// LoadManifest reads the manifest in root. A missing manifest is not an
// error and returns (nil, nil); a malformed one is.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestName)
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading server manifest %q", path)
	}
	return &m, nil
}
