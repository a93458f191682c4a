package config

import (
	"os"
	"path/filepath"
)

// File names under the base configuration directory. lastConfigFileName and
// its legacy spelling double as the legacy-artifact markers that block
// startup.
const (
	serverFileName           = "Server.xml"
	loggerFileName           = "Logger.xml"
	idStorageFileName        = ".server_id_storage"
	lastConfigFileName       = "LastConfig.xml"
	legacyLastConfigFileName = "last_config"
)

// Paths derives every file the manager touches from one base directory.
// All derivations are pure; Paths carries no hidden state.
type Paths struct {
	Base string
}

// ServerFile is the main server document.
func (p Paths) ServerFile() string { return filepath.Join(p.Base, serverFileName) }

// LoggerFile is the optional hot-reloadable logger document.
func (p Paths) LoggerFile() string { return filepath.Join(p.Base, loggerFileName) }

// IDStorageFile holds the persisted server identity.
func (p Paths) IDStorageFile() string { return filepath.Join(p.Base, idStorageFileName) }

// LastConfigFile is where PersistCurrent writes, and also the current-name
// legacy marker.
func (p Paths) LastConfigFile() string { return filepath.Join(p.Base, lastConfigFileName) }

// LegacyLastConfigFile is the older legacy marker name.
func (p Paths) LegacyLastConfigFile() string { return filepath.Join(p.Base, legacyLastConfigFileName) }

// DefaultBase returns the default configuration directory: "conf" next to
// the running binary, or a relative "conf" if the executable path cannot be
// determined.
func DefaultBase() string {
	exe, err := os.Executable()
	if err != nil {
		return "conf"
	}
	return filepath.Join(filepath.Dir(exe), "conf")
}
