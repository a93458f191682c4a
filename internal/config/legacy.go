package config

import "os"

// CheckLegacyArtifacts refuses to proceed when an obsolete configuration
// artifact from the pre-API-storage layout is present under the base
// directory. Purely a gate: no side effects, and it must run before any
// document is parsed. If both marker names exist, the current name is the
// one reported.
func CheckLegacyArtifacts(p Paths) error {
	current := isFile(p.LastConfigFile())
	legacy := isFile(p.LegacyLastConfigFile())

	if !current && !legacy {
		return nil
	}

	name := legacyLastConfigFileName
	if current {
		name = lastConfigFileName
	}
	return newConfigError(
		"legacy configuration file %q found in %q; migrate it manually or delete it, then start castwave again",
		name, p.Base)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
