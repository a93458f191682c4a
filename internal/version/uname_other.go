//go:build !linux && !darwin

package version

// fillUname has no uname source on this platform; Get's runtime-derived
// defaults stand.
func fillUname(_ *Info) {}
