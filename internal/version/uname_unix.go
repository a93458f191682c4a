//go:build linux || darwin

package version

import "golang.org/x/sys/unix"

// fillUname overwrites the host fields with the kernel's uname values.
func fillUname(info *Info) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return
	}
	info.Sysname = unix.ByteSliceToString(uts.Sysname[:])
	info.Machine = unix.ByteSliceToString(uts.Machine[:])
	info.Release = unix.ByteSliceToString(uts.Release[:])
	info.OSVersion = unix.ByteSliceToString(uts.Version[:])
}
