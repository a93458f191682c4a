package config

import "os"

// CheckResult classifies one observation of the watched file.
type CheckResult int

const (
	// FileMissing: the file could not be stat'ed. The recorded timestamp
	// has been reset; the caller should skip the reload and fall back to
	// defaults.
	FileMissing CheckResult = iota
	// FileUnchanged: the modification time matches the recorded value
	// exactly; skip the reload.
	FileUnchanged
	// FileModified: the modification time differs (including the first
	// observation ever). Reload, then commit the returned stamp with
	// Record.
	FileModified
)

// ModTime is a modification timestamp split into whole seconds and the
// sub-second remainder. Both fields take part in equality.
type ModTime struct {
	Sec  int64
	Nsec int64
}

// ChangeDetector remembers the last recorded modification time of one
// watched file. The zero value starts with a zeroed baseline, so the first
// Check on an existing file reports FileModified.
//
// A ChangeDetector belongs to a single watcher; it relies on program-order
// visibility only and takes no lock of its own.
type ChangeDetector struct {
	last ModTime
}

// Check stats path and compares its modification time against the recorded
// value using exact equality on both fields. For FileModified, the returned
// stamp must be passed to Record once the reload has fully succeeded —
// recording early would swallow the retry after a failed reload.
func (d *ChangeDetector) Check(path string) (CheckResult, ModTime) {
	info, err := os.Stat(path)
	if err != nil {
		d.Reset()
		return FileMissing, ModTime{}
	}

	mt := info.ModTime()
	observed := ModTime{Sec: mt.Unix(), Nsec: int64(mt.Nanosecond())}

	if observed == d.last {
		return FileUnchanged, observed
	}
	return FileModified, observed
}

// Record commits an observed stamp after a successful reload.
func (d *ChangeDetector) Record(t ModTime) {
	d.last = t
}

// Reset zeroes the recorded timestamp.
func (d *ChangeDetector) Reset() {
	d.last = ModTime{}
}
