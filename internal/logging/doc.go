// Package logging is the castwave logging backend: a JSON slog facility
// with a runtime-adjustable level per tag, an output directory that can be
// repointed without restarting, and a set of named statistics streams.
//
// The backend is an explicit handle owned by main and injected into the
// config manager, which drives it during logger hot-reloads (ResetEnable,
// SetPath, SetStatPath, SetTagLevel). The rest of the process obtains its
// loggers through Tagged.
package logging
