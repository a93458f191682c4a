// Package config manages the castwave configuration lifecycle: locating and
// parsing the versioned Server and Logger documents, refusing documents with
// unsupported or missing schema versions, blocking startup when legacy
// configuration artifacts are present, hot-reloading the logger document
// exactly once per actual file change, and maintaining a durable server
// identity across restarts.
//
// Manager is the entry point. Load runs the full sequence:
// legacy-artifact guard → logger reload gate → server document parse and
// version validation → identity resolution. Snapshot, Persist and Reload
// operate on the held document under one mutex, so an administrative
// snapshot is safe concurrently with a scheduled reload.
package config
