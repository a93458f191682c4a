// Package bootstrap loads the small process-options file (castwave.yaml)
// read before the configuration manager takes over: where the configuration
// directory lives, the initial log level, and the metrics listen address.
//
// Load(path) applies defaults before unmarshalling, then validates. A
// missing file is not an error — every option has a default.
package bootstrap
