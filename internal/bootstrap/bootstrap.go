package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the options file.
const (
	DefaultLogLevel    = "info"
	DefaultMetricsAddr = ":9595"
)

// Options are the process-level settings read at startup, before any
// configuration document is parsed.
type Options struct {
	// ConfigDir is the base configuration directory. Empty means the
	// manager's default ("conf" next to the binary).
	ConfigDir string `yaml:"config_dir"`

	// LogLevel is the initial process log level: debug | info | warn | error.
	// Logger documents may override levels per tag later.
	LogLevel string `yaml:"log_level"`

	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the metrics server.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Load reads the options file at path. A missing file yields the defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap: read %q: %w", path, err)
	}

	opts := defaults()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("bootstrap: parse yaml: %w", err)
	}

	if err := validate(opts); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return opts, nil
}

// defaults returns Options pre-populated with default values.
func defaults() *Options {
	return &Options{
		LogLevel:    DefaultLogLevel,
		MetricsAddr: DefaultMetricsAddr,
	}
}

// validate checks structural constraints on the parsed options.
func validate(opts *Options) error {
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q unknown: want debug|info|warn|error", opts.LogLevel)
	}
	return nil
}
