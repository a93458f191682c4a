package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// logFileName is the file the backend writes under the configured directory.
const logFileName = "castwave.log"

// StatStreams are the named statistics log streams the logger configuration
// pushes its directory to. The set is fixed at compile time; SetStatPath
// rejects anything else.
var StatStreams = []string{
	"webrtc_session",
	"webrtc_request",
	"webrtc_viewers",
	"hls_session",
	"hls_request",
	"hls_viewers",
}

// defaultLevel applies to every tag that has no explicit level configured.
const defaultLevel = slog.LevelInfo

// Backend is the process-wide logging facility. All methods are safe for
// concurrent use.
type Backend struct {
	mu       sync.Mutex
	out      io.Writer
	file     *os.File
	dir      string
	levels   map[string]*slog.LevelVar
	explicit map[string]bool
	stats    map[string]string
}

// NewBackend returns a Backend writing to stdout at the default level.
func NewBackend() *Backend {
	b := &Backend{
		out:      os.Stdout,
		levels:   make(map[string]*slog.LevelVar),
		explicit: make(map[string]bool),
		stats:    make(map[string]string, len(StatStreams)),
	}
	for _, s := range StatStreams {
		b.stats[s] = ""
	}
	return b
}

// Tagged returns a logger for the given tag. The logger's level follows any
// later SetTagLevel call for the same tag.
func (b *Backend) Tagged(tag string) *slog.Logger {
	lv := b.level(tag)
	h := slog.NewJSONHandler(writerProxy{b}, &slog.HandlerOptions{Level: lv})
	return slog.New(h).With("tag", tag)
}

// ResetEnable drops every explicitly configured tag level back to the
// default. Called at the start of each logger configuration reload so a
// removed <Tag> entry does not keep its old level.
func (b *Backend) ResetEnable() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for tag := range b.explicit {
		b.levels[tag].Set(defaultLevel)
		delete(b.explicit, tag)
	}
}

// SetPath points the backend's output at dir, creating the directory and
// opening (or appending to) its log file. The previous file, if any, is
// closed.
func (b *Backend) SetPath(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("logging: create log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open log file in %q: %w", dir, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file != nil {
		_ = b.file.Close()
	}
	b.file = f
	b.out = f
	b.dir = dir
	return nil
}

// Path returns the currently configured log directory, or "" while the
// backend still writes to stdout.
func (b *Backend) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir
}

// SetTagLevel applies a configured level to one tag. The level string must
// be one of debug, info, warn, error.
func (b *Backend) SetTagLevel(tag, level string) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	lv := b.level(tag)
	lv.Set(parsed)

	b.mu.Lock()
	b.explicit[tag] = true
	b.mu.Unlock()
	return nil
}

// TagLevel reports the effective level for a tag.
func (b *Backend) TagLevel(tag string) slog.Level {
	return b.level(tag).Level()
}

// SetStatPath points one named statistics stream at dir.
func (b *Backend) SetStatPath(stream, dir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.stats[stream]; !ok {
		return fmt.Errorf("logging: unknown statistics stream %q", stream)
	}
	b.stats[stream] = dir
	return nil
}

// StatPath returns the directory configured for one statistics stream.
func (b *Backend) StatPath(stream string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, ok := b.stats[stream]
	return dir, ok
}

// Close releases the log file, if one is open.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	b.out = os.Stdout
	b.dir = ""
	return err
}

// level returns the LevelVar for a tag, creating it at the default level on
// first use so Tagged and SetTagLevel share one variable per tag.
func (b *Backend) level(tag string) *slog.LevelVar {
	b.mu.Lock()
	defer b.mu.Unlock()
	lv, ok := b.levels[tag]
	if !ok {
		lv = new(slog.LevelVar)
		lv.Set(defaultLevel)
		b.levels[tag] = lv
	}
	return lv
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q: want debug|info|warn|error", s)
	}
}

// writerProxy routes handler output through the backend's current writer so
// SetPath takes effect for loggers created before it was called.
type writerProxy struct {
	b *Backend
}

func (w writerProxy) Write(p []byte) (int, error) {
	w.b.mu.Lock()
	out := w.b.out
	w.b.mu.Unlock()
	return out.Write(p)
}
