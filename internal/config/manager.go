package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/castwave/castwave/internal/document"
	"github.com/castwave/castwave/internal/logging"
	"github.com/castwave/castwave/internal/monitor"
	"github.com/castwave/castwave/internal/version"
)

// Document names as they appear in the version registry and as the XML root
// elements of their files.
const (
	serverDocumentName = "Server"
	loggerDocumentName = "Logger"
)

// Manager coordinates the configuration lifecycle. It owns the in-memory
// server document and the resolved server identity for the process
// lifetime; both are guarded by one mutex shared by snapshot, reload and
// persist. The logger reload gate runs under its own mutex so a periodic
// logger check is safe concurrently with a snapshot.
type Manager struct {
	registry *VersionRegistry
	identity *IdentityStore
	backend  *logging.Backend
	monitor  *monitor.Monitor
	info     version.Info
	log      *slog.Logger

	loggerMu sync.Mutex
	detector ChangeDetector

	mu       sync.Mutex
	paths    Paths
	server   *document.Document
	serverID string
}

// New creates a Manager driving the given logging backend and monitoring
// sink.
func New(backend *logging.Backend, mon *monitor.Monitor) *Manager {
	log := backend.Tagged("Config")
	return &Manager{
		registry: NewVersionRegistry(),
		identity: NewIdentityStore(log),
		backend:  backend,
		monitor:  mon,
		info:     version.Get(),
		log:      log,
	}
}

// Load runs the full configuration sequence for the given base directory
// (or the default directory when base is empty): legacy-artifact guard,
// logger reload gate, server document parse and version validation,
// identity resolution. Committed state (base path, server document,
// identity) is only replaced after every step has succeeded, so a failed
// load leaves the previous good state in place.
func (m *Manager) Load(base string) error {
	if base == "" {
		base = DefaultBase()
	}
	if err := m.load(Paths{Base: base}); err != nil {
		m.monitor.ConfigReload(monitor.ResultError)
		return err
	}
	m.monitor.ConfigReload(monitor.ResultOK)
	return nil
}

func (m *Manager) load(p Paths) error {
	if err := CheckLegacyArtifacts(p); err != nil {
		return err
	}
	if err := m.checkLoggerConfig(p); err != nil {
		return err
	}

	doc, ver, err := m.loadServerDocument(p)
	if err != nil {
		return err
	}

	id := m.identity.Resolve(p)
	doc.SetID(id)

	m.mu.Lock()
	m.paths = p
	m.server = doc
	m.serverID = id
	m.mu.Unlock()

	m.monitor.SetDocumentVersion(ver)
	return nil
}

// Reload re-runs the full Load sequence against the previously recorded
// base directory, including a fresh legacy-artifact check.
func (m *Manager) Reload() error {
	m.mu.Lock()
	base := m.paths.Base
	m.mu.Unlock()

	if base == "" {
		return newConfigError("no configuration has been loaded yet")
	}
	return m.Load(base)
}

// ServerID returns the resolved server identity, or "" before the first
// successful Load.
func (m *Manager) ServerID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serverID
}

// CheckLoggerConfig runs the logger hot-reload gate against the loaded base
// directory. Safe to invoke on a timer or from a file watcher; with no
// observable file change it does nothing. Before the first successful Load
// it is a no-op.
func (m *Manager) CheckLoggerConfig() error {
	m.mu.Lock()
	p := m.paths
	m.mu.Unlock()

	if p.Base == "" {
		return nil
	}
	return m.checkLoggerConfig(p)
}

// checkLoggerConfig reloads the logger document when, and only when, its
// modification time differs from the recorded value. The new timestamp is
// recorded after the reload fully succeeds, so a failed reload retries on
// the next check.
func (m *Manager) checkLoggerConfig(p Paths) error {
	m.loggerMu.Lock()
	defer m.loggerMu.Unlock()

	path := p.LoggerFile()
	result, stamp := m.detector.Check(path)
	switch result {
	case FileMissing:
		// The logger document is optional.
		m.log.Warn("no logger configuration found; continuing with default log settings", "path", path)
		return nil
	case FileUnchanged:
		return nil
	}

	if err := m.reloadLoggerConfig(path); err != nil {
		m.monitor.LoggerReload(monitor.ResultError)
		return err
	}
	m.detector.Record(stamp)
	m.monitor.LoggerReload(monitor.ResultOK)
	return nil
}

func (m *Manager) reloadLoggerConfig(path string) error {
	m.backend.ResetEnable()

	doc, err := document.Parse(path, loggerDocumentName)
	if err != nil {
		return wrapConfigError(err, "could not load the logger configuration %q", path)
	}
	if err := m.registry.Validate(loggerDocumentName, documentVersion(doc)); err != nil {
		return err
	}

	// An absent <LogPath> keeps the backend on stdout.
	if dir := doc.LogPath(); dir != "" {
		if err := m.backend.SetPath(dir); err != nil {
			return wrapConfigError(err, "could not apply the log directory %q", dir)
		}
		m.monitor.SetLogPath(dir)
		for _, stream := range logging.StatStreams {
			if err := m.backend.SetStatPath(stream, dir); err != nil {
				return wrapConfigError(err, "could not apply the log directory %q to stream %q", dir, stream)
			}
		}
		m.log.Info("log files will be written to the configured directory", "path", dir)
	}

	for _, tag := range doc.Tags() {
		if err := m.backend.SetTagLevel(tag.Name, tag.Level); err != nil {
			return wrapConfigError(err, "could not set the log level for tag %q", tag.Name)
		}
	}
	return nil
}

func (m *Manager) loadServerDocument(p Paths) (*document.Document, int, error) {
	path := p.ServerFile()
	m.log.Info("loading server configuration", "path", path)

	doc, err := document.Parse(path, serverDocumentName)
	if err != nil {
		return nil, 0, wrapConfigError(err, "could not load the server configuration %q", path)
	}
	ver := documentVersion(doc)
	if err := m.registry.Validate(serverDocumentName, ver); err != nil {
		return nil, 0, err
	}
	return doc, ver, nil
}

// SnapshotAsJSON serializes the current in-memory server document to JSON.
// Read-only: no mutation, no re-validation.
func (m *Manager) SnapshotAsJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.server == nil {
		return nil, newConfigError("no configuration has been loaded yet")
	}
	return m.server.JSON()
}

// SnapshotAsXML serializes the current in-memory server document to XML.
func (m *Manager) SnapshotAsXML() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.server == nil {
		return "", newConfigError("no configuration has been loaded yet")
	}
	return m.server.XML()
}

// Persist writes a full self-describing rendering of doc (declaration plus
// a generated-by comment naming the build and host) to dest.
func (m *Manager) Persist(doc *document.Document, dest string) error {
	rendered, err := doc.Render(m.generatedComment(time.Now()))
	if err != nil {
		return wrapConfigError(err, "could not render the configuration for %q", dest)
	}
	if err := os.WriteFile(dest, []byte(rendered), 0o644); err != nil {
		return wrapConfigError(err, "could not write the configuration to %q", dest)
	}
	m.log.Info("current configuration written", "path", dest)
	return nil
}

// PersistCurrent snapshots the current server document and persists it to
// the fixed last-known-good location under the base directory.
func (m *Manager) PersistCurrent() error {
	m.mu.Lock()
	if m.server == nil {
		m.mu.Unlock()
		return newConfigError("no configuration has been loaded yet")
	}
	doc := m.server.Clone()
	dest := m.paths.LastConfigFile()
	m.mu.Unlock()

	return m.Persist(doc, dest)
}

func (m *Manager) generatedComment(now time.Time) string {
	mode := ""
	if m.info.BuildMode != "" {
		mode = " [" + m.info.BuildMode + "]"
	}
	return fmt.Sprintf("\n"+
		"\tThis configuration was generated by castwave through an API call.\n"+
		"\tcastwave may not work if it is modified incorrectly.\n"+
		"\tcastwave refuses to start while this file exists; migrate or delete it first.\n\n"+
		"\tVersion: v%s%s%s\n"+
		"\tCreated: %s\n"+
		"\tHost: %s\n",
		m.info.Version, m.info.GitExtra, mode,
		version.UTCMillisecond(now),
		m.info.HostLine())
}

// documentVersion converts a document's version attribute to an integer.
// Missing or non-numeric values come back as 0, which Validate reports as
// "could not obtain the version".
func documentVersion(doc *document.Document) int {
	v, err := strconv.Atoi(doc.Version())
	if err != nil {
		return 0
	}
	return v
}
