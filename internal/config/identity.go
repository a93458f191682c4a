package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// IdentityStore resolves the durable server identity: load it from the
// storage file if one exists, otherwise generate a new one and persist it.
// The fallback order is fixed; durability across restarts is the point.
type IdentityStore struct {
	log *slog.Logger

	// newID is injectable for deterministic tests.
	newID func() string
}

// NewIdentityStore returns a store generating UUID identities.
func NewIdentityStore(log *slog.Logger) *IdentityStore {
	return &IdentityStore{log: log, newID: uuid.NewString}
}

// Resolve returns the server identity for the installation under p. A
// stored identity is returned verbatim; otherwise a fresh one is generated
// and persisted best-effort. Persist failure is logged, not fatal: the
// identity already exists in memory, and the only cost is a possible
// regeneration on the next start.
func (s *IdentityStore) Resolve(p Paths) string {
	if id, ok := s.load(p.IDStorageFile()); ok {
		return id
	}

	id := s.newID()
	if err := s.persist(p.IDStorageFile(), id); err != nil {
		s.log.Warn("could not persist the server identity; it will be regenerated on the next start",
			"path", p.IDStorageFile(), "err", err)
	}
	return id
}

// load reads the first line of the storage file. An openable file always
// wins, even if its first line is empty.
func (s *IdentityStore) load(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (s *IdentityStore) persist(path, id string) error {
	return os.WriteFile(path, []byte(id), 0o644)
}
