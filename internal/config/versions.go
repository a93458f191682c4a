package config

import (
	"fmt"
	"strings"
)

// supportedVersions is the ordered set of schema versions a document name
// accepts. Insertion order is historical order, so the last entry is the
// latest version.
type supportedVersions []int

// Latest returns the newest supported version.
func (s supportedVersions) Latest() int {
	return s[len(s)-1]
}

func (s supportedVersions) contains(v int) bool {
	for _, sv := range s {
		if sv == v {
			return true
		}
	}
	return false
}

// migrationNote describes the schema deltas introduced at one version
// boundary. A note applies to every document whose observed version is at
// or below threshold.
type migrationNote struct {
	threshold int
	title     string
	changes   []string
}

// VersionRegistry maps document names to their supported schema versions
// and migration notes. Validation never mutates it; it is safe for
// concurrent use after construction.
type VersionRegistry struct {
	supported map[string]supportedVersions
	notes     map[string][]migrationNote
}

// NewVersionRegistry returns the registry of documents castwave currently
// understands. Extend it by adding versions here when the schema changes;
// existing ranges are never widened silently.
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{
		supported: map[string]supportedVersions{
			"Server": {8, 9},
			"Logger": {2},
		},
		notes: map[string][]migrationNote{
			// Ascending threshold order. Keep it that way: Validate appends
			// notes in slice order so an operator upgrading from an old
			// version reads every intervening breaking change.
			"Server": {
				{
					threshold: 7,
					title:     "v7 -> v8",
					changes: []string{
						"Added <Server>.<Bind>.<Managers>.<API> for setting the API binding port",
						"Added <Server>.<API> for setting the API server",
						"Added <Server>.<VirtualHosts>.<VirtualHost>.<Applications>.<Application>.<OutputProfiles>",
						"Changed <Server>.<VirtualHosts>.<VirtualHost>.<Domain> to <Host>",
						"Changed <CrossDomain> to <CrossDomains>",
						"Deleted <Server>.<VirtualHosts>.<VirtualHost>.<Applications>.<Application>.<Streams>",
						"Deleted <Server>.<VirtualHosts>.<VirtualHost>.<Applications>.<Application>.<Encodes>",
					},
				},
				{
					threshold: 8,
					title:     "v8 -> v9",
					changes: []string{
						"Added <Server>.<Bind>.<Managers>.<API>.<Storage> to store configurations created through the API",
					},
				},
			},
			"Logger": {
				{
					threshold: 1,
					title:     "v1 -> v2",
					changes: []string{
						"Changed <Tag> level attribute to the debug|info|warn|error scale",
					},
				},
			},
		},
	}
}

// Validate checks one loaded document's schema version. A version of 0
// means the version attribute was absent or unparseable. It returns nil
// when the version is supported and a ConfigError otherwise; it never
// mutates the registry and is idempotent.
func (r *VersionRegistry) Validate(name string, version int) error {
	supported, ok := r.supported[name]
	if !ok {
		// Registry and loader out of sync; a deployment or programming
		// error, but surfaced like any other configuration failure.
		return newConfigError("cannot find a configuration document named %q", name)
	}

	if version == 0 {
		return newConfigError(
			"could not obtain the version of %s.xml; if you have upgraded castwave, see misc/conf_examples/%s.xml",
			name, name)
	}

	if supported.contains(version) {
		return nil
	}

	var b strings.Builder
	b.WriteString(
		fmt.Sprintf("the version of %s.xml is outdated (your version: %d, latest version: %d)\n",
			name, version, supported.Latest()))
	b.WriteString(fmt.Sprintf("if you have upgraded castwave, see misc/conf_examples/%s.xml\n", name))

	for _, note := range r.notes[name] {
		if note.threshold < version {
			continue
		}
		b.WriteString(fmt.Sprintf("major changes (%s):\n", note.title))
		for _, change := range note.changes {
			b.WriteString(" - ")
			b.WriteString(change)
			b.WriteString("\n")
		}
	}

	return &ConfigError{Message: strings.TrimRight(b.String(), "\n")}
}
