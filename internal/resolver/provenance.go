// SPDX-License-Identifier: EPL-2.0

package resolver

// Provenance records which resolution strategy produced a resolved path.
// It exists for diagnostics only; no behavior branches on it.
type Provenance int

const (
	// ProvenanceUserAbsolute indicates the hint was an absolute path that verified.
	ProvenanceUserAbsolute Provenance = iota
	// ProvenanceUserRelative indicates a non-default hint resolved against the working directory.
	ProvenanceUserRelative
	// ProvenancePathSearch indicates the binary was found in a PATH directory.
	ProvenancePathSearch
	// ProvenanceWellKnownLocation indicates the binary was found in a curated install directory.
	ProvenanceWellKnownLocation
	// ProvenanceShellIntrospection indicates a directory scraped from the shell profile or login-shell PATH.
	ProvenanceShellIntrospection
	// ProvenanceWhichCommand indicates the which/where lookup located the binary.
	ProvenanceWhichCommand
	// ProvenanceFilesystemSearch indicates the mdfind content search located the binary.
	ProvenanceFilesystemSearch
)

// String returns the diagnostic tag for the provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceUserAbsolute:
		return "user-absolute"
	case ProvenanceUserRelative:
		return "user-relative"
	case ProvenancePathSearch:
		return "path-search"
	case ProvenanceWellKnownLocation:
		return "well-known-location"
	case ProvenanceShellIntrospection:
		return "shell-introspection"
	case ProvenanceWhichCommand:
		return "which-command"
	case ProvenanceFilesystemSearch:
		return "filesystem-search"
	default:
		return "unknown"
	}
}
