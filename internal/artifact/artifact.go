// Package artifact normalizes bundled plugin file names and derives
// artifact identifiers from them.
package artifact

import "strings"

const (
	// CurrentSuffix is the canonical plugin archive suffix.
	CurrentSuffix = ".jpi"
	// LegacySuffix is the pre-rename archive suffix still present in old
	// bundles and install directories.
	LegacySuffix = ".hpi"
)

// CanonicalFileName rewrites a legacy-suffixed archive name to the current
// suffix. Names that are already canonical or carry no recognized suffix
// pass through unchanged.
func CanonicalFileName(rawName string) string {
	if strings.HasSuffix(rawName, LegacySuffix) {
		return strings.TrimSuffix(rawName, LegacySuffix) + CurrentSuffix
	}
	return rawName
}

// LegacyFileName returns the legacy-suffixed variant of a canonical file
// name, used to detect prior installs that predate the suffix rename.
func LegacyFileName(fileName string) string {
	if strings.HasSuffix(fileName, CurrentSuffix) {
		return strings.TrimSuffix(fileName, CurrentSuffix) + LegacySuffix
	}
	return fileName
}

// ID derives the artifact identifier by stripping either recognized suffix.
// An empty input yields an empty identifier, which callers treat as an
// unresolvable artifact and reject.
func ID(fileName string) string {
	fileName = strings.TrimSuffix(fileName, CurrentSuffix)
	return strings.TrimSuffix(fileName, LegacySuffix)
}

// Recognized reports whether fileName carries one of the two plugin
// archive suffixes.
func Recognized(fileName string) bool {
	return strings.HasSuffix(fileName, CurrentSuffix) || strings.HasSuffix(fileName, LegacySuffix)
}
