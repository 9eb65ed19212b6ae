// Package bundle provides access to the read-only application bundle that
// ships plugin archives: enumeration of candidates, resolution of candidate
// paths to concrete locators, and discovery of a plugin's declared
// dependencies from its archive manifest.
package bundle

import (
	"errors"
	"io"
	"time"
)

// ErrUnresolvable marks a candidate path that cannot be mapped to bytes in
// the bundle. Callers use errors.Is to detect it and skip the one candidate.
var ErrUnresolvable = errors.New("unresolvable bundle location")

// Locator identifies one artifact inside the bundle. Two locators are equal
// iff they refer to the same resolved resource; equality is by Path.
type Locator struct {
	// Path is the resolved location of the artifact bytes.
	Path string
	// Name is the artifact's file name within the bundle.
	Name string
	// ModTime is the artifact's last-modified timestamp, used as the
	// version marker for staleness comparison.
	ModTime time.Time
}

// Source is the bundle-side collaborator consumed by the seeding engine.
// Implementations must tolerate empty bundles: Enumerate returns an empty
// slice, not an error, when nothing is bundled under the prefix.
type Source interface {
	// Enumerate returns the raw candidate paths under prefix.
	Enumerate(prefix string) ([]string, error)
	// Resolve maps a raw candidate path to a Locator. It fails with an
	// error wrapping ErrUnresolvable when the path cannot be mapped to
	// bytes.
	Resolve(rawPath string) (Locator, error)
	// Dependencies returns locators for the direct dependencies declared
	// by the artifact at loc, resolved under the same prefix. Declared
	// dependencies that are not present in the bundle are omitted.
	Dependencies(loc Locator, prefix string) ([]Locator, error)
	// Open opens the artifact bytes for reading.
	Open(loc Locator) (io.ReadCloser, error)
}
