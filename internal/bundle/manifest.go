package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/crateloft/plugseed/internal/messages"
)

const (
	manifestEntry     = "META-INF/MANIFEST.MF"
	dependenciesKey   = "Plugin-Dependencies"
	optionalAttribute = "resolution:=optional"
)

// Dependency is one entry from a plugin archive's Plugin-Dependencies
// manifest header.
type Dependency struct {
	Name     string
	Version  string
	Optional bool
}

// ReadDependencies opens the plugin archive at archivePath and returns the
// direct dependencies declared in its manifest. An archive without a
// manifest, or with a manifest that declares no dependencies, has none.
func ReadDependencies(archivePath string) ([]Dependency, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf(messages.BundleManifestOpenFmt, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		if file.Name != manifestEntry {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf(messages.BundleManifestReadFmt, archivePath, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf(messages.BundleManifestReadFmt, archivePath, err)
		}
		return ParseDependencies(manifestHeader(data, dependenciesKey)), nil
	}
	return nil, nil
}

// manifestHeader extracts one main-section header value from raw manifest
// bytes. Archive manifests wrap long values at 72 bytes; a line starting
// with a single space continues the previous header.
func manifestHeader(data []byte, key string) string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, " ") && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}

	prefix := key + ":"
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, prefix))
	}
	return ""
}

// ParseDependencies parses a Plugin-Dependencies header value of the form
// "name:version,other:version;resolution:=optional". Malformed entries are
// dropped rather than failing the whole header.
func ParseDependencies(header string) []Dependency {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	var deps []Dependency
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		spec, attrs, _ := strings.Cut(token, ";")
		name, version, _ := strings.Cut(strings.TrimSpace(spec), ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		deps = append(deps, Dependency{
			Name:     name,
			Version:  strings.TrimSpace(version),
			Optional: strings.Contains(attrs, optionalAttribute),
		})
	}
	return deps
}
