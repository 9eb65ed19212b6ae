// Package testutil provides plugin-archive fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Archive describes a plugin archive fixture.
type Archive struct {
	// Name is the archive file name, including suffix.
	Name string
	// Dependencies is the raw Plugin-Dependencies header value. Empty
	// means the manifest declares no dependencies.
	Dependencies string
	// NoManifest omits META-INF/MANIFEST.MF entirely.
	NoManifest bool
	// ModTime is the archive file's modification time. Zero means "now".
	ModTime time.Time
}

// WriteArchive writes a zip plugin archive into dir and returns its path.
// t is the active test; dir is the output directory.
func WriteArchive(t *testing.T, dir string, archive Archive) string {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	if !archive.NoManifest {
		entry, err := writer.Create("META-INF/MANIFEST.MF")
		if err != nil {
			t.Fatalf("create manifest entry: %v", err)
		}
		if _, err := entry.Write([]byte(manifest(archive.Dependencies))); err != nil {
			t.Fatalf("write manifest entry: %v", err)
		}
	}
	entry, err := writer.Create("plugin.bin")
	if err != nil {
		t.Fatalf("create payload entry: %v", err)
	}
	if _, err := entry.Write([]byte("payload of " + archive.Name)); err != nil {
		t.Fatalf("write payload entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	path := filepath.Join(dir, archive.Name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	modTime := archive.ModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("set archive mtime: %v", err)
	}
	return path
}

// manifest renders a main manifest section, folding the dependencies
// header at 72 bytes the way archive tooling does.
func manifest(dependencies string) string {
	var b strings.Builder
	b.WriteString("Manifest-Version: 1.0\n")
	if dependencies != "" {
		b.WriteString(fold(fmt.Sprintf("Plugin-Dependencies: %s", dependencies)))
		b.WriteString("\n")
	}
	return b.String()
}

// fold wraps a manifest line at 72 bytes with leading-space continuations.
func fold(line string) string {
	const width = 72
	if len(line) <= width {
		return line
	}
	var b strings.Builder
	b.WriteString(line[:width])
	rest := line[width:]
	for len(rest) > width-1 {
		b.WriteString("\n " + rest[:width-1])
		rest = rest[width-1:]
	}
	if rest != "" {
		b.WriteString("\n " + rest)
	}
	return b.String()
}
