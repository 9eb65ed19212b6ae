package bundle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/messages"
)

// DirSource reads bundled plugin archives from a directory on disk.
// Candidate paths are bundle-relative, slash-separated.
type DirSource struct {
	root string
}

// NewDirSource returns a DirSource rooted at the given bundle directory.
func NewDirSource(root string) (*DirSource, error) {
	if root == "" {
		return nil, fmt.Errorf(messages.BundleRootRequired)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf(messages.BundleEnumerateFmt, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(messages.BundleRootNotDirFmt, root)
	}
	return &DirSource{root: root}, nil
}

// Enumerate lists plugin archive candidates directly under prefix. A
// missing prefix directory is an empty bundle, not an error. Results are
// sorted for deterministic root processing.
func (s *DirSource) Enumerate(prefix string) ([]string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.BundleEnumerateFmt, dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !artifact.Recognized(entry.Name()) {
			continue
		}
		paths = append(paths, path.Join(prefix, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Resolve maps a bundle-relative candidate path to a Locator backed by the
// file's resolved on-disk path and modification time.
func (s *DirSource) Resolve(rawPath string) (Locator, error) {
	name := path.Base(strings.TrimSuffix(rawPath, "/"))
	if name == "." || name == "/" {
		name = ""
	}
	full := filepath.Join(s.root, filepath.FromSlash(rawPath))
	info, err := os.Stat(full)
	if err != nil {
		return Locator{}, fmt.Errorf(messages.BundleUnresolvableFmt, rawPath, ErrUnresolvable)
	}
	if info.IsDir() {
		return Locator{}, fmt.Errorf(messages.BundleUnresolvableFmt, rawPath, ErrUnresolvable)
	}
	return Locator{Path: full, Name: name, ModTime: info.ModTime()}, nil
}

// Dependencies reads loc's archive manifest and resolves each declared
// dependency to its canonical archive under the same prefix. Dependencies
// declared in the manifest but absent from the bundle are omitted; the
// decision to fail or tolerate a missing dependency belongs to the host's
// plugin loader, not the seeding pass.
func (s *DirSource) Dependencies(loc Locator, prefix string) ([]Locator, error) {
	deps, err := ReadDependencies(loc.Path)
	if err != nil {
		return nil, err
	}
	var out []Locator
	for _, dep := range deps {
		raw := path.Join(prefix, dep.Name+artifact.CurrentSuffix)
		resolved, err := s.Resolve(raw)
		if err != nil {
			if errors.Is(err, ErrUnresolvable) {
				continue
			}
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Open opens the artifact bytes for reading.
func (s *DirSource) Open(loc Locator) (io.ReadCloser, error) {
	return os.Open(loc.Path)
}
