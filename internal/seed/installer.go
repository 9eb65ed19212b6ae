package seed

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/messages"
	"github.com/crateloft/plugseed/internal/policy"
)

// installer copies single artifacts from the bundle into the install
// directory with staleness and version-enforcement checks.
type installer struct {
	dir    string
	policy policy.Policy
	source bundle.Source
	sys    System
	logger *log.Logger
}

// install copies the artifact at loc into the install directory unless the
// on-disk copy is already current. The raw file name is canonicalized
// first; a legacy-named prior install is renamed to the canonical name
// before the staleness comparison. The returned outcome reports whether
// bytes were written; an error means the artifact could not be processed
// and the caller should exclude it from the pass result.
func (ins *installer) install(loc bundle.Locator, rawName string) (Outcome, error) {
	fileName := artifact.CanonicalFileName(rawName)
	id := artifact.ID(fileName)
	target := filepath.Join(ins.dir, fileName)

	// Normalize a legacy-suffixed prior install before looking at the
	// canonical path.
	ins.renameLegacy(filepath.Join(ins.dir, artifact.LegacyFileName(fileName)), target)

	needsCopy, err := ins.shouldCopy(id, target, loc)
	if err != nil {
		return Outcome{}, err
	}
	if !needsCopy {
		ins.logger.Info(messages.SeedAlreadyCurrent, "plugin", id)
		return Outcome{Locator: loc, FileName: fileName, Installed: true}, nil
	}

	if err := ins.copyBytes(loc, target); err != nil {
		return Outcome{}, err
	}
	// The target's modification time doubles as the durable version
	// marker compared on future passes.
	if err := ins.sys.Chtimes(target, loc.ModTime, loc.ModTime); err != nil {
		return Outcome{}, fmt.Errorf(messages.InstallerChtimesFmt, target, err)
	}
	return Outcome{Locator: loc, FileName: fileName, Installed: true, Copied: true}, nil
}

// shouldCopy applies the staleness decision rule: copy when the target is
// missing; for enforced-version artifacts copy on any timestamp mismatch;
// otherwise copy only when the bundle is strictly newer.
func (ins *installer) shouldCopy(id string, target string, loc bundle.Locator) (bool, error) {
	info, err := ins.sys.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.InstallerStatFmt, target, err)
	}
	if ins.policy.EnforcedVersion(id) {
		if !info.ModTime().Equal(loc.ModTime) {
			ins.logger.Info(messages.SeedEnforcingVersion, "plugin", id)
			return true, nil
		}
		return false, nil
	}
	if info.ModTime().Before(loc.ModTime) {
		ins.logger.Info(messages.SeedUpgrading, "plugin", id)
		return true, nil
	}
	return false, nil
}

// renameLegacy moves a legacy-named install to the canonical name,
// deleting the canonical file first when both exist. An atomic replace is
// not assumed portable. Failures are logged and tolerated; the staleness
// comparison then runs against whatever is on disk.
func (ins *installer) renameLegacy(legacy string, target string) {
	if _, err := ins.sys.Stat(legacy); err != nil {
		return
	}
	if _, err := ins.sys.Stat(target); err == nil {
		if err := ins.sys.Remove(target); err != nil {
			ins.logger.Warn(messages.SeedRenameLegacyFailed, "from", legacy, "to", target, "err", err)
			return
		}
	}
	if err := ins.sys.Rename(legacy, target); err != nil {
		ins.logger.Warn(messages.SeedRenameLegacyFailed, "from", legacy, "to", target, "err", err)
	}
}

// copyBytes streams the artifact bytes to the target path.
func (ins *installer) copyBytes(loc bundle.Locator, target string) error {
	reader, err := ins.source.Open(loc)
	if err != nil {
		return fmt.Errorf(messages.InstallerCopyFmt, loc.Path, target, err)
	}
	defer func() { _ = reader.Close() }()

	writer, err := ins.sys.Create(target)
	if err != nil {
		return fmt.Errorf(messages.InstallerCopyFmt, loc.Path, target, err)
	}
	if _, err := io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return fmt.Errorf(messages.InstallerCopyFmt, loc.Path, target, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf(messages.InstallerCopyFmt, loc.Path, target, err)
	}
	return nil
}
