package seed

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/policy"
	"github.com/crateloft/plugseed/internal/testutil"
)

var (
	timeOld = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNew = timeOld.Add(time.Hour)
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestInstaller builds an installer over a real bundle and install
// directory pair.
func newTestInstaller(t *testing.T, pol policy.Policy) (*installer, *bundle.DirSource, string, string) {
	t.Helper()
	bundleRoot := t.TempDir()
	installDir := t.TempDir()
	source, err := bundle.NewDirSource(bundleRoot)
	if err != nil {
		t.Fatalf("NewDirSource error: %v", err)
	}
	ins := &installer{
		dir:    installDir,
		policy: pol,
		source: source,
		sys:    RealSystem{},
		logger: quietLogger(),
	}
	return ins, source, bundleRoot, installDir
}

func resolveArchive(t *testing.T, source *bundle.DirSource, name string) bundle.Locator {
	t.Helper()
	loc, err := source.Resolve(name)
	if err != nil {
		t.Fatalf("Resolve %s: %v", name, err)
	}
	return loc
}

func writeInstalled(t *testing.T, installDir string, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(installDir, name)
	if err := os.WriteFile(path, []byte("installed "+name), 0o644); err != nil {
		t.Fatalf("write installed file: %v", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("set mtime: %v", err)
	}
	return path
}

func mustModTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return info.ModTime()
}

func TestInstallCopiesWhenMissing(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	loc := resolveArchive(t, source, "git.jpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !outcome.Installed || !outcome.Copied {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.FileName != "git.jpi" {
		t.Fatalf("FileName = %q, want git.jpi", outcome.FileName)
	}
	target := filepath.Join(installDir, "git.jpi")
	if !mustModTime(t, target).Equal(timeOld) {
		t.Fatalf("target mtime = %v, want source mtime %v", mustModTime(t, target), timeOld)
	}
}

func TestInstallCanonicalizesLegacySourceName(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.hpi", ModTime: timeOld})
	loc := resolveArchive(t, source, "git.hpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if outcome.FileName != "git.jpi" {
		t.Fatalf("FileName = %q, want git.jpi", outcome.FileName)
	}
	if _, err := os.Stat(filepath.Join(installDir, "git.jpi")); err != nil {
		t.Fatalf("expected canonical target on disk: %v", err)
	}
}

func TestInstallIdempotent(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	loc := resolveArchive(t, source, "git.jpi")

	if _, err := ins.install(loc, loc.Name); err != nil {
		t.Fatalf("first install error: %v", err)
	}
	target := filepath.Join(installDir, "git.jpi")
	firstMtime := mustModTime(t, target)

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("second install error: %v", err)
	}
	if outcome.Copied {
		t.Fatal("second install must not copy")
	}
	if !outcome.Installed {
		t.Fatal("second install still owns the artifact")
	}
	if !mustModTime(t, target).Equal(firstMtime) {
		t.Fatal("second install must not touch the timestamp")
	}
}

func TestInstallUpgradesWhenSourceNewer(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeNew})
	writeInstalled(t, installDir, "git.jpi", timeOld)
	loc := resolveArchive(t, source, "git.jpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !outcome.Copied {
		t.Fatal("expected upgrade copy")
	}
	if !mustModTime(t, filepath.Join(installDir, "git.jpi")).Equal(timeNew) {
		t.Fatal("expected on-disk mtime to advance to the source mtime")
	}
}

func TestInstallNeverDowngradesUnenforced(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	path := writeInstalled(t, installDir, "git.jpi", timeNew)
	loc := resolveArchive(t, source, "git.jpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if outcome.Copied {
		t.Fatal("unenforced artifact must not be downgraded")
	}
	if !mustModTime(t, path).Equal(timeNew) {
		t.Fatal("on-disk timestamp must be untouched")
	}
}

func TestInstallEnforcedOverridesDriftBothDirections(t *testing.T) {
	cases := []struct {
		name       string
		diskTime   time.Time
		sourceTime time.Time
	}{
		{name: "disk newer than bundle", diskTime: timeNew, sourceTime: timeOld},
		{name: "disk older than bundle", diskTime: timeOld, sourceTime: timeNew},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, []string{"git"}))
			testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: tc.sourceTime})
			writeInstalled(t, installDir, "git.jpi", tc.diskTime)
			loc := resolveArchive(t, source, "git.jpi")

			outcome, err := ins.install(loc, loc.Name)
			if err != nil {
				t.Fatalf("install error: %v", err)
			}
			if !outcome.Copied {
				t.Fatal("enforced artifact must be copied on any timestamp mismatch")
			}
			if !mustModTime(t, filepath.Join(installDir, "git.jpi")).Equal(tc.sourceTime) {
				t.Fatal("on-disk timestamp must match the bundle after enforcement")
			}
		})
	}
}

func TestInstallEnforcedMatchingTimestampSkips(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, []string{"git"}))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	writeInstalled(t, installDir, "git.jpi", timeOld)
	loc := resolveArchive(t, source, "git.jpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if outcome.Copied {
		t.Fatal("matching timestamps must not trigger a copy")
	}
}

func TestInstallRenamesLegacyBeforeComparison(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	writeInstalled(t, installDir, "git.hpi", timeOld)
	loc := resolveArchive(t, source, "git.jpi")

	outcome, err := ins.install(loc, loc.Name)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	// The legacy file carried the current timestamp, so after the rename
	// the staleness check sees an up-to-date install and skips the copy.
	if outcome.Copied {
		t.Fatal("renamed legacy install was current; no copy expected")
	}
	if _, err := os.Stat(filepath.Join(installDir, "git.hpi")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("legacy file must be gone after the rename")
	}
	if _, err := os.Stat(filepath.Join(installDir, "git.jpi")); err != nil {
		t.Fatalf("canonical file must exist after the rename: %v", err)
	}
}

func TestInstallDeletesCanonicalWhenLegacyAlsoExists(t *testing.T) {
	ins, source, bundleRoot, installDir := newTestInstaller(t, policy.New(nil, nil))
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	writeInstalled(t, installDir, "git.jpi", timeOld)
	legacy := writeInstalled(t, installDir, "git.hpi", timeOld)
	legacyContent, err := os.ReadFile(legacy)
	if err != nil {
		t.Fatalf("read legacy: %v", err)
	}

	loc := resolveArchive(t, source, "git.jpi")
	if _, err := ins.install(loc, loc.Name); err != nil {
		t.Fatalf("install error: %v", err)
	}
	if _, err := os.Stat(legacy); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("legacy file must be gone")
	}
	got, err := os.ReadFile(filepath.Join(installDir, "git.jpi"))
	if err != nil {
		t.Fatalf("read canonical: %v", err)
	}
	if string(got) != string(legacyContent) {
		t.Fatal("legacy content must win the delete-then-rename")
	}
}

type failCreateSystem struct {
	RealSystem
}

func (failCreateSystem) Create(string) (io.WriteCloser, error) {
	return nil, errors.New("disk full")
}

func TestInstallCopyFailureReturnsError(t *testing.T) {
	ins, source, bundleRoot, _ := newTestInstaller(t, policy.New(nil, nil))
	ins.sys = failCreateSystem{}
	testutil.WriteArchive(t, bundleRoot, testutil.Archive{Name: "git.jpi", ModTime: timeOld})
	loc := resolveArchive(t, source, "git.jpi")

	if _, err := ins.install(loc, loc.Name); err == nil {
		t.Fatal("expected copy failure to surface as an error")
	}
}
