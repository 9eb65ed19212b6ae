package seed

import (
	"github.com/charmbracelet/log"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/messages"
)

// Classification labels how the engine encountered an artifact.
type Classification string

const (
	// ClassRequired marks a root candidate the policy requires.
	ClassRequired Classification = "required"
	// ClassOptional marks a root candidate the policy does not require.
	ClassOptional Classification = "optional"
	// ClassDependency marks an artifact discovered through another
	// artifact's manifest.
	ClassDependency Classification = "dependency"
)

// Outcome records the result of processing one artifact.
type Outcome struct {
	// Locator is the bundle resource the outcome refers to.
	Locator bundle.Locator
	// FileName is the canonical on-disk file name.
	FileName string
	// Installed reports that the engine owns the artifact's installation:
	// it was copied, or confirmed already current. False means a hook
	// handled the artifact without installing it.
	Installed bool
	// Copied reports that bytes were actually written this pass.
	Copied bool
}

// Hook is the single seam a host uses to change the fate of a bundled
// artifact the policy does not require, without touching the engine.
type Hook interface {
	// OnOptionalArtifact may return a definite outcome for the artifact,
	// or nil to decline and let the engine install it. The engine
	// discovers dependencies for any root with a definite outcome, so a
	// hook that skips a root still gets that root's dependencies
	// considered leniently.
	OnOptionalArtifact(loc bundle.Locator, fileName string, class Classification) (*Outcome, error)
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(loc bundle.Locator, fileName string, class Classification) (*Outcome, error)

// OnOptionalArtifact calls f.
func (f HookFunc) OnOptionalArtifact(loc bundle.Locator, fileName string, class Classification) (*Outcome, error) {
	return f(loc, fileName, class)
}

// SkipOptionalHook returns the default hook: any artifact the policy does
// not require is skipped with a log line, mirroring a conservative host
// that installs only what it is told to.
func SkipOptionalHook(logger *log.Logger) Hook {
	return HookFunc(func(loc bundle.Locator, fileName string, class Classification) (*Outcome, error) {
		logger.Info(messages.SeedSkipNotRequired,
			"plugin", artifact.ID(fileName),
			"type", string(class))
		return &Outcome{Locator: loc, FileName: fileName, Installed: false}, nil
	})
}

// InstallOptionalHook returns a hook that declines every decision, letting
// the engine install optional artifacts alongside required ones.
func InstallOptionalHook() Hook {
	return HookFunc(func(bundle.Locator, string, Classification) (*Outcome, error) {
		return nil, nil
	})
}
