// Package seed implements the install-decision pass that materializes
// bundled plugin archives into a live install directory at host startup.
// The pass is synchronous, idempotent, and best-effort: every failure is
// local to the one artifact being processed.
package seed

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/bundle"
	"github.com/crateloft/plugseed/internal/messages"
	"github.com/crateloft/plugseed/internal/policy"
)

// Options configures an Engine.
type Options struct {
	// InstallDir is the mutable directory plugins are copied into.
	InstallDir string
	// Prefix is the bundle-relative prefix candidates are enumerated under.
	Prefix string
	// Source is the read-only bundle collaborator.
	Source bundle.Source
	// Hook decides the fate of artifacts the policy does not require.
	// Defaults to SkipOptionalHook.
	Hook Hook
	// System abstracts install-directory filesystem operations. Defaults
	// to RealSystem.
	System System
	// Logger receives per-artifact decision and failure logs. Defaults to
	// a stderr logger with the "plugseed" prefix.
	Logger *log.Logger
}

// Engine drives seeding passes over one bundle and install directory.
type Engine struct {
	installDir string
	prefix     string
	source     bundle.Source
	hook       Hook
	sys        System
	logger     *log.Logger
}

// New validates opts and returns an Engine.
func New(opts Options) (*Engine, error) {
	if opts.InstallDir == "" {
		return nil, fmt.Errorf(messages.EngineInstallDirRequired)
	}
	if opts.Source == nil {
		return nil, fmt.Errorf(messages.EngineSourceRequired)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "plugseed"})
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	hook := opts.Hook
	if hook == nil {
		hook = SkipOptionalHook(logger)
	}
	return &Engine{
		installDir: opts.InstallDir,
		prefix:     opts.Prefix,
		source:     opts.Source,
		hook:       hook,
		sys:        sys,
		logger:     logger,
	}, nil
}

// pendingDep is a dependency owed by a processed root, tagged with the
// install obligation inherited from that root.
type pendingDep struct {
	loc       bundle.Locator
	mandatory bool
}

// pass holds the transient state of one Run invocation. Nothing here
// survives the pass; disk presence and timestamps are the only durable
// state.
type pass struct {
	*Engine
	policy   policy.Policy
	ins      *installer
	names    map[string]struct{}
	consumed map[string]struct{}
	pending  []pendingDep
}

// Run executes one seeding pass under pol and returns the sorted canonical
// file names the pass considers installed, including artifacts that were
// already current and therefore not copied. Per-artifact failures are
// logged and excluded from the result; Run itself fails only when the
// install directory cannot be created.
func (e *Engine) Run(pol policy.Policy) ([]string, error) {
	if err := e.sys.MkdirAll(e.installDir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.EngineCreateDirFmt, e.installDir, err)
	}
	p := &pass{
		Engine: e,
		policy: pol,
		ins: &installer{
			dir:    e.installDir,
			policy: pol,
			source: e.source,
			sys:    e.sys,
			logger: e.logger,
		},
		names:    make(map[string]struct{}),
		consumed: make(map[string]struct{}),
	}

	candidates, err := e.source.Enumerate(e.prefix)
	if err != nil {
		e.logger.Error(messages.SeedEnumerateFailed, "prefix", e.prefix, "err", err)
		return nil, nil
	}
	for _, raw := range candidates {
		p.processRoot(raw)
	}

	// Dependencies of roots the hook handled without installing are
	// offered leniently (the hook still gets a say); dependencies of
	// installed roots are forced. The pass is strictly two levels deep:
	// the drains never discover further dependencies.
	for _, dep := range p.pending {
		if !dep.mandatory {
			p.processLocator(dep.loc, false, true)
		}
	}
	for _, dep := range p.pending {
		if dep.mandatory {
			p.processLocator(dep.loc, true, true)
		}
	}

	installed := make([]string, 0, len(p.names))
	for name := range p.names {
		installed = append(installed, name)
	}
	sort.Strings(installed)
	return installed, nil
}

// processRoot resolves one enumerated candidate, runs the copy decision,
// and queues the root's direct dependencies into the bucket matching the
// root's outcome.
func (p *pass) processRoot(rawPath string) {
	loc, err := p.source.Resolve(rawPath)
	if err != nil {
		p.logger.Warn(messages.SeedResolveFailed, "path", rawPath, "err", err)
		return
	}
	outcome := p.processLocator(loc, false, false)
	if outcome == nil {
		return
	}
	deps, err := p.source.Dependencies(outcome.Locator, p.prefix)
	if err != nil {
		p.logger.Error(messages.SeedDependenciesFailed, "plugin", outcome.FileName, "err", err)
		return
	}
	for _, dep := range deps {
		p.pending = append(p.pending, pendingDep{loc: dep, mandatory: outcome.Installed})
	}
}

// processLocator runs the shared decision logic for one artifact.
// shouldInstall forces installation (mandatory dependencies, bypassing the
// hook); isDependency only affects classification labels. A nil return
// means the artifact was rejected or already consumed and produced no
// outcome.
func (p *pass) processLocator(loc bundle.Locator, shouldInstall bool, isDependency bool) *Outcome {
	fileName := artifact.CanonicalFileName(loc.Name)
	id := artifact.ID(fileName)
	if id == "" {
		// Some bundle layouts surface directory-like paths; reject the
		// one candidate rather than failing the pass.
		p.logger.Warn(messages.SeedEmptyFileName, "path", loc.Path)
		return nil
	}
	class := p.classify(id, isDependency)

	if _, ok := p.consumed[loc.Path]; ok {
		p.logger.Info(messages.SeedSkipAlreadyCopied, "plugin", id, "type", string(class))
		return nil
	}

	if !p.policy.Required(id) && !shouldInstall {
		outcome, err := p.hook.OnOptionalArtifact(loc, fileName, class)
		if err != nil {
			p.logger.Error(messages.SeedHookFailed, "plugin", id, "err", err)
			return nil
		}
		if outcome != nil {
			// Handled by host policy. Not recorded as installed or
			// consumed: the same resource may still be installed later
			// as a mandatory dependency.
			return outcome
		}
	}

	p.logger.Info(messages.SeedInstalling, "plugin", id, "type", string(class))
	outcome, err := p.ins.install(loc, loc.Name)
	if err != nil {
		p.logger.Error(messages.SeedCopyFailed, "plugin", id, "type", string(class), "err", err)
		return nil
	}
	p.names[outcome.FileName] = struct{}{}
	p.consumed[loc.Path] = struct{}{}
	return &outcome
}

func (p *pass) classify(id string, isDependency bool) Classification {
	if isDependency {
		return ClassDependency
	}
	if p.policy.Required(id) {
		return ClassRequired
	}
	return ClassOptional
}
