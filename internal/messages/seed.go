package messages

// Seed messages for the install-decision engine and file installer.
//
// Event constants (no Fmt suffix) are structured-log messages; context such
// as the plugin ID travels in key-value pairs, not in the string itself.
const (
	// EngineInstallDirRequired reports a missing install directory.
	EngineInstallDirRequired = "install directory is required"
	EngineSourceRequired     = "bundle source is required"
	EngineCreateDirFmt       = "create install directory %s: %w"

	// SeedInstalling is logged before an artifact is handed to the installer.
	SeedInstalling        = "installing bundled plugin"
	SeedAlreadyCurrent    = "plugin already installed and current, skipping"
	SeedUpgrading         = "bundle has a newer version of the plugin, upgrading"
	SeedEnforcingVersion  = "plugin version is enforced, overriding installed copy"
	SeedSkipNotRequired   = "skipping bundled plugin, not required by policy"
	SeedSkipAlreadyCopied = "skipping bundled plugin, already processed this pass"

	// SeedResolveFailed is logged when a candidate path cannot be resolved.
	SeedResolveFailed      = "cannot resolve bundled plugin, skipping candidate"
	SeedEmptyFileName      = "bundled plugin path yields an empty file name, skipping"
	SeedCopyFailed         = "failed to copy bundled plugin"
	SeedDependenciesFailed = "failed to resolve dependencies of bundled plugin"
	SeedHookFailed         = "optional-plugin hook failed, skipping plugin"
	SeedEnumerateFailed    = "failed to enumerate bundle candidates"
	SeedRenameLegacyFailed = "failed to rename legacy plugin file"

	// InstallerStatFmt wraps a stat failure on the install target.
	InstallerStatFmt    = "stat %s: %w"
	InstallerCopyFmt    = "copy %s to %s: %w"
	InstallerChtimesFmt = "set modification time of %s: %w"
)
