package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "plugseed"
	// RootShort is the short description for the root command.
	RootShort = "Seed bundled plugins into a live install directory"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// SeedUse is the seed command usage.
	SeedUse   = "seed"
	SeedShort = "Run one install pass from the bundle into the install directory"

	SeedFlagBundle          = "Path to the read-only bundle directory"
	SeedFlagInstallDir      = "Path to the mutable plugin install directory"
	SeedFlagPrefix          = "Bundle-relative prefix to enumerate plugins under"
	SeedFlagConfig          = "Path to the plugseed.toml policy file"
	SeedFlagInteractive     = "Prompt before deciding the fate of each optional plugin"
	SeedFlagInstallOptional = "Install bundled plugins even when the policy does not require them"
	SeedFlagVerbose         = "Enable debug logging"

	SeedBundleRequired        = "a bundle directory is required (set --bundle or bundle.dir in the config)"
	SeedInstallDirRequired    = "an install directory is required (set --install-dir or install.dir in the config)"
	SeedInteractiveNoTerminal = "--interactive requires an interactive terminal"
	SeedExpandPathFmt         = "expand path %s: %w"

	SeedConfirmOptionalTitleFmt = "Install optional plugin %s?"
	SeedConfirmOptionalNote     = "The policy does not require this plugin. Skipped plugins stay in the bundle and can be seeded on a later run."

	SeedSummaryInstalledFmt = "Seeded %d plugin(s) into %s"
	SeedSummaryNothing      = "Nothing to seed; install directory is up to date"
	SeedResultLineFmt       = "  %s\n"
)
