package messages

// Bundle messages for source enumeration, resolution, and manifest reading.
const (
	// BundleRootRequired reports a missing bundle root directory.
	BundleRootRequired = "bundle root directory is required"
	// BundleRootNotDirFmt formats a bundle root that is not a directory.
	BundleRootNotDirFmt = "bundle root %s is not a directory"
	// BundleEnumerateFmt wraps a directory listing failure.
	BundleEnumerateFmt = "enumerate bundle directory %s: %w"
	// BundleUnresolvableFmt wraps an unresolvable candidate path.
	BundleUnresolvableFmt = "resolve bundle path %s: %w"
	// BundleManifestOpenFmt wraps an archive that cannot be opened for
	// manifest reading.
	BundleManifestOpenFmt = "open plugin archive %s: %w"
	// BundleManifestReadFmt wraps a manifest entry that cannot be read.
	BundleManifestReadFmt = "read manifest of plugin archive %s: %w"
)
