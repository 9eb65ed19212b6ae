package messages

// Policy messages for policy file loading and validation.
const (
	// PolicyMissingFileFmt formats missing policy file errors.
	PolicyMissingFileFmt = "missing policy file %s: %w"
	// PolicyInvalidFmt formats TOML syntax errors in the policy file.
	PolicyInvalidFmt = "invalid policy file %s: %w"
	// PolicyUnrecognizedKeysFmt formats strict-decode failures.
	PolicyUnrecognizedKeysFmt = "policy file %s has unrecognized keys: %v"
	// PolicyEmptyEntryFmt formats an empty artifact ID entry.
	PolicyEmptyEntryFmt = "policy list %s contains an empty artifact ID"
	// PolicyEntryIsPathFmt formats an entry that looks like a path.
	PolicyEntryIsPathFmt = "policy list %s entry %q must be an artifact ID, not a path"
)
