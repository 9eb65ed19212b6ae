package policy

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/crateloft/plugseed/internal/artifact"
	"github.com/crateloft/plugseed/internal/messages"
)

// ErrValidation is a sentinel that wraps policy validation failures (as
// opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrValidation) to distinguish the two.
var ErrValidation = errors.New("policy validation failed")

// File is the on-disk plugseed.toml policy document.
type File struct {
	// Required lists artifact IDs that must be installed at startup.
	Required []string `toml:"required"`
	// EnforcedVersion lists artifact IDs whose installed copy must always
	// match the bundled version.
	EnforcedVersion []string `toml:"enforced-version"`

	Bundle  BundleSection  `toml:"bundle"`
	Install InstallSection `toml:"install"`
}

// BundleSection locates the read-only bundle.
type BundleSection struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
}

// InstallSection locates the mutable install directory.
type InstallSection struct {
	Dir string `toml:"dir"`
}

// Load reads and validates a plugseed.toml policy file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.PolicyMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates policy TOML data.
// data is the TOML content; source is used in error messages.
func Parse(data []byte, source string) (*File, error) {
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(messages.PolicyInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.PolicyUnrecognizedKeysFmt, ErrValidation, source, err)
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return &file, nil
}

// decodeStrict re-decodes the TOML data with unknown-field rejection to
// catch keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var file File
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&file)
}

// Policy converts the file's ID lists into a Policy value. Entries may
// carry either recognized archive suffix; they are normalized to bare IDs.
func (f *File) Policy() Policy {
	return New(normalizeIDs(f.Required), normalizeIDs(f.EnforcedVersion))
}

func (f *File) validate() error {
	if err := validateList("required", f.Required); err != nil {
		return err
	}
	return validateList("enforced-version", f.EnforcedVersion)
}

func validateList(name string, ids []string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf(messages.PolicyEmptyEntryFmt, name)
		}
		if strings.ContainsAny(id, `/\`) {
			return fmt.Errorf(messages.PolicyEntryIsPathFmt, name, id)
		}
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, artifact.ID(strings.TrimSpace(id)))
	}
	return out
}
