// Package policy defines the host-supplied installation policy: which
// bundled plugins are required and which must match the bundled version
// exactly.
package policy

// Policy is the read-only decision input for one seeding pass.
type Policy struct {
	required map[string]struct{}
	enforced map[string]struct{}
}

// New builds a Policy from required and enforced-version artifact IDs.
// Both lists default to empty; an empty Policy installs nothing beyond
// what the extension hook accepts.
func New(required []string, enforcedVersion []string) Policy {
	return Policy{
		required: toSet(required),
		enforced: toSet(enforcedVersion),
	}
}

// Required reports whether the artifact must be installed during startup.
func (p Policy) Required(artifactID string) bool {
	_, ok := p.required[artifactID]
	return ok
}

// EnforcedVersion reports whether the artifact's installed copy must always
// match the bundled version, overriding normal upgrade-only logic.
func (p Policy) EnforcedVersion(artifactID string) bool {
	_, ok := p.enforced[artifactID]
	return ok
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}
