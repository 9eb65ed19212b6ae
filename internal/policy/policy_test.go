package policy

import "testing"

func TestPolicyMembership(t *testing.T) {
	pol := New([]string{"git", "credentials"}, []string{"git"})

	if !pol.Required("git") || !pol.Required("credentials") {
		t.Fatal("expected listed IDs to be required")
	}
	if pol.Required("junit") {
		t.Fatal("expected unlisted ID to not be required")
	}
	if !pol.EnforcedVersion("git") {
		t.Fatal("expected git to be version-enforced")
	}
	if pol.EnforcedVersion("credentials") {
		t.Fatal("expected credentials to not be version-enforced")
	}
}

func TestEmptyPolicy(t *testing.T) {
	pol := New(nil, nil)
	if pol.Required("git") || pol.EnforcedVersion("git") {
		t.Fatal("empty policy must not match anything")
	}
}

func TestNewIgnoresEmptyIDs(t *testing.T) {
	pol := New([]string{""}, []string{""})
	if pol.Required("") || pol.EnforcedVersion("") {
		t.Fatal("empty IDs must not become policy members")
	}
}
