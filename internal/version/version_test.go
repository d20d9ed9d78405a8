package version

import "testing"

func TestString(t *testing.T) {
	origVersion, origSHA := Version, GitSHA
	defer func() { Version, GitSHA = origVersion, origSHA }()

	if got := String(); got != "dev (unknown)" {
		t.Errorf("String() = %q, want defaults", got)
	}

	Version, GitSHA = "0.3.1", "abc1234"
	if got := String(); got != "0.3.1 (abc1234)" {
		t.Errorf("String() = %q", got)
	}
}
