package version

import "testing"

func TestLinkedValuesWin(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "0123456789abcdef", "2026-01-02"
	if got := GetFullVersion(); got != "v1.2.3 (0123456, built 2026-01-02)" {
		t.Fatalf("unexpected full version %q", got)
	}

	Date = ""
	info := GetInfo()
	if info.Version != "v1.2.3" || info.Commit != "0123456789abcdef" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestShortCommitIsOmitted(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v0.1.0", "abc"
	if got := GetFullVersion(); got != "v0.1.0" {
		t.Fatalf("unexpected full version %q", got)
	}
}
