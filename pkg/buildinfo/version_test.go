package buildinfo

import "testing"

func TestTemplate(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	got := Template()
	want := "{{.Name}} v1.2.3\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z\n"
	if got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
