package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "1.2.3", "abc1234", "2026-01-02"
	v, c, d := resolveVersionInfo()
	if v != "1.2.3" || c != "abc1234" || d != "2026-01-02" {
		t.Errorf("resolveVersionInfo() = %q, %q, %q; want ldflags values", v, c, d)
	}
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, _, _ := resolveVersionInfo()
	if v == "" {
		t.Error("version should not be empty")
	}
}

func TestPrintVersionInfo(t *testing.T) {
	var out bytes.Buffer
	printVersionInfo(&out)

	if !strings.HasPrefix(out.String(), "sflink ") {
		t.Errorf("version output = %q, want prefix %q", out.String(), "sflink ")
	}
}
