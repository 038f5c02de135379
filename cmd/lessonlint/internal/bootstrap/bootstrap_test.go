package bootstrap

import (
	"strings"
	"testing"
)

func TestBuildModuleDefaults(t *testing.T) {
	module, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Module == nil || module.Logger == nil {
		t.Fatalf("expected wired module, got %+v", module)
	}
}

func TestBuildModuleRejectsBadChecksum(t *testing.T) {
	if _, err := BuildModule(Options{LicenseChecksum: "not-hex"}); err == nil {
		t.Fatal("expected checksum validation failure")
	}
}

func TestBuildModuleTrimsOptions(t *testing.T) {
	module, err := BuildModule(Options{
		Marker:          "  TODO  ",
		LicenseChecksum: "  " + strings.Repeat("ab", 32) + "  ",
		Debug:           true,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Module == nil {
		t.Fatal("expected module")
	}
}
