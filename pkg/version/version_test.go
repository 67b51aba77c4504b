package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("expected non-empty version")
	}
	if info.GoVersion == "" {
		t.Error("expected non-empty Go version")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("expected GOOS/GOARCH platform, got %q", info.Platform)
	}
}

func TestInfo_String(t *testing.T) {
	info := Get()
	s := info.String()

	for _, expected := range []string{"Hive CLI", "Version:", "Platform:"} {
		if !strings.Contains(s, expected) {
			t.Errorf("expected string output to contain %q, got %q", expected, s)
		}
	}
}

func TestInfo_JSON(t *testing.T) {
	info := Get()

	s, err := info.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Info
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Version != info.Version {
		t.Errorf("round-trip version mismatch: %q vs %q", decoded.Version, info.Version)
	}
}
