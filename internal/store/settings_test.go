package store

import (
	"path/filepath"
	"testing"
)

func TestSettingsDefaultWhenMissing(t *testing.T) {
	s, err := OpenSettings(filepath.Join(t.TempDir(), "settings.json"), true)
	if err != nil {
		t.Fatalf("OpenSettings: %v", err)
	}
	if !s.CacheEnabled() {
		t.Fatal("expected default cacheEnabled=true")
	}
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := OpenSettings(path, true)
	if err != nil {
		t.Fatalf("OpenSettings: %v", err)
	}
	if err := s.SetCacheEnabled(false); err != nil {
		t.Fatalf("SetCacheEnabled: %v", err)
	}

	reopened, err := OpenSettings(path, true)
	if err != nil {
		t.Fatalf("OpenSettings: %v", err)
	}
	if reopened.CacheEnabled() {
		t.Fatal("persisted cacheEnabled=false was lost on reopen")
	}
}
