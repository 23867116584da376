package config

import "testing"

func TestDurationUnmarshalText(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("30s")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration().Seconds() != 30 {
		t.Fatalf("expected 30s, got %s", d.Duration())
	}
}

func TestDurationUnmarshalTextRejectsGarbage(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.SizeBytes == 0 {
		t.Fatalf("expected default cache size to be set")
	}
}
