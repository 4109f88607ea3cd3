package dgex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfigFromPath("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SDMultiplier != 3 {
		t.Fatalf("expected the 3-sigma default, got %v", cfg.SDMultiplier)
	}
	if cfg.MinSamplesAtCPM != 9 || cfg.MinCPM != 1 {
		t.Fatalf("unexpected low-expression defaults: %+v", cfg)
	}
	if cfg.NCase != 9 || cfg.NControl != 9 {
		t.Fatalf("unexpected group-size defaults: %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"sd_multiplier": 2.5, "enrichment_cutoff": 0.10}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SDMultiplier != 2.5 {
		t.Fatalf("expected the overridden multiplier, got %v", cfg.SDMultiplier)
	}
	if cfg.EnrichmentCutoff != 0.10 {
		t.Fatalf("expected the relaxed enrichment cutoff, got %v", cfg.EnrichmentCutoff)
	}

	// Untouched keys keep their defaults
	if cfg.PValueCutoff != 0.05 {
		t.Fatalf("expected the default p cutoff, got %v", cfg.PValueCutoff)
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("DGEX_OUTDIR", "/tmp/dgex-out")

	cfg, err := ParseConfigFromPath("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.OutDir != "/tmp/dgex-out" {
		t.Fatalf("expected the environment override, got %q", cfg.OutDir)
	}
}
