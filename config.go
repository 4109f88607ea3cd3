// Package dgex holds shared helpers for the dgex RNA-seq tools: threshold
// configuration, input fetching, and delimiter sniffing.
package dgex

import (
	"encoding/json"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/kelseyhightower/envconfig"
)

// Config collects the statistical thresholds that the notebook-era analysis
// hardcoded inline. Every cutoff that was ever adjusted by hand (e.g., the
// enrichment cutoff being relaxed from 0.05 to 0.10) lives here so the
// decision is recorded in one place.
type Config struct {
	ConfigPath string `json:"-"`

	// Outlier filtering
	SDMultiplier float64 `json:"sd_multiplier"`

	// Low-expression filtering
	MinCPM          float64 `json:"min_cpm"`
	MinSamplesAtCPM int     `json:"min_samples_at_cpm"`
	PriorCount      float64 `json:"prior_count"`

	// Differential expression
	PValueCutoff float64 `json:"p_value_cutoff"`

	// Over-representation analysis
	EnrichmentCutoff float64 `json:"enrichment_cutoff"`

	// Positional group-label fallback
	NCase    int `json:"n_case"`
	NControl int `json:"n_control"`

	// Directories, overridable via DGEX_OUTDIR / DGEX_CACHEDIR
	OutDir   string `json:"out_dir" envconfig:"outdir"`
	CacheDir string `json:"cache_dir" envconfig:"cachedir"`
}

// DefaultConfig mirrors the thresholds used in the original GSE173955
// analysis: 3-sigma outlier bands, >1 CPM in at least 9 of 18 samples,
// p < 0.05, and a 9-vs-9 sample split.
func DefaultConfig() Config {
	return Config{
		SDMultiplier:     3,
		MinCPM:           1,
		MinSamplesAtCPM:  9,
		PriorCount:       0.5,
		PValueCutoff:     0.05,
		EnrichmentCutoff: 0.05,
		NCase:            9,
		NControl:         9,
		OutDir:           ".",
		CacheDir:         ".",
	}
}

// ParseConfigFromPath loads a JSON config file on top of the defaults, then
// applies DGEX_-prefixed environment overrides for the directory settings. An
// empty path yields defaults plus environment.
func ParseConfigFromPath(path string) (Config, error) {
	out := DefaultConfig()

	if path != "" {
		out.ConfigPath = ExpandHome(path)

		f, err := os.Open(out.ConfigPath)
		if err != nil {
			return out, pfx.Err(err)
		}
		defer f.Close()

		if err := json.NewDecoder(f).Decode(&out); err != nil {
			if e, ok := err.(*json.SyntaxError); ok {
				log.Printf("syntax error at byte offset %d", e.Offset)
			}
			return out, pfx.Err(err)
		}
	}

	if err := envconfig.Process("dgex", &out); err != nil {
		return out, pfx.Err(err)
	}

	out.OutDir = ExpandHome(out.OutDir)
	out.CacheDir = ExpandHome(out.CacheDir)

	return out, nil
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		path = filepath.Join(usr.HomeDir, (path)[2:])
	}

	return path
}
