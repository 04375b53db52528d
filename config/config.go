package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for the overlay and matching behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Template storage
	TemplateDir string `json:"template_dir"`

	// Matching parameters
	MatchThreshold  float64 `json:"match_threshold"`   // minimum NCC score for a match
	MatchLimit      int     `json:"match_limit"`       // more matches than this is treated as unreliable
	SearchTimeoutMS int     `json:"search_timeout_ms"` // self-match worker deadline

	// Overlay interaction
	SettleDelayMS  int `json:"settle_delay_ms"`  // debounce after a keyboard nudge
	FlashDelayMS   int `json:"flash_delay_ms"`   // transient message duration
	FocusGraceMS   int `json:"focus_grace_ms"`   // ignore unfocus events right after open
	NudgeStep      int `json:"nudge_step"`       // plain arrow key movement
	NudgeStepLarge int `json:"nudge_step_large"` // shift-arrow movement

	// Blob segmentation
	BlobThreshold uint8 `json:"blob_threshold"` // luminance delta vs. background

	// Marker labels, assigned in order and repeated as needed
	MarkerLabels string `json:"marker_labels"`

	// Skip the sentinel-paint calibration probe. Set this on platforms whose
	// capture pipeline excludes the overlay surface from screenshots.
	SkipCalibration bool `json:"skip_calibration"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		TemplateDir:     "",
		MatchThreshold:  0.90,
		MatchLimit:      20,
		SearchTimeoutMS: 1000,
		SettleDelayMS:   2000,
		FlashDelayMS:    2500,
		FocusGraceMS:    500,
		NudgeStep:       1,
		NudgeStepLarge:  25,
		BlobThreshold:   40,
		MarkerLabels:    "abcdefghijklmnopqrstuvwxyz0123456789",
		SkipCalibration: false,
	}
}

// TemplateDirectory resolves the directory template images are stored in.
// An empty TemplateDir falls back to the XDG state home.
func (c *Config) TemplateDirectory() string {
	if c != nil && c.TemplateDir != "" {
		return c.TemplateDir
	}
	return filepath.Join(xdg.StateHome, "voice-target", "templates")
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		c.MatchThreshold = 0.90
	}
	if c.MatchLimit <= 0 {
		c.MatchLimit = 20
	}
	if c.SearchTimeoutMS <= 0 {
		c.SearchTimeoutMS = 1000
	}
	if c.SettleDelayMS <= 0 {
		c.SettleDelayMS = 2000
	}
	if c.FlashDelayMS <= 0 {
		c.FlashDelayMS = 2500
	}
	if c.FocusGraceMS < 0 {
		c.FocusGraceMS = 500
	}
	if c.NudgeStep <= 0 {
		c.NudgeStep = 1
	}
	if c.NudgeStepLarge <= c.NudgeStep {
		c.NudgeStepLarge = 25
	}
	if c.BlobThreshold == 0 {
		c.BlobThreshold = 40
	}
	if c.MarkerLabels == "" {
		c.MarkerLabels = "abcdefghijklmnopqrstuvwxyz0123456789"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
