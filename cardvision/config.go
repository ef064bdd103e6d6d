package cardvision

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// NameMode controls how a matched reference name is reported.
type NameMode int

const (
	// NameFirstToken keeps only the first whitespace-separated token of the
	// reference name, collapsing printing variants that share a base name.
	NameFirstToken NameMode = iota
	// NameFull preserves the reference name exactly as stored.
	NameFull
)

// Config is the single typed configuration surface for the pipeline,
// gathering the tunables listed in the specification.
type Config struct {
	// HashSeparationThreshold is tau, the acceptance threshold on the
	// separation score s_r computed during recognition.
	HashSeparationThreshold float64 `yaml:"hash_separation_threshold"`

	// FixedThresholdLevel is the grey level used by the "gray" contour mode.
	FixedThresholdLevel uint8 `yaml:"fixed_threshold_level"`

	// CLAHEClipLimit and CLAHETileGrid control local contrast enhancement.
	CLAHEClipLimit float64 `yaml:"clahe_clip_limit"`
	CLAHETileGrid  int     `yaml:"clahe_tile_grid"`

	// MaxInputDimension is the shortest-side pixel count above which an
	// input image is downscaled proportionally with area averaging.
	MaxInputDimension int `yaml:"max_input_dimension"`

	// HashSize is H, the square perceptual-hash working resolution; the hash
	// width in bits is HashSize*HashSize.
	HashSize int `yaml:"hash_size"`

	// FormFactorMin and FormFactorMax bound the accepted card shape.
	FormFactorMin float64 `yaml:"form_factor_min"`
	FormFactorMax float64 `yaml:"form_factor_max"`

	// CornerDiffCeiling is the maximum allowed qc_diff for acceptance.
	CornerDiffCeiling float64 `yaml:"corner_diff_ceiling"`

	// CropSlope is the coefficient in crop_factor = 1 - CropSlope*qc_diff.
	CropSlope float64 `yaml:"crop_slope"`

	// MaxEarlyExitCards stops segmentation once more than this many cards
	// have been recognized for an image.
	MaxEarlyExitCards int `yaml:"max_early_exit_cards"`

	// SimplifyLengthCutoff is the polygon-simplification shortest-edge
	// fraction-of-perimeter cutoff (C2).
	SimplifyLengthCutoff float64 `yaml:"simplify_length_cutoff"`

	// MaxContours bounds the lazy contour sequence per segmentation pass.
	MaxContours int `yaml:"max_contours"`

	// NameMode picks between "keep first token" and "keep full name" for
	// reference-name canonicalization (an Open Question in the source
	// specification; both are supported, pinned by this field).
	NameMode NameMode `yaml:"name_mode"`
}

// DefaultConfig returns the tunables table from the specification, §6.
func DefaultConfig() Config {
	return Config{
		HashSeparationThreshold: 4.0,
		FixedThresholdLevel:     70,
		CLAHEClipLimit:          2.0,
		CLAHETileGrid:           8,
		MaxInputDimension:       1000,
		HashSize:                32,
		FormFactorMin:           0.25,
		FormFactorMax:           0.33,
		CornerDiffCeiling:       0.35,
		CropSlope:               0.22,
		MaxEarlyExitCards:       5,
		SimplifyLengthCutoff:    0.15,
		MaxContours:             100,
		NameMode:                NameFirstToken,
	}
}

// LoadConfig reads a YAML-encoded Config from path, decoding it over
// DefaultConfig: fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
