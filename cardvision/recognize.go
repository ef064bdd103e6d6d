package cardvision

import (
	"image"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Recognizer matches a rectified card segment against a loaded reference
// database.
type Recognizer struct {
	entries []ReferenceEntry
	cfg     Config
}

// NewRecognizer returns a Recognizer over entries, configured by cfg.
func NewRecognizer(entries []ReferenceEntry, cfg Config) *Recognizer {
	return &Recognizer{entries: entries, cfg: cfg}
}

// Recognize searches all 4 cardinal rotations of warped for a reference
// match. For each rotation it computes a separation score: how far the
// single best (lowest-distance) reference stands out from the rest of the
// field's distances, in standard deviations. It accepts the first rotation,
// in iteration order 0/90/180/270, whose score both exceeds the
// configured threshold and is the best seen so far — matching the
// short-circuiting search this was ported from rather than always picking
// the true global-best rotation.
func (r *Recognizer) Recognize(warped image.Image) (isRecognized bool, score float64, name string) {
	tau := r.cfg.HashSeparationThreshold
	runningMax := math.Inf(-1)

	for _, deg := range [4]int{0, 90, 180, 270} {
		rotated := rotateDegrees(warped, deg)
		hr := PerceptualHash(rotated, r.cfg.HashSize)

		dMin := math.Inf(1)
		iStar := -1
		dists := make([]float64, len(r.entries))
		for i, e := range r.entries {
			d := float64(hr.Distance(e.Hash))
			dists[i] = d
			if d < dMin {
				dMin = d
				iStar = i
			}
		}
		if iStar == -1 {
			// No reference entries loaded: every candidate reports
			// unrecognized, which is not an error condition.
			continue
		}

		var rest []float64
		for _, d := range dists {
			if d > dMin {
				rest = append(rest, d)
			}
		}

		sr := 0.0
		if len(rest) > 0 {
			mean, std := stat.MeanStdDev(rest, nil)
			if std > 0 {
				sr = (mean - dMin) / std
			}
		}

		if sr > runningMax {
			runningMax = sr
		}
		if sr > tau && sr == runningMax {
			return true, sr / tau, canonicalizeName(r.entries[iStar].Name, r.cfg.NameMode)
		}
	}
	return false, 0, ""
}

// canonicalizeName applies the configured reference-name canonicalization:
// either the full stored name, or (by default) just its first
// whitespace-separated token, which collapses printing variants sharing a
// base name.
func canonicalizeName(name string, mode NameMode) string {
	if mode == NameFull {
		return name
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
