package cardvision

import (
	"image"
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
)

// Pipeline drives segmentation, rectification, and recognition over one
// TestImage, retrying with progressively different thresholding modes
// until enough cards are found or no more plausibly fit the frame.
type Pipeline struct {
	cfg    Config
	rec    *Recognizer
	logger golog.Logger
}

// NewPipeline returns a Pipeline configured by cfg, recognizing against rec.
func NewPipeline(cfg Config, rec *Recognizer, logger golog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, rec: rec, logger: logger}
}

// Process runs the full segmentation/recognition/dedup loop over img and
// returns the recognized, non-fragment candidates from whichever
// thresholding mode the loop settled on.
func (p *Pipeline) Process(img TestImage) []CardCandidate {
	var candidates []CardCandidate

	for _, mode := range [2]ThresholdMode{ThresholdAdaptive, ThresholdRGB} {
		candidates = p.runSegmentationPass(img, mode)
		preRecognitionSuppress(candidates)

		for i := range candidates {
			if candidates[i].IsFragment {
				continue
			}
			recognized, score, name := p.rec.Recognize(candidates[i].Warped)
			candidates[i].IsRecognized = recognized
			candidates[i].RecognitionScore = score
			candidates[i].Name = name
		}

		markFragments(candidates)
		candidates = compactRecognized(candidates)

		if !mayContainMoreCards(candidates) || len(candidates) > p.cfg.MaxEarlyExitCards {
			break
		}
	}
	return candidates
}

// runSegmentationPass characterizes contours from largest to smallest,
// rectifying and collecting every accepted one as a candidate. It stops as
// soon as a contour's hull is too small to possibly be a larger unfound
// card, per CharacterizeContour's Continue signal.
func (p *Pipeline) runSegmentationPass(img TestImage, mode ThresholdMode) []CardCandidate {
	contours := segmentContours(img.Source, mode, p.cfg)
	if p.cfg.MaxContours > 0 && len(contours) > p.cfg.MaxContours {
		contours = contours[:p.cfg.MaxContours]
	}

	var candidates []CardCandidate
	maxSegmentArea := 0.0

	for _, c := range contours {
		result := CharacterizeContour([]r2.Point(c), maxSegmentArea, img.Area, p.cfg)
		if !result.Continue {
			break
		}
		if !result.IsCandidate {
			continue
		}

		quad := ScalePolygon(result.BoundingQuad, result.CropFactor)
		warped, err := RectifyQuad(img.Source, quad)
		if err != nil {
			if p.logger != nil {
				p.logger.Debugw("rectification failed, skipping contour", "error", err)
			}
			continue
		}

		area := ShoelaceArea(result.BoundingQuad)
		if maxSegmentArea == 0 && area > 0.1*img.Area {
			maxSegmentArea = area
		}

		candidates = append(candidates, CardCandidate{
			Warped:            warped,
			BoundingQuad:      result.BoundingQuad,
			ImageAreaFraction: area / img.Area,
		})
	}
	return candidates
}

// segmentContours runs the thresholding strategy for mode and returns its
// contours sorted by signed area, descending.
func segmentContours(img image.Image, mode ThresholdMode, cfg Config) []ContourFloat {
	switch mode {
	case ThresholdGray:
		gray := ToGray(img)
		mask := ThresholdFixed(gray, cfg.FixedThresholdLevel)
		cs, _ := FindContours(mask)
		return sortContoursByAreaDesc(cs)

	case ThresholdAdaptive:
		// Normalize lighting across the frame before computing the local
		// mean with a Lab-L CLAHE pass (the rgb mode below applies the same
		// tile equalization to each raw channel via EnhanceChannelCLAHE), so
		// an uneven-lit photo doesn't skew the adaptive window's baseline.
		normalized := EnhanceContrastCLAHE(img, cfg.CLAHEClipLimit, cfg.CLAHETileGrid)
		gray := ToGray(normalized)
		b := gray.Bounds()
		minDim := b.Dx()
		if b.Dy() < minDim {
			minDim = b.Dy()
		}
		window := 1 + 2*(minDim/20)
		mask := ThresholdAdaptiveGaussian(gray, window, 10)
		cs, _ := FindContours(mask)
		return sortContoursByAreaDesc(cs)

	case ThresholdRGB:
		var all []ContourFloat
		for ch := 0; ch < 3; ch++ {
			enhanced := EnhanceChannelCLAHE(img, ch, cfg.CLAHEClipLimit, cfg.CLAHETileGrid)
			mask := ThresholdFixed(enhanced, 110)
			cs, _ := FindContours(mask)
			all = append(all, cs...)
		}
		// Also run a cheap unenhanced pass directly on the raw channels:
		// CLAHE can wash out an already strongly-saturated color edge that
		// a plain fixed level catches without any tiling overhead.
		for _, mask := range ThresholdChannelMasks(img, cfg.FixedThresholdLevel) {
			cs, _ := FindContours(mask)
			all = append(all, cs...)
		}
		return sortContoursByAreaDesc(all)

	case ThresholdAll:
		var all []ContourFloat
		all = append(all, segmentContours(img, ThresholdGray, cfg)...)
		all = append(all, segmentContours(img, ThresholdAdaptive, cfg)...)
		all = append(all, segmentContours(img, ThresholdRGB, cfg)...)
		return sortContoursByAreaDesc(all)
	}
	return nil
}

func sortContoursByAreaDesc(cs []ContourFloat) []ContourFloat {
	sort.SliceStable(cs, func(i, j int) bool {
		return SignedArea(cs[i]) > SignedArea(cs[j])
	})
	return cs
}

// preRecognitionSuppress marks a candidate a fragment if some other
// already-recognized, non-fragment candidate's quad contains it and shares
// its name. Run before recognition, this ordinarily marks nothing: within a
// single segmentation pass no candidate is recognized yet when this runs.
func preRecognitionSuppress(candidates []CardCandidate) {
	for i := range candidates {
		for j := range candidates {
			if i == j {
				continue
			}
			other := candidates[j]
			if other.IsRecognized && !other.IsFragment &&
				other.Name == candidates[i].Name &&
				ContainsPolygon(other.BoundingQuad, candidates[i].BoundingQuad) {
				candidates[i].IsFragment = true
			}
		}
	}
}

// markFragments resolves overlapping candidate pairs after recognition: for
// any pair whose quads overlap by more than half the smaller quad's area,
// the "loser" (by recognition score, or by being unrecognized) is marked a
// fragment. Ties are broken in favor of the earlier-iterated candidate.
func markFragments(candidates []CardCandidate) {
	n := len(candidates)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if candidates[i].IsFragment || candidates[j].IsFragment {
				continue
			}
			if !candidates[i].IsRecognized && !candidates[j].IsRecognized {
				continue
			}

			areaI := ShoelaceArea(candidates[i].BoundingQuad)
			areaJ := ShoelaceArea(candidates[j].BoundingQuad)
			minArea := areaI
			if areaJ < minArea {
				minArea = areaJ
			}
			overlap := IntersectionArea(candidates[i].BoundingQuad, candidates[j].BoundingQuad)
			if overlap <= 0.5*minArea {
				continue
			}

			loser := i
			switch {
			case candidates[i].IsRecognized && candidates[j].IsRecognized:
				if candidates[i].RecognitionScore >= candidates[j].RecognitionScore {
					loser = j
				}
			case candidates[i].IsRecognized:
				loser = j
			}
			candidates[loser].IsFragment = true
		}
	}
}

func compactRecognized(candidates []CardCandidate) []CardCandidate {
	out := candidates[:0]
	for _, c := range candidates {
		if c.IsRecognized && !c.IsFragment {
			out = append(out, c)
		}
	}
	return out
}

// mayContainMoreCards reports whether the frame could still plausibly hold
// one more card the size of the smallest one already found.
func mayContainMoreCards(candidates []CardCandidate) bool {
	if len(candidates) == 0 {
		return true
	}
	sum := 0.0
	minFrac := math.Inf(1)
	for _, c := range candidates {
		sum += c.ImageAreaFraction
		if c.ImageAreaFraction < minFrac {
			minFrac = c.ImageAreaFraction
		}
	}
	return sum+1.5*minFrac < 1.0
}
