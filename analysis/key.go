package analysis

import (
	"math"

	"github.com/jsphweid/midicoach/model"
)

// Krumhansl-Kessler probe tone profiles, index 0 is the tonic.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// PitchClassHistogram sums note durations per pitch class.
func PitchClassHistogram(notes []model.NoteEvent) [12]float64 {
	var h [12]float64
	for _, n := range notes {
		h[n.Pitch%12] += float64(n.DurationTicks)
	}
	return h
}

func correlate(h [12]float64, profile [12]float64, root int) float64 {
	var hm, pm float64
	for i := 0; i < 12; i++ {
		hm += h[i]
		pm += profile[i]
	}
	hm /= 12
	pm /= 12

	var num, hv, pv float64
	for i := 0; i < 12; i++ {
		dh := h[(i+root)%12] - hm
		dp := profile[i] - pm
		num += dh * dp
		hv += dh * dh
		pv += dp * dp
	}
	if hv == 0 || pv == 0 {
		return 0
	}
	return num / math.Sqrt(hv*pv)
}

// KeyFromHistogram picks the best correlated key. Major keys are scanned
// before minor and a later candidate must beat the best strictly, so ties go
// to major and then to the lowest root.
func KeyFromHistogram(h [12]float64) model.KeySignature {
	const epsilon = 1e-12

	best := model.KeySignature{Root: 0, Mode: model.ModeMajor}
	bestScore, second := math.Inf(-1), math.Inf(-1)
	for _, mode := range []model.Mode{model.ModeMajor, model.ModeMinor} {
		profile := majorProfile
		if mode == model.ModeMinor {
			profile = minorProfile
		}
		for root := 0; root < 12; root++ {
			r := correlate(h, profile, root)
			if r > bestScore+epsilon {
				second = bestScore
				bestScore = r
				best = model.KeySignature{Root: root, Mode: mode}
			} else if r > second {
				second = r
			}
		}
	}

	if bestScore > 0 && !math.IsInf(second, -1) {
		best.Confidence = round2(clamp01((bestScore - second) / bestScore))
	}
	return best
}

// DetectKey estimates the key from a duration weighted pitch-class
// histogram of notes.
func DetectKey(notes []model.NoteEvent) model.KeySignature {
	return KeyFromHistogram(PitchClassHistogram(notes))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
