package pitch

import (
	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/audio"
)

const (
	// DefaultThreshold is the default absolute threshold for the
	// normalized difference dip search. Lower values demand stronger
	// periodicity before a pitch is reported.
	DefaultThreshold = 0.15

	// silenceRMS gates windows whose energy is too low to carry a usable
	// pitch, preventing spurious locks onto the noise floor.
	silenceRMS = 0.01
)

// Detector defines the interface for pitch detection
type Detector interface {
	// DetectPitch analyzes an audio window and reports the fundamental
	// frequency in Hz. ok is false when the window is silent or carries
	// no clear periodicity; that is a normal per-tick outcome, not an
	// error.
	DetectPitch(buffer *audio.Buffer) (frequency float64, ok bool)
}

// YINDetector estimates the fundamental frequency with the YIN algorithm:
// a squared-difference function over candidate lags, cumulative mean
// normalization, an absolute-threshold dip search and parabolic refinement
// of the winning lag.
type YINDetector struct {
	threshold float64
}

// NewYINDetector creates a YIN pitch detector. A non-positive threshold
// selects DefaultThreshold.
func NewYINDetector(threshold float64) *YINDetector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &YINDetector{threshold: threshold}
}

// DetectPitch analyzes an audio window and reports the fundamental frequency
func (d *YINDetector) DetectPitch(buffer *audio.Buffer) (float64, bool) {
	if !buffer.Valid() {
		return 0, false
	}
	if buffer.RMS() < silenceRMS {
		return 0, false
	}

	halfSize := len(buffer.Samples) / 2
	if halfSize < 4 {
		return 0, false
	}

	// Squared difference of the signal with a lagged copy of itself.
	diff := make([]float64, halfSize)
	for tau := 0; tau < halfSize; tau++ {
		sum := 0.0
		for j := 0; j < halfSize; j++ {
			delta := float64(buffer.Samples[j]) - float64(buffer.Samples[j+tau])
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference, computed with a running sum.
	cmndf := make([]float64, halfSize)
	cmndf[0] = 1
	runningSum := 0.0
	for tau := 1; tau < halfSize; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			// Perfectly flat signal, e.g. DC offset. No periodicity.
			cmndf[tau] = 1
			continue
		}
		cmndf[tau] = diff[tau] * float64(tau) / runningSum
	}

	// Absolute threshold: the first dip below the threshold, descended to
	// its local minimum, wins.
	tauEstimate := -1
	for tau := 2; tau < halfSize; tau++ {
		if cmndf[tau] < d.threshold {
			for tau+1 < halfSize && cmndf[tau+1] < cmndf[tau] {
				tau++
			}
			tauEstimate = tau
			break
		}
	}
	if tauEstimate < 0 {
		return 0, false
	}

	refined := parabolicInterpolation(cmndf, tauEstimate)
	if refined <= 0 {
		return 0, false
	}

	return float64(buffer.SampleRate) / refined, true
}

// parabolicInterpolation refines an integer lag to sub-sample precision by
// fitting a parabola through the three normalized-difference values around
// it. At either boundary, or when the three values are collinear and the
// denominator vanishes, the unrefined lag is returned.
func parabolicInterpolation(cmndf []float64, tau int) float64 {
	if tau <= 0 || tau >= len(cmndf)-1 {
		return float64(tau)
	}

	s0 := cmndf[tau-1]
	s1 := cmndf[tau]
	s2 := cmndf[tau+1]

	denominator := 2 * (s0 - 2*s1 + s2)
	if denominator == 0 {
		return float64(tau)
	}

	return float64(tau) + (s0-s2)/denominator
}
