package pitch

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/audio"
	"github.com/mjibson/go-dsp/fft"
)

// SpectralDetector implements pitch detection by picking the strongest
// interpolated peak of the magnitude spectrum. It is less robust than YIN
// on plucked strings rich in harmonics but considerably cheaper per window.
type SpectralDetector struct {
	minFrequency  float64 // Lowest frequency to detect (Hz)
	maxFrequency  float64 // Highest frequency to detect (Hz)
	peakThreshold float64 // Minimum peak height as fraction of highest peak
}

// NewSpectralDetector creates a new FFT-based pitch detector
func NewSpectralDetector() *SpectralDetector {
	return &SpectralDetector{
		minFrequency:  50.0,   // below the low D of drop tunings
		maxFrequency:  1200.0, // E6 on guitar is ~1319 Hz
		peakThreshold: 0.2,
	}
}

// DetectPitch analyzes an audio window and reports the fundamental frequency
func (d *SpectralDetector) DetectPitch(buffer *audio.Buffer) (float64, bool) {
	if !buffer.Valid() {
		return 0, false
	}
	if buffer.RMS() < silenceRMS {
		return 0, false
	}

	// Apply windowing function (Hann window)
	windowedSamples := applyHannWindow(buffer.Samples)

	// Convert from []float32 to []complex128 for the FFT
	complexSamples := make([]complex128, len(windowedSamples))
	for i, sample := range windowedSamples {
		complexSamples[i] = complex(float64(sample), 0)
	}

	// Perform FFT
	spectrum := fft.FFT(complexSamples)

	// Find the fundamental frequency using peak detection
	peakFreq, ok := d.findFundamentalFrequency(spectrum, buffer.SampleRate)
	if !ok {
		return 0, false
	}

	// If the detected frequency is out of range, it's likely noise
	if peakFreq < d.minFrequency || peakFreq > d.maxFrequency {
		return 0, false
	}

	return peakFreq, true
}

// applyHannWindow applies a Hann window to the audio samples
func applyHannWindow(samples []float32) []float32 {
	windowedSamples := make([]float32, len(samples))
	for i, sample := range samples {
		// Hann window coefficient
		windowCoeff := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(samples)-1)))
		windowedSamples[i] = sample * float32(windowCoeff)
	}
	return windowedSamples
}

// peak represents a peak in the frequency spectrum
type peak struct {
	bin       int
	magnitude float64
	frequency float64
}

// findFundamentalFrequency picks the strongest local maximum of the
// magnitude spectrum inside the configured frequency range, refined with
// quadratic interpolation across the three bins around it.
func (d *SpectralDetector) findFundamentalFrequency(spectrum []complex128, sampleRate int) (float64, bool) {
	// We only need to look at the first half of the spectrum (Nyquist theorem)
	spectrumHalf := spectrum[:len(spectrum)/2]

	// Calculate frequency resolution (Hz per bin)
	binSizeHz := float64(sampleRate) / float64(len(spectrum))

	// Calculate min/max bin numbers based on frequency range
	minBin := int(d.minFrequency / binSizeHz)
	if minBin < 1 {
		minBin = 1 // Avoid DC component
	}

	maxBin := int(d.maxFrequency / binSizeHz)
	if maxBin >= len(spectrumHalf) {
		maxBin = len(spectrumHalf) - 1
	}
	if minBin >= maxBin {
		return 0, false
	}

	// Find the maximum magnitude for normalization
	maxMagnitude := 0.0
	for i := minBin; i <= maxBin; i++ {
		magnitude := cmplx.Abs(spectrumHalf[i])
		if magnitude > maxMagnitude {
			maxMagnitude = magnitude
		}
	}
	if maxMagnitude == 0 {
		return 0, false
	}

	// Find all peaks
	var peaks []peak
	for i := minBin + 1; i < maxBin; i++ {
		magnitude := cmplx.Abs(spectrumHalf[i])

		// Check if this bin is a peak (higher than adjacent bins)
		if magnitude > cmplx.Abs(spectrumHalf[i-1]) &&
			magnitude > cmplx.Abs(spectrumHalf[i+1]) &&
			magnitude > maxMagnitude*d.peakThreshold {

			// Use quadratic interpolation for more accurate peak location
			prev := cmplx.Abs(spectrumHalf[i-1])
			current := magnitude
			next := cmplx.Abs(spectrumHalf[i+1])

			// Avoid division by zero
			if prev-2*current+next != 0 {
				delta := 0.5 * (prev - next) / (prev - 2*current + next)

				peaks = append(peaks, peak{
					bin:       i,
					magnitude: magnitude,
					frequency: (float64(i) + delta) * binSizeHz,
				})
			} else {
				// Just use the bin frequency if we can't interpolate
				peaks = append(peaks, peak{
					bin:       i,
					magnitude: magnitude,
					frequency: float64(i) * binSizeHz,
				})
			}
		}
	}

	if len(peaks) == 0 {
		return 0, false
	}

	// Sort peaks by magnitude (descending)
	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].magnitude > peaks[j].magnitude
	})

	// The highest peak is our candidate for fundamental frequency
	return peaks[0].frequency, true
}
