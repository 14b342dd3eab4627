package pitch

import (
	"math"
	"testing"

	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/audio"
)

func sineBuffer(freq float64, sampleRate, n int, amplitude float64) *audio.Buffer {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return &audio.Buffer{Samples: samples, SampleRate: sampleRate}
}

func TestYINDetectsPureTone(t *testing.T) {
	cases := []struct {
		name       string
		freq       float64
		sampleRate int
	}{
		{"open A string", 110.00, 44100},
		{"A4", 440.00, 44100},
		{"low E at 16kHz", 82.41, 16000},
	}

	for _, tc := range cases {
		detector := NewYINDetector(0)
		got, ok := detector.DetectPitch(sineBuffer(tc.freq, tc.sampleRate, 4096, 0.8))
		if !ok {
			t.Fatalf("%s: expected a detection", tc.name)
		}
		if math.Abs(got-tc.freq) > tc.freq*0.01 {
			t.Fatalf("%s: expected %.2f Hz within 1%%, got %.2f", tc.name, tc.freq, got)
		}
	}
}

func TestYINSilenceReturnsNone(t *testing.T) {
	detector := NewYINDetector(0)

	silent := &audio.Buffer{Samples: make([]float32, 4096), SampleRate: 44100}
	if _, ok := detector.DetectPitch(silent); ok {
		t.Fatalf("expected no detection for an all-zero window")
	}

	// Below the RMS gate but not exactly zero
	if _, ok := detector.DetectPitch(sineBuffer(110, 44100, 4096, 0.005)); ok {
		t.Fatalf("expected no detection below the silence gate")
	}
}

func TestYINFlatSignalReturnsNone(t *testing.T) {
	samples := make([]float32, 2048)
	for i := range samples {
		samples[i] = 0.5
	}
	detector := NewYINDetector(0)
	if _, ok := detector.DetectPitch(&audio.Buffer{Samples: samples, SampleRate: 44100}); ok {
		t.Fatalf("expected no detection for a DC-only window")
	}
}

func TestYINInvalidWindowReturnsNone(t *testing.T) {
	detector := NewYINDetector(0)
	if _, ok := detector.DetectPitch(nil); ok {
		t.Fatalf("expected no detection for a nil buffer")
	}
	if _, ok := detector.DetectPitch(&audio.Buffer{SampleRate: 44100}); ok {
		t.Fatalf("expected no detection for an empty window")
	}
	if _, ok := detector.DetectPitch(&audio.Buffer{Samples: make([]float32, 1024)}); ok {
		t.Fatalf("expected no detection for a zero sample rate")
	}
}

func TestYINIdempotent(t *testing.T) {
	detector := NewYINDetector(0)
	buffer := sineBuffer(196, 48000, 4096, 0.7)

	first, ok1 := detector.DetectPitch(buffer)
	second, ok2 := detector.DetectPitch(buffer)
	if ok1 != ok2 || first != second {
		t.Fatalf("expected identical results on the same window, got %.6f/%v then %.6f/%v",
			first, ok1, second, ok2)
	}
}

func TestYINThresholdConfigurable(t *testing.T) {
	if d := NewYINDetector(0); d.threshold != DefaultThreshold {
		t.Fatalf("expected default threshold %.2f, got %.2f", DefaultThreshold, d.threshold)
	}
	if d := NewYINDetector(0.05); d.threshold != 0.05 {
		t.Fatalf("expected threshold 0.05, got %.2f", d.threshold)
	}
}

func TestParabolicInterpolation(t *testing.T) {
	// Asymmetric dip: vertex sits a quarter lag right of the minimum
	cmndf := []float64{1, 0.4, 0.1, 0.2, 1}
	if got := parabolicInterpolation(cmndf, 2); math.Abs(got-2.25) > 1e-9 {
		t.Fatalf("expected refined lag 2.25, got %.4f", got)
	}

	// Degenerate flat triple must fall back to the integer lag
	flat := []float64{1, 0.1, 0.1, 0.1, 1}
	if got := parabolicInterpolation(flat, 2); got != 2 {
		t.Fatalf("expected unrefined lag 2, got %.4f", got)
	}

	// Boundary lags cannot be refined
	if got := parabolicInterpolation(cmndf, 0); got != 0 {
		t.Fatalf("expected lag 0 at lower boundary, got %.4f", got)
	}
	if got := parabolicInterpolation(cmndf, len(cmndf)-1); got != float64(len(cmndf)-1) {
		t.Fatalf("expected unrefined lag at upper boundary, got %.4f", got)
	}
}

func TestSpectralDetectsPureTone(t *testing.T) {
	detector := NewSpectralDetector()
	got, ok := detector.DetectPitch(sineBuffer(440, 44100, 4096, 0.8))
	if !ok {
		t.Fatalf("expected a detection")
	}
	if math.Abs(got-440) > 440*0.015 {
		t.Fatalf("expected ~440 Hz, got %.2f", got)
	}
}

func TestSpectralSilenceReturnsNone(t *testing.T) {
	detector := NewSpectralDetector()
	silent := &audio.Buffer{Samples: make([]float32, 4096), SampleRate: 44100}
	if _, ok := detector.DetectPitch(silent); ok {
		t.Fatalf("expected no detection for an all-zero window")
	}
}
