package audio

import (
	"errors"
	"math"
)

// Errors
var (
	ErrNotCapturing     = errors.New("audio capture not started")
	ErrAlreadyCapturing = errors.New("audio capture already started")
)

// Buffer represents one window of mono audio samples, normalized to the
// range -1.0..1.0.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Valid reports whether the buffer can be analyzed at all. An empty window
// or a non-positive sample rate is a precondition violation that downstream
// stages treat as "no result" rather than a fault.
func (b *Buffer) Valid() bool {
	return b != nil && len(b.Samples) > 0 && b.SampleRate > 0
}

// RMS returns the root mean square energy of the window.
func (b *Buffer) RMS() float64 {
	if b == nil || len(b.Samples) == 0 {
		return 0
	}

	sumSquares := 0.0
	for _, sample := range b.Samples {
		s := float64(sample)
		sumSquares += s * s
	}

	return math.Sqrt(sumSquares / float64(len(b.Samples)))
}

// Level returns the RMS energy of the window and the corresponding dB level.
func (b *Buffer) Level() (rms, db float64) {
	rms = b.RMS()

	// Calculate dB (with protection against log(0))
	if rms > 0.0000001 {
		db = 20 * math.Log10(rms)
	} else {
		db = -100
	}

	return rms, db
}

// Capturer defines the interface for audio capture
type Capturer interface {
	// Start begins audio capture
	Start() error

	// Stop ends audio capture
	Stop() error

	// GetBuffer returns the current audio buffer
	GetBuffer() (*Buffer, error)

	// IsCapturing returns true if currently capturing audio
	IsCapturing() bool
}
