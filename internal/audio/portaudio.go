package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioCapturer implements audio capture using PortAudio
type PortAudioCapturer struct {
	isCapturing bool
	stream      *portaudio.Stream
	buffer      *Buffer
	bufferSize  int
	sampleRate  int
	channels    int
	bufferMutex sync.Mutex
	gain        float32 // Input signal gain factor
}

// NewPortAudioCapturer creates a new audio capturer using PortAudio
func NewPortAudioCapturer(bufferSize, sampleRate, channels int) (*PortAudioCapturer, error) {
	// Initialize PortAudio
	err := portaudio.Initialize()
	if err != nil {
		return nil, err
	}

	capturer := &PortAudioCapturer{
		isCapturing: false,
		buffer: &Buffer{
			Samples:    make([]float32, 0, bufferSize),
			SampleRate: sampleRate,
		},
		bufferSize: bufferSize,
		sampleRate: sampleRate,
		channels:   channels,
		gain:       1.0,
	}

	return capturer, nil
}

// Start begins audio capture
func (c *PortAudioCapturer) Start() error {
	if c.isCapturing {
		return ErrAlreadyCapturing
	}

	// Open default input stream
	var err error
	c.stream, err = portaudio.OpenDefaultStream(
		c.channels, // input channels
		0,          // output channels (capture only)
		float64(c.sampleRate),
		c.bufferSize/c.channels, // frames per buffer
		c.processAudio,          // callback function
	)
	if err != nil {
		return err
	}

	// Start the stream
	err = c.stream.Start()
	if err != nil {
		c.stream.Close()
		return err
	}

	c.isCapturing = true
	return nil
}

// Stop ends audio capture
func (c *PortAudioCapturer) Stop() error {
	if !c.isCapturing {
		return ErrNotCapturing
	}

	// Stop and close the stream
	err := c.stream.Stop()
	if err != nil {
		return err
	}

	err = c.stream.Close()
	if err != nil {
		return err
	}

	// Terminate PortAudio
	err = portaudio.Terminate()
	if err != nil {
		return err
	}

	c.isCapturing = false
	return nil
}

// processAudio is the callback function for audio processing
func (c *PortAudioCapturer) processAudio(in, _ []float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	// If we have multi-channel input, we'll average the channels
	if c.channels > 1 {
		// Create a mono buffer for averaging channels
		monoBuffer := make([]float32, len(in)/c.channels)

		// Average each set of channel samples and apply gain
		for i := 0; i < len(monoBuffer); i++ {
			sum := float32(0)
			for ch := 0; ch < c.channels; ch++ {
				sum += in[i*c.channels+ch]
			}
			monoBuffer[i] = (sum / float32(c.channels)) * c.gain
		}

		// Update the buffer
		c.buffer.Samples = monoBuffer
	} else {
		// Just copy the mono input and apply gain
		c.buffer.Samples = make([]float32, len(in))
		for i, sample := range in {
			c.buffer.Samples[i] = sample * c.gain
		}
	}
}

// GetBuffer returns a copy of the most recent audio window
func (c *PortAudioCapturer) GetBuffer() (*Buffer, error) {
	if !c.isCapturing {
		return nil, ErrNotCapturing
	}

	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	// Create a copy of the buffer to return
	bufferCopy := &Buffer{
		Samples:    make([]float32, len(c.buffer.Samples)),
		SampleRate: c.buffer.SampleRate,
	}
	copy(bufferCopy.Samples, c.buffer.Samples)

	return bufferCopy, nil
}

// IsCapturing returns true if currently capturing audio
func (c *PortAudioCapturer) IsCapturing() bool {
	return c.isCapturing
}

// SetGain sets the input gain factor
func (c *PortAudioCapturer) SetGain(factor float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	// Ensure gain is positive
	if factor < 0.1 {
		factor = 0.1
	}

	c.gain = factor
}
