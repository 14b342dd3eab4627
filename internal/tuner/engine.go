package tuner

import "math"

const (
	// inTuneCents is the tolerance band around the target pitch.
	inTuneCents = 5

	// maxStringDistanceCents is how far (two semitones) a pitch may sit
	// from the closest string before the match stops being useful
	// feedback and is dropped from the result.
	maxStringDistanceCents = 200
)

// noteNames is the chromatic scale starting at C.
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Result is the tuning judgement produced for one analysis tick. It is
// assembled fresh per call and owned by the caller.
type Result struct {
	Frequency     float64       // median-smoothed frequency in Hz
	NoteName      string        // one of the 12 pitch classes
	Octave        int           // MIDI convention, A4 = 440 Hz
	CentsOff      int           // signed deviation from equal temperament
	NearestString *TuningString // nil when no string is within two semitones
	InTune        bool
}

// Engine converts a stream of raw frequency estimates into stable musical
// note judgements: it smooths the stream with a running median, maps the
// smoothed value onto the chromatic scale and relates it to the closest
// string of the active tuning.
//
// An Engine is not safe for concurrent use. Give each input device its own
// instance.
type Engine struct {
	tuningIndex int
	history     history
}

// NewEngine creates an engine with the first catalog tuning active and an
// empty frequency history.
func NewEngine() *Engine {
	return &Engine{}
}

// Tuning returns the active tuning mode.
func (e *Engine) Tuning() TuningMode {
	return TuningModes[e.tuningIndex]
}

// NextTuning advances the active tuning, wrapping past the end of the
// catalog, and returns the newly active mode.
func (e *Engine) NextTuning() TuningMode {
	e.tuningIndex = (e.tuningIndex + 1) % len(TuningModes)
	return e.Tuning()
}

// PrevTuning retreats the active tuning, wrapping past the start of the
// catalog, and returns the newly active mode.
func (e *Engine) PrevTuning() TuningMode {
	e.tuningIndex = (e.tuningIndex - 1 + len(TuningModes)) % len(TuningModes)
	return e.Tuning()
}

// Analyze folds one frequency estimate into the rolling history and maps
// the smoothed value to a note judgement. A non-positive or non-finite
// frequency is a precondition violation; it leaves the history untouched
// and yields the zero Result.
func (e *Engine) Analyze(frequency float64) Result {
	if frequency <= 0 || math.IsInf(frequency, 0) || math.IsNaN(frequency) {
		return Result{}
	}

	e.history.push(frequency)
	smoothed := e.history.median()

	// midi = 12*log2(f/440) + 69, so MIDI 69 = A4.
	exact := 12*math.Log2(smoothed/440.0) + 69
	midi := int(math.Round(exact))
	cents := int(math.Round((exact - float64(midi)) * 100))

	return Result{
		Frequency:     smoothed,
		NoteName:      noteNames[((midi%12)+12)%12],
		Octave:        int(math.Floor(float64(midi)/12)) - 1,
		CentsOff:      cents,
		NearestString: e.nearestString(smoothed),
		InTune:        cents > -inTuneCents && cents < inTuneCents,
	}
}

// nearestString scans the active tuning for the string closest to freq in
// cents. Matches farther than maxStringDistanceCents are rejected.
func (e *Engine) nearestString(freq float64) *TuningString {
	strings := TuningModes[e.tuningIndex].Strings

	var best *TuningString
	bestCents := math.Inf(1)
	for i := range strings {
		cents := math.Abs(1200 * math.Log2(freq/strings[i].Frequency))
		if cents < bestCents {
			bestCents = cents
			best = &strings[i]
		}
	}

	if bestCents > maxStringDistanceCents {
		return nil
	}
	return best
}
