package tuner

// TuningString pairs a string's note label with its reference frequency.
type TuningString struct {
	Note      string
	Frequency float64 // Hz
}

// TuningMode is a named assignment of target pitches to the six strings,
// ordered low to high.
type TuningMode struct {
	Name    string
	Strings []TuningString
}

// TuningModes is the static preset catalog. Read-only at runtime; the only
// mutable piece of tuning state is which entry is current, tracked by the
// engine's index.
var TuningModes = []TuningMode{
	{
		Name: "Standard",
		Strings: []TuningString{
			{Note: "E2", Frequency: 82.41},
			{Note: "A2", Frequency: 110.00},
			{Note: "D3", Frequency: 146.83},
			{Note: "G3", Frequency: 196.00},
			{Note: "B3", Frequency: 246.94},
			{Note: "E4", Frequency: 329.63},
		},
	},
	{
		Name: "Drop D",
		Strings: []TuningString{
			{Note: "D2", Frequency: 73.42},
			{Note: "A2", Frequency: 110.00},
			{Note: "D3", Frequency: 146.83},
			{Note: "G3", Frequency: 196.00},
			{Note: "B3", Frequency: 246.94},
			{Note: "E4", Frequency: 329.63},
		},
	},
	{
		Name: "Half-Step Down",
		Strings: []TuningString{
			{Note: "D#2", Frequency: 77.78},
			{Note: "G#2", Frequency: 103.83},
			{Note: "C#3", Frequency: 138.59},
			{Note: "F#3", Frequency: 185.00},
			{Note: "A#3", Frequency: 233.08},
			{Note: "D#4", Frequency: 311.13},
		},
	},
	{
		Name: "Open G",
		Strings: []TuningString{
			{Note: "D2", Frequency: 73.42},
			{Note: "G2", Frequency: 98.00},
			{Note: "D3", Frequency: 146.83},
			{Note: "G3", Frequency: 196.00},
			{Note: "B3", Frequency: 246.94},
			{Note: "D4", Frequency: 293.66},
		},
	},
	{
		Name: "DADGAD",
		Strings: []TuningString{
			{Note: "D2", Frequency: 73.42},
			{Note: "A2", Frequency: 110.00},
			{Note: "D3", Frequency: 146.83},
			{Note: "G3", Frequency: 196.00},
			{Note: "A3", Frequency: 220.00},
			{Note: "D4", Frequency: 293.66},
		},
	},
}
