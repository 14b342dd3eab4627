package ui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/tuner"
)

// Constants for UI behavior
const (
	// How long to keep showing the last result after detections stop
	staleAfter = 800 * time.Millisecond

	// Width of the cents gauge in cells; odd so the target mark is centered
	gaugeWidth = 21
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	noteBoxStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Padding(1, 3).
			MarginBottom(1)

	// Tuning-state colors for the note box background
	inTuneColor = lipgloss.Color("#00AA00")
	closeColor  = lipgloss.Color("#AAAA00")
	offColor    = lipgloss.Color("#AA0000")
)

// TuningCommand is an ordinal tuning-selection request emitted by the UI
// and consumed by whichever goroutine owns the engine.
type TuningCommand int

const (
	NextTuning TuningCommand = iota
	PrevTuning
)

// TickMsg represents a timer tick
type TickMsg time.Time

// ResultMsg carries one tuning judgement to display
type ResultMsg tuner.Result

// ClearMsg blanks the note display (silence or no detection)
type ClearMsg struct{}

// LevelMsg carries the current audio input level
type LevelMsg struct {
	RMS float64
	DB  float64
}

// TuningMsg announces the newly active tuning mode
type TuningMsg tuner.TuningMode

// Model represents the UI state
type Model struct {
	result   *tuner.Result
	tuning   tuner.TuningMode
	db       float64
	lastSeen time.Time
	width    int
	height   int
	commands chan<- TuningCommand
}

// NewModel creates a new UI model. Tuning-selection key presses are sent
// on commands without blocking; a full channel drops the request.
func NewModel(initial tuner.TuningMode, commands chan<- TuningCommand) Model {
	return Model{
		tuning:   initial,
		db:       -100,
		commands: commands,
	}
}

// Init initializes the UI model
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update updates the UI model based on messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", "right":
			m.requestTuning(NextTuning)
		case "p", "left":
			m.requestTuning(PrevTuning)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		// Blank the display once detections stop arriving
		if m.result != nil && time.Since(m.lastSeen) > staleAfter {
			m.result = nil
		}
		return m, tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case ResultMsg:
		result := tuner.Result(msg)
		m.result = &result
		m.lastSeen = time.Now()

	case ClearMsg:
		m.result = nil

	case LevelMsg:
		m.db = msg.DB

	case TuningMsg:
		m.tuning = tuner.TuningMode(msg)
	}

	return m, nil
}

func (m Model) requestTuning(cmd TuningCommand) {
	if m.commands == nil {
		return
	}
	select {
	case m.commands <- cmd:
	default:
	}
}

// View renders the UI
func (m Model) View() string {
	s := titleStyle.Render("G2 Tuner - "+m.tuning.Name) + "\n"

	if m.result != nil {
		r := m.result

		s += noteBoxStyle.Background(stateColor(r)).
			Render(fmt.Sprintf("%s%d", r.NoteName, r.Octave))
		s += "\n"

		s += infoStyle.Render(renderGauge(r.CentsOff, gaugeWidth)) + "\n"

		info := fmt.Sprintf("Frequency: %.2f Hz | Cents: %+d", r.Frequency, r.CentsOff)
		s += infoStyle.Render(info) + "\n"

		if r.NearestString != nil {
			hint := fmt.Sprintf("String: %s (%.2f Hz)", r.NearestString.Note, r.NearestString.Frequency)
			if r.InTune {
				hint += " - in tune"
			}
			s += infoStyle.Render(hint) + "\n"
		} else {
			s += infoStyle.Render("No string of this tuning nearby") + "\n"
		}
	} else {
		s += infoStyle.Render("Listening for a string...") + "\n"
	}

	s += "\n"
	s += infoStyle.Render(fmt.Sprintf("Level: %.1f dB", m.db)) + "\n"
	s += helpStyle.Render("n/p: change tuning | q: quit")

	return s
}

func stateColor(r *tuner.Result) lipgloss.Color {
	switch {
	case r.InTune:
		return inTuneColor
	case r.CentsOff > -15 && r.CentsOff < 15:
		return closeColor
	default:
		return offColor
	}
}

// renderGauge draws the cents deviation on a fixed-width strip: the bar in
// the middle is the target, the dot is the played pitch. The -50..50 cent
// range maps linearly onto the cells, clamped at both ends.
func renderGauge(cents, width int) string {
	if width < 3 {
		width = 3
	}
	center := width / 2

	pos := center + int(math.Round(float64(cents)*float64(center)/50.0))
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '-'
	}
	cells[center] = '|'
	cells[pos] = 'o'

	return "flat [" + string(cells) + "] sharp"
}
