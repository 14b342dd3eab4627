package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/audio"
	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/pitch"
	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/tuner"
	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/ui"
)

const (
	// Audio settings
	channels = 1

	// Caller-side plausibility range for a guitar; estimates outside it
	// are discarded before they reach the engine
	minPlausibleHz = 50.0
	maxPlausibleHz = 1000.0

	// How often to push the input level to the UI
	levelInterval = time.Millisecond * 200
)

var (
	flagSampleRate int
	flagWindowSize int
	flagThreshold  float64
	flagGain       float64
	flagInterval   time.Duration
	flagTuning     string
	flagSpectral   bool
)

var rootCmd = &cobra.Command{
	Use:   "g2tuner",
	Short: "Chromatic guitar tuner for the terminal",
	Long: "g2tuner listens on the default microphone, estimates the fundamental\n" +
		"frequency of a plucked string and shows which string it matches and how\n" +
		"many cents it is off.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&flagSampleRate, "sample-rate", 44100, "capture sample rate in Hz")
	rootCmd.Flags().IntVar(&flagWindowSize, "window", 4096, "analysis window size in samples")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", pitch.DefaultThreshold, "periodicity threshold for the pitch estimator")
	rootCmd.Flags().Float64Var(&flagGain, "gain", 8.0, "input gain factor")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", time.Millisecond*100, "analysis tick interval")
	rootCmd.Flags().StringVar(&flagTuning, "tuning", "", "initial tuning preset (default: first in catalog)")
	rootCmd.Flags().BoolVar(&flagSpectral, "spectral", false, "use the FFT peak detector instead of YIN")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	capturer, err := audio.NewPortAudioCapturer(flagWindowSize, flagSampleRate, channels)
	if err != nil {
		return fmt.Errorf("create audio capturer: %w", err)
	}
	capturer.SetGain(float32(flagGain))

	var detector pitch.Detector = pitch.NewYINDetector(flagThreshold)
	if flagSpectral {
		detector = pitch.NewSpectralDetector()
	}

	engine := tuner.NewEngine()
	if err := selectTuning(engine, flagTuning); err != nil {
		return err
	}

	if err := capturer.Start(); err != nil {
		return fmt.Errorf("start audio capture: %w", err)
	}
	defer capturer.Stop()

	commands := make(chan ui.TuningCommand, 4)
	program := tea.NewProgram(ui.NewModel(engine.Tuning(), commands), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		analysisLoop(ctx, capturer, detector, engine, commands, program)
		return nil
	})

	return g.Wait()
}

// selectTuning rotates the engine's cyclic index until the named preset is
// active. An empty name keeps the catalog's first entry.
func selectTuning(engine *tuner.Engine, name string) error {
	if name == "" {
		return nil
	}
	for range tuner.TuningModes {
		if strings.EqualFold(engine.Tuning().Name, name) {
			return nil
		}
		engine.NextTuning()
	}

	names := make([]string, len(tuner.TuningModes))
	for i, mode := range tuner.TuningModes {
		names[i] = mode.Name
	}
	return fmt.Errorf("unknown tuning %q (have: %s)", name, strings.Join(names, ", "))
}

// analysisLoop is the polling tick: pull one window, estimate its pitch,
// run the engine and hand the result to the UI. The engine is owned by
// this goroutine alone; the UI reaches it only through the command channel.
func analysisLoop(
	ctx context.Context,
	capturer audio.Capturer,
	detector pitch.Detector,
	engine *tuner.Engine,
	commands <-chan ui.TuningCommand,
	program *tea.Program,
) {
	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()

	lastLevel := time.Time{}

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-commands:
			switch cmd {
			case ui.NextTuning:
				engine.NextTuning()
			case ui.PrevTuning:
				engine.PrevTuning()
			}
			program.Send(ui.TuningMsg(engine.Tuning()))

		case <-ticker.C:
			buffer, err := capturer.GetBuffer()
			if err != nil || !buffer.Valid() {
				continue
			}

			if time.Since(lastLevel) > levelInterval {
				rms, db := buffer.Level()
				program.Send(ui.LevelMsg{RMS: rms, DB: db})
				lastLevel = time.Now()
			}

			frequency, ok := detector.DetectPitch(buffer)
			if !ok || frequency < minPlausibleHz || frequency > maxPlausibleHz {
				program.Send(ui.ClearMsg{})
				continue
			}

			program.Send(ui.ResultMsg(engine.Analyze(frequency)))
		}
	}
}
