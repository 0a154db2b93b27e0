package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuinote/internal/config"
	"github.com/verte-zerg/tuinote/internal/synth"
	"github.com/verte-zerg/tuinote/internal/theory"
)

const (
	defaultArpeggioNote = 500 * time.Millisecond
	defaultArpeggioGap  = 100 * time.Millisecond
)

var (
	playChord    bool
	playDuration time.Duration
	playGap      time.Duration
	playTimbre   string
	playVolume   float64

	renderNote     string
	renderDuration time.Duration
	renderTimbre   string
	renderVolume   float64
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play NOTE [NOTE...]",
		Short: "Play notes through the speaker",
		Long: "Play one note, or several in sequence. With --chord the notes sound together.\n" +
			"Notes are spelled with an octave, e.g. C4, F#5, Bb3.",
		Args: cobra.MinimumNArgs(1),
		RunE: runPlayCmd,
	}
	cmd.Flags().BoolVar(&playChord, "chord", false, "play all notes at once")
	cmd.Flags().DurationVar(&playDuration, "duration", synth.DefaultDuration, "note length (500ms per note for sequences unless set)")
	cmd.Flags().DurationVar(&playGap, "gap", defaultArpeggioGap, "silence between sequential notes")
	cmd.Flags().StringVar(&playTimbre, "timbre", defaultTimbre, "timbre: piano or sine")
	cmd.Flags().Float64Var(&playVolume, "volume", synth.DefaultVolume, "master volume (0-1)")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	pitches, err := parsePitches(args)
	if err != nil {
		return err
	}
	timbre, err := synth.ParseTimbre(playTimbre)
	if err != nil {
		return fmt.Errorf("invalid --timbre: %w", err)
	}
	if err := checkVolume(playVolume); err != nil {
		return err
	}
	if playDuration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if playGap < 0 {
		return fmt.Errorf("--gap must be >= 0")
	}

	player := synth.New(nil)
	player.SetVolume(playVolume)
	defer func() {
		if derr := player.Dispose(); derr != nil {
			logErrf("failed to close audio: %v\n", derr)
		}
	}()
	if err := player.Initialize(); err != nil {
		return err
	}

	ctx := cmd.Context()
	switch {
	case len(pitches) == 1:
		err = player.PlayTone(ctx, pitches[0], playDuration, timbre)
	case playChord:
		err = player.PlayChord(ctx, pitches, playDuration, timbre)
	default:
		noteDur := playDuration
		if !cmd.Flags().Changed("duration") {
			noteDur = defaultArpeggioNote
		}
		err = player.PlayArpeggio(ctx, pitches, noteDur, playGap, timbre)
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [OUT.wav]",
		Short: "Render a note to a WAV file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRenderCmd,
	}
	cmd.Flags().StringVar(&renderNote, "note", "A4", "note with octave, e.g. C#4")
	cmd.Flags().DurationVar(&renderDuration, "duration", synth.DefaultDuration, "note length")
	cmd.Flags().StringVar(&renderTimbre, "timbre", defaultTimbre, "timbre: piano or sine")
	cmd.Flags().Float64Var(&renderVolume, "volume", synth.DefaultVolume, "master volume (0-1)")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	p, err := theory.ParsePitch(renderNote)
	if err != nil {
		return fmt.Errorf("invalid --note: %w", err)
	}
	timbre, err := synth.ParseTimbre(renderTimbre)
	if err != nil {
		return fmt.Errorf("invalid --timbre: %w", err)
	}
	if err := checkVolume(renderVolume); err != nil {
		return err
	}
	if renderDuration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}

	path := renderPath(args, p, timbre)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	// Rendering never opens the device.
	s := synth.New(nil)
	s.SetVolume(renderVolume)
	if err := s.RenderWAV(f, p, renderDuration, timbre); err != nil {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after a failed render.
			_ = cerr
		}
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func renderPath(args []string, p theory.Pitch, timbre synth.Timbre) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	name := strings.ReplaceAll(p.String(), "#", "s")
	return filepath.Join(config.DefaultRenderDir(), fmt.Sprintf("%s-%s.wav", name, timbre))
}

func parsePitches(args []string) ([]theory.Pitch, error) {
	pitches := make([]theory.Pitch, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			p, err := theory.ParsePitch(field)
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}
	}
	if len(pitches) == 0 {
		return nil, fmt.Errorf("no notes given")
	}
	return pitches, nil
}

func checkVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	return nil
}
