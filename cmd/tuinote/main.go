// Package main provides the CLI entrypoint for tuinote.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuinote/internal/config"
	"github.com/verte-zerg/tuinote/internal/generator"
	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/stats"
	"github.com/verte-zerg/tuinote/internal/statsui"
	"github.com/verte-zerg/tuinote/internal/store"
	"github.com/verte-zerg/tuinote/internal/synth"
	"github.com/verte-zerg/tuinote/internal/theory"
	"github.com/verte-zerg/tuinote/internal/tui"
)

const (
	defaultClef           = "treble"
	defaultKey            = theory.DefaultKeySignatureID
	defaultLedger         = 2
	defaultAccidentalProb = 0.3
	defaultQuestions      = 10
	defaultTimbre         = "piano"
	defaultDuration       = synth.DefaultDuration
	defaultVolume         = synth.DefaultVolume
	defaultNames          = "letter"
	defaultWeakTop        = 3
	defaultWeakFactor     = 2.0
	defaultWeakWindow     = 20
	defaultCurveWindow    = 20
)

var (
	quizClef           string
	quizKey            string
	quizLedgerAbove    int
	quizLedgerBelow    int
	quizAccidentals    bool
	quizAccidentalProb float64
	quizQuestions      int
	quizSound          bool
	quizTimbre         string
	quizDuration       time.Duration
	quizVolume         float64
	quizNames          string
	quizFocusWeak      bool
	quizWeakTop        int
	quizWeakFactor     float64
	quizWeakWindow     int

	statsClef        string
	statsKey         string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsNotes       string
	statsNames       string
	statsPlain       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuinote",
		Short:         "TUI note reading trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&quizClef, "clef", defaultClef, "clef: treble, bass, alto, tenor or random")
	flags.StringVar(&quizKey, "key", defaultKey, "key signature id (see `tuinote keys`) or random")
	flags.IntVar(&quizLedgerAbove, "ledger-above", defaultLedger, "ledger lines allowed above the staff (0-5)")
	flags.IntVar(&quizLedgerBelow, "ledger-below", defaultLedger, "ledger lines allowed below the staff (0-5)")
	flags.BoolVar(&quizAccidentals, "accidentals", false, "add random sharps, flats and naturals")
	flags.Float64Var(&quizAccidentalProb, "accidental-prob", defaultAccidentalProb, "probability of an added accidental (0-1)")
	flags.IntVar(&quizQuestions, "questions", defaultQuestions, "questions per round")
	flags.BoolVar(&quizSound, "sound", true, "play each note")
	flags.StringVar(&quizTimbre, "timbre", defaultTimbre, "timbre: piano or sine")
	flags.DurationVar(&quizDuration, "duration", defaultDuration, "note length")
	flags.Float64Var(&quizVolume, "volume", defaultVolume, "master volume (0-1)")
	flags.StringVar(&quizNames, "names", defaultNames, "note names: letter, latin or korean")
	flags.BoolVar(&quizFocusWeak, "focus-weak", false, "bias questions toward weak notes")
	flags.IntVar(&quizWeakTop, "weak-top", defaultWeakTop, "number of weak notes to focus on")
	flags.Float64Var(&quizWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak notes")
	flags.IntVar(&quizWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak notes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	q := fileCfg.Quiz
	applyConfig(cmd, "clef", &quizClef, q.Clef)
	applyConfig(cmd, "key", &quizKey, q.Key)
	applyConfig(cmd, "ledger-above", &quizLedgerAbove, q.LedgerAbove)
	applyConfig(cmd, "ledger-below", &quizLedgerBelow, q.LedgerBelow)
	applyConfig(cmd, "accidentals", &quizAccidentals, q.Accidentals)
	applyConfig(cmd, "accidental-prob", &quizAccidentalProb, q.AccidentalProb)
	applyConfig(cmd, "questions", &quizQuestions, q.Questions)
	applyConfig(cmd, "sound", &quizSound, q.Sound)
	applyConfig(cmd, "timbre", &quizTimbre, q.Timbre)
	applyDurationConfig(cmd, "duration", &quizDuration, q.DurationMs)
	applyConfig(cmd, "volume", &quizVolume, q.Volume)
	applyConfig(cmd, "names", &quizNames, q.Names)
	applyConfig(cmd, "focus-weak", &quizFocusWeak, q.FocusWeak)
	applyConfig(cmd, "weak-top", &quizWeakTop, q.WeakTop)
	applyConfig(cmd, "weak-factor", &quizWeakFactor, q.WeakFactor)
	applyConfig(cmd, "weak-window", &quizWeakWindow, q.WeakWindow)

	cfg := model.Config{
		Clef:           strings.ToLower(strings.TrimSpace(quizClef)),
		Key:            strings.TrimSpace(quizKey),
		LedgerAbove:    quizLedgerAbove,
		LedgerBelow:    quizLedgerBelow,
		Accidentals:    quizAccidentals,
		AccidentalProb: quizAccidentalProb,
		Questions:      quizQuestions,
		Sound:          quizSound,
		Timbre:         quizTimbre,
		Duration:       quizDuration,
		Volume:         quizVolume,
		Names:          quizNames,
		FocusWeak:      quizFocusWeak,
		WeakTop:        quizWeakTop,
		WeakFactor:     quizWeakFactor,
		WeakWindow:     quizWeakWindow,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	weakSet := map[string]struct{}{}
	weakNoticePrinted := false
	if cfg.FocusWeak {
		clef := cfg.Clef
		if clef == generator.Random {
			clef = ""
		}
		aggs, err := st.GetWeakNotes(cmd.Context(), cfg.WeakWindow, clef)
		if err != nil {
			logErrf("failed to load weak notes: %v\n", err)
		} else {
			weakSet = stats.SelectWeakNotes(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-note focus yet; using normal generator")
				weakNoticePrinted = true
			}
		}
	}

	var player *synth.Synth
	if cfg.Sound {
		player = synth.New(nil)
		player.SetVolume(cfg.Volume)
		defer func() {
			if derr := player.Dispose(); derr != nil {
				logErrf("failed to close audio: %v\n", derr)
			}
		}()
	}

	gen := generator.New()
	m := tui.NewModel(cfg, st, gen, player, weakSet, weakNoticePrinted)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return m.Err()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key signatures and clefs",
		Args:  cobra.NoArgs,
		RunE:  runKeysCmd,
	}
}

func runKeysCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, "Key signatures"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, ks := range theory.KeySignatures() {
		acc := strings.Join(ks.Accidentals(), " ")
		if acc == "" {
			acc = "-"
		}
		if _, err := fmt.Fprintf(out, "  %-3s %-9s %-8s %s\n", ks.ID, ks.Name, ks.Type(), acc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(out, "\nClefs"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, c := range staff.Clefs() {
		lo, hi := c.OctaveRange()
		ref, pos := c.Reference()
		if _, err := fmt.Fprintf(out, "  %-7s %s on position %d, octaves %d-%d\n", c, ref, pos, lo, hi); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsClef, "clef", "", "clef filter")
	cmd.Flags().StringVar(&statsKey, "key", "", "key signature filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsNotes, "notes", "", "notes for per-note curves, e.g. \"C, F#\"")
	cmd.Flags().StringVar(&statsNames, "names", defaultNames, "note names: letter, latin or korean")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	names, err := theory.ParseNameStyle(statsNames)
	if err != nil {
		return fmt.Errorf("invalid --names value: %w", err)
	}
	notes, err := statsui.ParseNotes(statsNotes)
	if err != nil {
		return fmt.Errorf("invalid --notes value: %w", err)
	}

	cfg := model.StatsConfig{
		Clef:        strings.ToLower(strings.TrimSpace(statsClef)),
		Key:         strings.TrimSpace(statsKey),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Notes:       statsNotes,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return renderPlainStats(cmd, st, cfg, notes, names)
	}

	m := statsui.NewModel(st, cfg, names)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig, notes []string, names theory.NameStyle) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	width := stats.TerminalWidth()
	useColor := stats.ShouldUseColor(out)
	if err := stats.RenderCurvesWithSize(out, report.Sessions, cfg.CurveWindow, width, useColor); err != nil {
		return err
	}
	label := func(note string) string {
		letter, acc, err := theory.ParseSpelling(note)
		if err != nil {
			return note
		}
		return theory.DisplayName(letter, acc, names)
	}
	if err := stats.RenderNoteTable(out, report.NoteAggsWindow, label); err != nil {
		return err
	}
	if len(notes) == 0 {
		notes = stats.TopNotesByFrequency(report.NoteAggsAll, 5)
	}
	ids := make([]int64, len(report.Sessions))
	for i, s := range report.Sessions {
		ids[i] = s.SessionID
	}
	perSession, err := st.ListNoteStatsForSessions(ctx, ids, notes)
	if err != nil {
		return fmt.Errorf("failed to load note curves: %w", err)
	}
	return stats.RenderNoteCurves(out, report.Sessions, perSession, notes, cfg.CurveWindow, width, useColor)
}

type configValue interface {
	~string | ~int | ~bool | ~float64
}

// applyConfig copies a file value into target unless the flag was set.
func applyConfig[T configValue](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, ms *int) {
	if ms == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*ms) * time.Millisecond
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuinote configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# clef = %q           # treble, bass, alto, tenor or random
# key = %q                 # Key signature id (tuinote keys) or random
# ledger-above = %d           # Ledger lines allowed above the staff (0-5)
# ledger-below = %d           # Ledger lines allowed below the staff (0-5)
# accidentals = false        # Add random sharps, flats and naturals
# accidental-prob = %.2f     # Probability of an added accidental (0-1)
# questions = %d             # Questions per round
# sound = true               # Play each note
# timbre = %q           # piano or sine
# duration = %d            # Note length in milliseconds
# volume = %.2f              # Master volume (0-1)
# names = %q           # letter, latin or korean
# focus-weak = false         # Bias questions toward weak notes
# weak-top = %d               # Number of weak notes to focus on
# weak-factor = %.1f         # Extra weight for weak notes
# weak-window = %d           # Number of recent sessions to compute weak notes
`,
		defaultClef,
		defaultKey,
		defaultLedger,
		defaultLedger,
		defaultAccidentalProb,
		defaultQuestions,
		defaultTimbre,
		defaultDuration.Milliseconds(),
		defaultVolume,
		defaultNames,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Clef != generator.Random {
		if _, err := staff.ParseClef(cfg.Clef); err != nil {
			return fmt.Errorf("invalid --clef: %w", err)
		}
	}
	if !strings.EqualFold(cfg.Key, generator.Random) {
		if _, ok := theory.LookupKeySignature(cfg.Key); !ok {
			return fmt.Errorf("unknown --key %q (see `tuinote keys`)", cfg.Key)
		}
	}
	if err := (staff.Range{Above: cfg.LedgerAbove, Below: cfg.LedgerBelow}).Validate(); err != nil {
		return fmt.Errorf("invalid ledger range: %w", err)
	}
	if cfg.AccidentalProb < 0 || cfg.AccidentalProb > 1 {
		return fmt.Errorf("--accidental-prob must be between 0 and 1")
	}
	if cfg.Questions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if _, err := synth.ParseTimbre(cfg.Timbre); err != nil {
		return fmt.Errorf("invalid --timbre: %w", err)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	if _, err := theory.ParseNameStyle(cfg.Names); err != nil {
		return fmt.Errorf("invalid --names: %w", err)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
