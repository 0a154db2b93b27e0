// Package tui provides the Bubble Tea note quiz interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuinote/internal/generator"
	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/staff"
	statsPkg "github.com/verte-zerg/tuinote/internal/stats"
	"github.com/verte-zerg/tuinote/internal/store"
	"github.com/verte-zerg/tuinote/internal/synth"
	"github.com/verte-zerg/tuinote/internal/theory"
)

type noteStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

type tickMsg time.Time

type soundMsg struct {
	err error
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	config            model.Config
	store             *store.Store
	gen               *generator.Generator
	player            *synth.Synth
	settings          generator.Settings
	timbre            synth.Timbre
	names             theory.NameStyle
	weakSet           map[string]struct{}
	weakNoticePrinted bool

	width  int
	height int
	input  textinput.Model

	session  *quiz.Session
	question quiz.Question
	askedAt  time.Time
	now      time.Time
	err      error

	feedback    string
	lastCorrect bool
	soundOff    bool
	noteStats   map[string]*noteStat

	lastAcc    float64
	lastAvgMs  float64
	hasLast    bool
	allAcc     float64
	allAvgMs   float64
	allCorrect int
	allWrong   int
	allTimeMs  int64
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	staffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a quiz TUI model. player may be nil for a silent quiz.
func NewModel(cfg model.Config, store *store.Store, gen *generator.Generator, player *synth.Synth, weakSet map[string]struct{}, weakNoticePrinted bool) *Model {
	timbre, err := synth.ParseTimbre(cfg.Timbre)
	if err != nil {
		timbre = synth.Piano
	}
	names, err := theory.ParseNameStyle(cfg.Names)
	if err != nil {
		names = theory.NamesLetter
	}
	input := textinput.New()
	input.Prompt = "Note: "
	input.Placeholder = "e.g. F#, Bb, sol"
	input.CharLimit = 8
	input.Focus()

	m := &Model{
		config: cfg,
		store:  store,
		gen:    gen,
		player: player,
		settings: generator.Settings{
			Clef:                  cfg.Clef,
			KeySignature:          cfg.Key,
			Range:                 staff.Range{Above: cfg.LedgerAbove, Below: cfg.LedgerBelow},
			Accidentals:           cfg.Accidentals,
			AccidentalProbability: cfg.AccidentalProb,
		},
		timbre:            timbre,
		names:             names,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
		input:             input,
		soundOff:          !cfg.Sound || player == nil,
	}
	m.resetSession()
	m.loadFooterStats()
	return m
}

// Err returns the error that stopped the quiz, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return tea.Batch(textinput.Blink, tick(), m.playCmd())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case soundMsg:
		m.handleSound(msg.err)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit(m.input.Value())
		case tea.KeyCtrlR:
			return m, m.playCmd()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return incorrectStyle.Render(m.err.Error()) + "\n"
	}
	parts := []string{
		titleStyle.Render(m.title()),
		"",
		staffStyle.Render(strings.Join(staffLines(m.question), "\n")),
		"",
		m.input.View(),
		m.renderFeedback(),
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) title() string {
	ks := m.question.KeySignature
	title := fmt.Sprintf("%s · %s", m.question.Clef.Title(), ks.Name)
	if acc := ks.Accidentals(); len(acc) > 0 {
		title += " (" + strings.Join(acc, " ") + ")"
	}
	return title
}

func (m *Model) renderFeedback() string {
	if m.feedback == "" {
		return pendingStyle.Render("Enter to answer · Ctrl+R replay · Esc quit")
	}
	if m.lastCorrect {
		return correctStyle.Render(m.feedback)
	}
	return incorrectStyle.Render(m.feedback)
}

func (m *Model) renderFooter() string {
	if m.session == nil {
		return ""
	}
	r := m.session.Result()
	segments := []string{
		fmt.Sprintf("Question %d/%d", m.session.Progress(), m.session.Length),
		fmt.Sprintf("Score %d/%d", r.Correct, r.Total),
	}
	if !m.askedAt.IsZero() && !m.now.IsZero() && m.now.After(m.askedAt) {
		segments = append(segments, fmt.Sprintf("%ds", int(m.now.Sub(m.askedAt).Seconds())))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%% · %.0fms", m.lastAcc*100, m.lastAvgMs))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f%% · %.0fms", m.allAcc*100, m.allAvgMs))
	if m.soundOff && m.config.Sound {
		segments = append(segments, "sound off")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) submit(raw string) tea.Cmd {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	candidate, err := theory.ParseAnswer(raw)
	if err != nil {
		m.lastCorrect = false
		m.feedback = fmt.Sprintf("Could not read %q", raw)
		m.input.SetValue("")
		return nil
	}
	m.input.SetValue("")

	elapsed := time.Since(m.askedAt)
	q := m.question
	correct := m.session.Record(q, raw, elapsed, quiz.Validate(q, candidate))
	m.updateStats(q, correct, elapsed)

	expected := m.displayName(q)
	m.lastCorrect = correct
	if correct {
		m.feedback = "Correct: " + expected
	} else {
		m.feedback = fmt.Sprintf("Wrong: %s (you said %s)", expected, theory.DisplayName(candidate.Letter, candidate.Accidental, m.names))
	}

	if m.session.Done() {
		m.finishSession()
		m.resetSession()
	} else {
		m.nextQuestion()
	}
	if m.err != nil {
		return tea.Quit
	}
	return m.playCmd()
}

func (m *Model) displayName(q quiz.Question) string {
	p := q.Sounding()
	if p.Accidental == theory.Natural {
		p.Accidental = theory.Unset
	}
	return theory.DisplayName(p.Letter, p.Accidental, m.names)
}

// playCmd starts the current note without waiting for it to end.
func (m *Model) playCmd() tea.Cmd {
	if m.soundOff || m.player == nil {
		return nil
	}
	player := m.player
	p := m.question.Sounding()
	d := m.config.Duration
	timbre := m.timbre
	return func() tea.Msg {
		_, err := player.Start(p, d, timbre)
		return soundMsg{err: err}
	}
}

func (m *Model) handleSound(err error) {
	if err == nil {
		return
	}
	var unavailable *synth.AudioUnavailableError
	if errors.As(err, &unavailable) || errors.Is(err, synth.ErrClosed) {
		m.soundOff = true
	}
	logErrf("sound: %v\n", err)
}

func (m *Model) updateStats(q quiz.Question, correct bool, elapsed time.Duration) {
	note, ok := theory.PitchClass(q.Spelling())
	if !ok {
		return
	}
	entry := m.noteEntry(note)
	if correct {
		entry.correct++
	} else {
		entry.incorrect++
	}
	entry.latencySumMs += elapsed.Milliseconds()
	entry.latencyCount++
}

func (m *Model) noteEntry(note string) *noteStat {
	if m.noteStats == nil {
		m.noteStats = map[string]*noteStat{}
	}
	entry, ok := m.noteStats[note]
	if !ok {
		entry = &noteStat{}
		m.noteStats[note] = entry
	}
	return entry
}

func (m *Model) resetSession() {
	m.session = quiz.NewSession(m.config.Questions, time.Now())
	m.noteStats = map[string]*noteStat{}
	m.nextQuestion()
}

func (m *Model) nextQuestion() {
	var (
		q   quiz.Question
		err error
	)
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		q, err = m.gen.WeightedQuestion(m.settings, m.weakSet, m.config.WeakFactor)
	} else {
		q, err = m.gen.Question(m.settings)
	}
	if err != nil {
		m.err = err
		return
	}
	m.question = q
	m.askedAt = time.Now()
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Clef: m.statsClef()})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	_, avgMs, acc := statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
	m.lastAcc = acc
	m.lastAvgMs = avgMs
	m.hasLast = true

	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allWrong += s.Incorrect
		m.allTimeMs += s.DurationMs
	}
	m.recomputeAllTime()
}

// statsClef filters history by clef unless clefs are drawn at random.
func (m *Model) statsClef() string {
	if strings.EqualFold(m.config.Clef, generator.Random) {
		return ""
	}
	return m.config.Clef
}

func (m *Model) recomputeAllTime() {
	_, avgMs, acc := statsPkg.SessionMetrics(m.allCorrect, m.allWrong, m.allTimeMs)
	m.allAcc = acc
	m.allAvgMs = avgMs
}

func (m *Model) finishSession() {
	endedAt := time.Now()
	r := m.session.Result()
	stats := model.SessionStats{
		StartedAt:      m.session.StartedAt,
		EndedAt:        endedAt,
		Clef:           m.config.Clef,
		Key:            m.config.Key,
		LedgerAbove:    m.config.LedgerAbove,
		LedgerBelow:    m.config.LedgerBelow,
		Accidentals:    m.config.Accidentals,
		AccidentalProb: m.config.AccidentalProb,
		Questions:      r.Total,
		Correct:        r.Correct,
		Incorrect:      r.Total - r.Correct,
		DurationMs:     r.TotalTime.Milliseconds(),
	}

	noteStats := make([]model.NoteStats, 0, len(m.noteStats))
	for note, entry := range m.noteStats {
		noteStats = append(noteStats, model.NoteStats{
			Note:         note,
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}

	if m.store != nil {
		ctx := context.Background()
		if _, err := m.store.InsertSession(ctx, stats, noteStats); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
	}
	_, avgMs, acc := statsPkg.SessionMetrics(stats.Correct, stats.Incorrect, stats.DurationMs)
	m.lastAcc = acc
	m.lastAvgMs = avgMs
	m.hasLast = true
	m.allCorrect += stats.Correct
	m.allWrong += stats.Incorrect
	m.allTimeMs += stats.DurationMs
	m.recomputeAllTime()
	m.feedback += fmt.Sprintf(" · Round done: %d/%d, avg %s", r.Correct, r.Total, r.AverageTime().Round(time.Millisecond))

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	aggs, err := m.store.GetWeakNotes(ctx, m.config.WeakWindow, m.statsClef())
	if err != nil {
		logErrf("failed to load weak notes: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-note focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[string]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakNotes(aggs, m.config.WeakTop)
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
