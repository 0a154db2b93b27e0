package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuinote/internal/generator"
	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/theory"
)

func newTestModel(t *testing.T, questions int) *Model {
	t.Helper()
	cfg := model.Config{
		Clef:        "treble",
		Key:         "G",
		LedgerAbove: 1,
		LedgerBelow: 1,
		Questions:   questions,
		Timbre:      "piano",
		Duration:    time.Second,
		Names:       "letter",
	}
	gen := generator.NewWithSource(rand.NewSource(7))
	m := NewModel(cfg, nil, gen, nil, nil, false)
	if err := m.Err(); err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestSubmitCorrectAnswerAdvances(t *testing.T) {
	m := newTestModel(t, 3)
	first := m.question
	m.submit(first.Spelling())
	if !m.lastCorrect {
		t.Fatalf("expected %q to be accepted, feedback %q", first.Spelling(), m.feedback)
	}
	if !strings.HasPrefix(m.feedback, "Correct") {
		t.Fatalf("unexpected feedback %q", m.feedback)
	}
	if got := m.session.Progress(); got != 2 {
		t.Fatalf("progress = %d, want 2", got)
	}
	if len(m.noteStats) != 1 {
		t.Fatalf("expected one tracked note, got %d", len(m.noteStats))
	}
}

func TestSubmitWrongAnswer(t *testing.T) {
	m := newTestModel(t, 3)
	spelling := m.question.Spelling()
	wrong := "C"
	if theory.Enharmonic(spelling, "C") {
		wrong = "D"
	}
	m.submit(wrong)
	if m.lastCorrect {
		t.Fatalf("expected %q to be rejected for %q", wrong, spelling)
	}
	if !strings.HasPrefix(m.feedback, "Wrong") {
		t.Fatalf("unexpected feedback %q", m.feedback)
	}
}

func TestSubmitUnreadableInputDoesNotCount(t *testing.T) {
	m := newTestModel(t, 3)
	m.submit("xyz")
	if len(m.session.Answers) != 0 {
		t.Fatalf("unreadable input should not be recorded")
	}
	if !strings.Contains(m.feedback, "Could not read") {
		t.Fatalf("unexpected feedback %q", m.feedback)
	}
	m.submit("   ")
	if len(m.session.Answers) != 0 {
		t.Fatalf("blank input should not be recorded")
	}
}

func TestFinishingRoundStartsNewSession(t *testing.T) {
	m := newTestModel(t, 2)
	m.submit(m.question.Spelling())
	m.submit(m.question.Spelling())
	if !m.hasLast {
		t.Fatalf("expected last-round stats after finishing")
	}
	if m.lastAcc != 1 {
		t.Fatalf("last accuracy = %v, want 1", m.lastAcc)
	}
	if len(m.session.Answers) != 0 {
		t.Fatalf("expected a fresh session, got %d answers", len(m.session.Answers))
	}
	if !strings.Contains(m.feedback, "Round done: 2/2") {
		t.Fatalf("unexpected feedback %q", m.feedback)
	}
}

func TestSilentModelHasNoPlayCmd(t *testing.T) {
	m := newTestModel(t, 1)
	if cmd := m.playCmd(); cmd != nil {
		t.Fatalf("expected no sound command without a player")
	}
}

func TestViewShowsKeyAndStaff(t *testing.T) {
	m := newTestModel(t, 1)
	out := m.View()
	if !strings.Contains(out, "G Major") {
		t.Fatalf("view missing key name: %s", out)
	}
	if !strings.Contains(out, "●") {
		t.Fatalf("view missing note head: %s", out)
	}
}
