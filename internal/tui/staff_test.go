package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/theory"
)

func questionAt(t *testing.T, pitch string, clef staff.Clef) quiz.Question {
	t.Helper()
	p, err := theory.ParsePitch(pitch)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ks := theory.KeySignatureOrDefault("C")
	return quiz.Question{ID: "t", Base: p, Clef: clef, KeySignature: ks, Display: theory.ApplyKeySignature(p, ks)}
}

func TestRenderStaffOnStaff(t *testing.T) {
	rows := renderStaff(questionAt(t, "B4", staff.Treble))
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows for a note on the staff, got %d", len(rows))
	}
	lines := 0
	for _, r := range rows {
		if r.pos%2 == 0 {
			lines++
		}
		if len(r.cells) != staffWidth {
			t.Fatalf("row %d has %d cells", r.pos, len(r.cells))
		}
	}
	if lines != 5 {
		t.Fatalf("expected 5 staff lines, got %d", lines)
	}
	middle := rows[4]
	if middle.pos != 4 || middle.cells[noteColumn] != noteHead {
		t.Fatalf("expected the note head on the middle line")
	}
}

func TestRenderStaffLedgerLines(t *testing.T) {
	// B3 sits at -3 on the treble staff: one ledger line at -2.
	rows := renderStaff(questionAt(t, "B3", staff.Treble))
	if rows[len(rows)-1].pos != -3 {
		t.Fatalf("expected rows down to -3, got %d", rows[len(rows)-1].pos)
	}
	for _, r := range rows {
		hasLedger := r.pos < 0 && r.cells[noteColumn-2] == lineRune
		if r.pos == -2 && !hasLedger {
			t.Fatalf("missing ledger line at -2")
		}
		if r.pos == -1 || r.pos == -3 {
			if r.cells[noteColumn-2] == lineRune {
				t.Fatalf("unexpected ledger line on space %d", r.pos)
			}
		}
	}
}

func TestRenderStaffAccidental(t *testing.T) {
	lines := staffLines(questionAt(t, "F#5", staff.Treble))
	if !strings.Contains(lines[0], "♯") || !strings.Contains(lines[0], noteHead) {
		t.Fatalf("expected sharp and note on the top line, got %q", lines[0])
	}
	plain := staffLines(questionAt(t, "F5", staff.Treble))
	if strings.Contains(plain[0], "♯") {
		t.Fatalf("unexpected accidental on an unaltered note")
	}
}
