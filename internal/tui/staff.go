package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/staff"
)

const (
	staffWidth = 21
	noteColumn = staffWidth / 2
	noteHead   = "●"
	lineRune   = "─"
)

// staffRow is one rendered staff position, top to bottom.
type staffRow struct {
	pos   int
	cells []string
}

// renderStaff draws the five staff lines, any ledger lines and the note head
// of q. Rows cover at least the staff and always include the note.
func renderStaff(q quiz.Question) []staffRow {
	pos := q.Position()
	top := max(staff.TopLine, pos)
	bottom := min(staff.BottomLine, pos)

	ledger := map[int]bool{}
	for _, p := range staff.LedgerLinePositions(pos) {
		ledger[p] = true
	}

	rows := make([]staffRow, 0, top-bottom+1)
	for p := top; p >= bottom; p-- {
		cells := make([]string, staffWidth)
		fill := " "
		if p >= staff.BottomLine && p <= staff.TopLine && staff.IsLine(p) {
			fill = lineRune
		}
		for i := range cells {
			cells[i] = fill
		}
		if ledger[p] {
			for i := noteColumn - 2; i <= noteColumn+2; i++ {
				cells[i] = lineRune
			}
		}
		if p == pos {
			cells[noteColumn] = noteHead
			if q.ShowsAccidental() {
				placeGlyph(cells, noteColumn-2, q.Base.Accidental.Glyph())
			}
		}
		rows = append(rows, staffRow{pos: p, cells: cells})
	}
	return rows
}

// placeGlyph writes glyph at col, consuming a second cell when the glyph is
// double width.
func placeGlyph(cells []string, col int, glyph string) {
	if col < 0 || col >= len(cells) || glyph == "" {
		return
	}
	cells[col] = glyph
	if runewidth.StringWidth(glyph) > 1 && col+1 < len(cells) {
		cells[col+1] = ""
	}
}

func (r staffRow) String() string {
	return strings.Join(r.cells, "")
}

// staffLines renders the staff as plain strings.
func staffLines(q quiz.Question) []string {
	rows := renderStaff(q)
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}
