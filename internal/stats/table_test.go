package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Note", "Accuracy", "Correct"}
	rows := [][]string{
		{"F#", "97.50%", "12"},
		{"파#", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Note Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "F#     97.50%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "파#     8.00%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
