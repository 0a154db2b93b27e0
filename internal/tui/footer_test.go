package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuinote/internal/quiz"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		session:   quiz.NewSession(10, time.Now()),
		hasLast:   true,
		lastAcc:   0.978,
		lastAvgMs: 1240,
		allAcc:    0.969,
		allAvgMs:  1512,
	}
	m.session.Answers = append(m.session.Answers,
		quiz.Answer{Correct: true, Elapsed: time.Second},
		quiz.Answer{Correct: false, Elapsed: time.Second},
	)
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Question 3/10", "Score 1/2", "Last 97.8%", "1240ms", "All-time 96.9%", "1512ms"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterOmitsLastWithoutHistory(t *testing.T) {
	m := &Model{session: quiz.NewSession(5, time.Now())}
	out := m.renderFooter()
	if strings.Contains(out, "Last") {
		t.Fatalf("unexpected last segment: %s", out)
	}
	if !strings.Contains(out, "Question 1/5") {
		t.Fatalf("footer missing progress: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
