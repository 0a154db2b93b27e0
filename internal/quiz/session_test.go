package quiz

import (
	"testing"
	"time"
)

func TestSessionResult(t *testing.T) {
	s := NewSession(3, time.Unix(0, 0))
	if s.Progress() != 1 || s.Done() {
		t.Fatalf("fresh session should be on question 1")
	}
	s.Record(Question{}, "C", 2*time.Second, true)
	s.Record(Question{}, "D", 1*time.Second, false)
	s.Record(Question{}, "E", 3*time.Second, true)
	if !s.Done() || s.Progress() != 3 {
		t.Fatalf("expected session to be done")
	}
	r := s.Result()
	if r.Total != 3 || r.Correct != 2 {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.AverageTime() != 2*time.Second {
		t.Fatalf("expected 2s average, got %s", r.AverageTime())
	}
	if got := r.Accuracy(); got < 66.6 || got > 66.7 {
		t.Fatalf("expected ~66.67%% accuracy, got %.2f", got)
	}
}

func TestEmptyResult(t *testing.T) {
	var r Result
	if r.Accuracy() != 0 || r.AverageTime() != 0 {
		t.Fatalf("empty result should be zero")
	}
}
