package quiz

import "time"

// Answer records one submitted answer.
type Answer struct {
	Question Question
	Input    string
	Correct  bool
	Elapsed  time.Duration
}

// Result summarizes a finished session.
type Result struct {
	Total     int
	Correct   int
	TotalTime time.Duration
}

// Accuracy returns the share of correct answers in percent.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// AverageTime returns the mean response time.
func (r Result) AverageTime() time.Duration {
	if r.Total == 0 {
		return 0
	}
	return r.TotalTime / time.Duration(r.Total)
}

// Session tracks a run of a fixed number of questions.
type Session struct {
	Length    int
	StartedAt time.Time
	Answers   []Answer
}

// NewSession starts a session of n questions.
func NewSession(n int, now time.Time) *Session {
	return &Session{Length: n, StartedAt: now}
}

// Record appends an answer and reports whether it was correct.
func (s *Session) Record(q Question, input string, elapsed time.Duration, correct bool) bool {
	s.Answers = append(s.Answers, Answer{Question: q, Input: input, Correct: correct, Elapsed: elapsed})
	return correct
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.Length > 0 && len(s.Answers) >= s.Length
}

// Progress returns the 1-based number of the current question.
func (s *Session) Progress() int {
	if s.Done() {
		return s.Length
	}
	return len(s.Answers) + 1
}

// Result summarizes the answers so far.
func (s *Session) Result() Result {
	var r Result
	for _, a := range s.Answers {
		r.Total++
		if a.Correct {
			r.Correct++
		}
		r.TotalTime += a.Elapsed
	}
	return r
}
