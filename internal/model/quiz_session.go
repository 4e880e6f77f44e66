package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusExpired   = "expired"
)

// FlexTime is a timestamp that unmarshals from either an RFC3339 string or a
// unix-seconds number. Session records written by older clients carried
// ISO-formatted started_at values, so both forms must parse.
type FlexTime struct {
	time.Time
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return fmt.Errorf("cannot parse timestamp %q: %w", raw, err)
		}
		t.Time = parsed
		return nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot parse timestamp %s: %w", s, err)
	}
	whole, frac := math.Modf(secs)
	t.Time = time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
	return nil
}

// QuizSession is the mutable per-user quiz state, stored as a JSON document in
// redis. The correct answer for every issued question lives only in
// CorrectAnswers; the question payload sent to clients never carries it.
type QuizSession struct {
	SessionID         string            `json:"session_id"`
	UserID            string            `json:"user_id"`
	Difficulty        string            `json:"difficulty"`
	Status            string            `json:"status"` // "active", "completed", "expired"
	QuestionsAnswered int               `json:"questions_answered"`
	CorrectCount      int               `json:"correct_count"`
	TotalScore        float64           `json:"total_score"`
	CorrectAnswers    map[string]string `json:"correct_answers"`    // question_id -> option id
	TermNames         map[string]string `json:"term_names"`         // question_id -> slang term
	UsedWrongOptions  map[string]bool   `json:"used_wrong_options"` // distractor texts already shown
	StartedAt         FlexTime          `json:"started_at"`
	LastActivity      FlexTime          `json:"last_activity"`
}

func NewQuizSession(sessionID, userID, difficulty string, now time.Time) *QuizSession {
	return &QuizSession{
		SessionID:        sessionID,
		UserID:           userID,
		Difficulty:       difficulty,
		Status:           SessionStatusActive,
		CorrectAnswers:   make(map[string]string),
		TermNames:        make(map[string]string),
		UsedWrongOptions: make(map[string]bool),
		StartedAt:        FlexTime{now},
		LastActivity:     FlexTime{now},
	}
}

// IsExpired reports whether the session has been inactive for longer than the
// given window. It does not mutate the session.
func (s *QuizSession) IsExpired(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActivity.Time) > window
}

// Expire marks the session expired. The transition is one-way.
func (s *QuizSession) Expire() {
	s.Status = SessionStatusExpired
}

// Touch refreshes the inactivity clock.
func (s *QuizSession) Touch(now time.Time) {
	s.LastActivity = FlexTime{now}
}

// UsedTerms returns the slang terms already issued in this session.
func (s *QuizSession) UsedTerms() []string {
	terms := make([]string, 0, len(s.TermNames))
	for _, name := range s.TermNames {
		terms = append(terms, name)
	}
	return terms
}

// InProgressPercent is the session's running score as a percentage of the
// maximum attainable so far. Zero when nothing has been answered.
func (s *QuizSession) InProgressPercent(pointsPerCorrect float64) float64 {
	if s.QuestionsAnswered == 0 || pointsPerCorrect <= 0 {
		return 0
	}
	return s.TotalScore / (float64(s.QuestionsAnswered) * pointsPerCorrect) * 100
}
