package dto

// QuizOptionDTO is one of the four answer choices shown for a question.
type QuizOptionDTO struct {
	ID   string `json:"id"` // "a", "b", "c" or "d"
	Text string `json:"text"`
}

// QuizQuestionResponse is the payload for an issued question. It deliberately
// carries no marker of which option is correct.
type QuizQuestionResponse struct {
	SessionID    string          `json:"session_id"`
	QuestionID   string          `json:"question_id"`
	SlangTerm    string          `json:"slang_term"`
	QuestionText string          `json:"question_text"`
	Options      []QuizOptionDTO `json:"options"`
	ContextHint  string          `json:"context_hint,omitempty"`
}

type QuizAnswerRequest struct {
	SessionID        string  `json:"session_id" binding:"required"`
	QuestionID       string  `json:"question_id" binding:"required"`
	SelectedOption   string  `json:"selected_option" binding:"required,oneof=a b c d"`
	TimeTakenSeconds float64 `json:"time_taken_seconds" binding:"min=0"`
}

type QuizAnswerResponse struct {
	IsCorrect     bool                `json:"is_correct"`
	PointsEarned  float64             `json:"points_earned"`
	CorrectOption string              `json:"correct_option"`
	Explanation   string              `json:"explanation"`
	Progress      QuizSessionProgress `json:"progress"`
}

type QuizSessionProgress struct {
	SessionID          string  `json:"session_id"`
	QuestionsAnswered  int     `json:"questions_answered"`
	CorrectCount       int     `json:"correct_count"`
	TotalScore         float64 `json:"total_score"`
	Accuracy           float64 `json:"accuracy"` // percent
	ElapsedTimeSeconds float64 `json:"elapsed_time_seconds"`
}

// QuizResult summarizes a finalized session.
type QuizResult struct {
	SessionID        string  `json:"session_id"`
	Score            float64 `json:"score"`
	TotalPossible    float64 `json:"total_possible"`
	CorrectCount     int     `json:"correct_count"`
	TotalQuestions   int     `json:"total_questions"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	ShareText        string  `json:"share_text"`
}

// QuizHistory answers the eligibility query: whether the user may take a quiz
// right now plus their merged historical + in-progress statistics.
type QuizHistory struct {
	CanTakeQuiz    bool    `json:"can_take_quiz"`
	Reason         string  `json:"reason,omitempty"`
	QuizzesToday   int     `json:"quizzes_today"`
	TotalQuizzes   int     `json:"total_quizzes"`
	AverageScore   float64 `json:"average_score"`
	BestScore      float64 `json:"best_score"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
	AccuracyRate   float64 `json:"accuracy_rate"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UsageLimitResponse is the structured 429 body for daily-cap errors.
type UsageLimitResponse struct {
	Error        string `json:"error"`
	LimitType    string `json:"limit_type"`
	CurrentUsage int    `json:"current_usage"`
	Limit        int    `json:"limit"`
}
