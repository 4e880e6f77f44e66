// Package quizerr defines the tagged error types raised by the quiz engine so
// callers can match on the condition instead of comparing message strings.
package quizerr

import "fmt"

// Reason identifies the exact validation failure.
type Reason string

const (
	ReasonSessionNotFound     Reason = "session_not_found"
	ReasonSessionNotActive    Reason = "session_not_active"
	ReasonSessionExpired      Reason = "session_expired"
	ReasonQuestionNotFound    Reason = "question_not_found"
	ReasonNoTermsAvailable    Reason = "no_terms_available"
	ReasonNoQuestionsAnswered Reason = "no_questions_answered"
	ReasonTermExists          Reason = "term_exists"
	ReasonTermNotFound        Reason = "term_not_found"
)

// ValidationError is a recoverable caller mistake or invalid session state.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// UsageLimitError signals the free-tier daily attempt cap. Unlike validation
// errors it carries structured fields for client-side messaging.
type UsageLimitError struct {
	LimitType    string
	CurrentUsage int
	Limit        int
}

func (e *UsageLimitError) Error() string {
	return fmt.Sprintf("daily %s limit reached (%d/%d); upgrade to premium for unlimited quizzes",
		e.LimitType, e.CurrentUsage, e.Limit)
}

func NewUsageLimit(limitType string, currentUsage, limit int) *UsageLimitError {
	return &UsageLimitError{LimitType: limitType, CurrentUsage: currentUsage, Limit: limit}
}
