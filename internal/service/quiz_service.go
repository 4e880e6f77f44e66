package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Quagsire/config"
	"github.com/lshigami/Quagsire/internal/dto"
	"github.com/lshigami/Quagsire/internal/model"
	"github.com/lshigami/Quagsire/internal/quizerr"
	"github.com/lshigami/Quagsire/internal/repository"
	"github.com/rs/zerolog/log"
)

var optionIDs = []string{"a", "b", "c", "d"}

// QuizService is the quiz session engine: eligibility checks, question
// issuance, answer grading, progress queries and session finalization.
type QuizService interface {
	CheckEligibility(ctx context.Context, userID string) (*dto.QuizHistory, error)
	GetNextQuestion(ctx context.Context, userID, difficulty string) (*dto.QuizQuestionResponse, error)
	SubmitAnswer(ctx context.Context, userID string, req dto.QuizAnswerRequest) (*dto.QuizAnswerResponse, error)
	EndSession(ctx context.Context, userID, sessionID string) (*dto.QuizResult, error)
	GetSessionProgress(ctx context.Context, userID, sessionID string) (*dto.QuizSessionProgress, error)
}

type quizService struct {
	termRepo    repository.TermRepository
	sessions    repository.SessionStore
	counters    repository.DailyCounterRepository
	attempts    repository.AttemptRepository
	users       repository.UserRepository
	distractors DistractorService
	scoring     ScoringService

	freeDailyLimit   int
	inactivityWindow time.Duration
	termFetchLimit   int

	now func() time.Time
}

func NewQuizService(
	termRepo repository.TermRepository,
	sessions repository.SessionStore,
	counters repository.DailyCounterRepository,
	attempts repository.AttemptRepository,
	users repository.UserRepository,
	distractors DistractorService,
	scoring ScoringService,
	cfg *config.Config,
) QuizService {
	return &quizService{
		termRepo:         termRepo,
		sessions:         sessions,
		counters:         counters,
		attempts:         attempts,
		users:            users,
		distractors:      distractors,
		scoring:          scoring,
		freeDailyLimit:   cfg.Quiz.FreeDailyLimit,
		inactivityWindow: time.Duration(cfg.Quiz.SessionInactivityMinutes) * time.Minute,
		termFetchLimit:   cfg.Quiz.TermFetchLimit,
		now:              time.Now,
	}
}

// CheckEligibility resolves whether the user may take a quiz right now and
// returns their statistics with any in-progress session folded in.
func (s *quizService) CheckEligibility(ctx context.Context, userID string) (*dto.QuizHistory, error) {
	now := s.now()

	tier, err := s.users.GetTier(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("CheckEligibility: tier lookup failed")
		return nil, fmt.Errorf("resolving user tier: %w", err)
	}

	quizzesToday, err := s.counters.Get(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("reading daily counter: %w", err)
	}

	history := &dto.QuizHistory{
		CanTakeQuiz:  true,
		QuizzesToday: quizzesToday,
	}
	if tier != model.TierPremium && quizzesToday >= s.freeDailyLimit {
		history.CanTakeQuiz = false
		history.Reason = fmt.Sprintf(
			"You have reached the free daily limit of %d questions. Upgrade to premium for unlimited quizzes.",
			s.freeDailyLimit)
	}

	stats, err := s.attempts.StatsForUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("CheckEligibility: stats aggregation failed")
		return nil, fmt.Errorf("aggregating quiz stats: %w", err)
	}
	history.TotalQuizzes = stats.TotalQuizzes
	history.AverageScore = stats.AverageScore
	history.BestScore = stats.BestScore
	history.TotalCorrect = stats.TotalCorrect
	history.TotalQuestions = stats.TotalQuestions
	history.AccuracyRate = stats.AccuracyRate

	// Fold the active session's in-progress contribution into the totals. A
	// session with nothing answered must leave every aggregate untouched.
	active, err := s.loadActiveSession(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if active != nil && active.QuestionsAnswered > 0 {
		history.TotalQuestions += active.QuestionsAnswered
		history.TotalCorrect += active.CorrectCount
		if pct := active.InProgressPercent(s.scoring.MaxPoints()); pct > history.BestScore {
			history.BestScore = pct
		}
		if history.TotalQuestions > 0 {
			history.AccuracyRate = float64(history.TotalCorrect) / float64(history.TotalQuestions) * 100
		}
	}

	return history, nil
}

// GetNextQuestion issues the next question for the user's active session,
// creating the session on first call.
func (s *quizService) GetNextQuestion(ctx context.Context, userID, difficulty string) (*dto.QuizQuestionResponse, error) {
	now := s.now()

	if err := s.enforceDailyLimit(ctx, userID, now); err != nil {
		return nil, err
	}

	session, err := s.loadActiveSession(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = model.NewQuizSession(uuid.NewString(), userID, difficulty, now)
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		if session, err = s.sessions.Get(ctx, userID, session.SessionID); err != nil {
			return nil, fmt.Errorf("reloading session: %w", err)
		}
		log.Info().Str("userID", userID).Str("sessionID", session.SessionID).
			Str("difficulty", difficulty).Msg("Created new quiz session")
	}

	terms, err := s.termRepo.FindEligible(session.Difficulty, s.termFetchLimit, session.UsedTerms())
	if err != nil {
		return nil, fmt.Errorf("fetching eligible terms: %w", err)
	}
	if len(terms) == 0 {
		return nil, quizerr.NewValidation(quizerr.ReasonNoTermsAvailable,
			"not enough %s terms available for a new question", session.Difficulty)
	}
	term := terms[0]

	questionID := uuid.NewString()
	correctText := NormalizeAnswerText(term.Meaning)
	wrongTexts := s.distractors.GenerateWrongOptions(&term, session.UsedWrongOptions)

	options, correctOptionID := shuffleOptions(correctText, wrongTexts)

	session.CorrectAnswers[questionID] = correctOptionID
	session.TermNames[questionID] = term.Name
	for _, text := range wrongTexts {
		session.UsedWrongOptions[text] = true
	}
	session.Touch(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	return &dto.QuizQuestionResponse{
		SessionID:    session.SessionID,
		QuestionID:   questionID,
		SlangTerm:    term.Name,
		QuestionText: fmt.Sprintf("What does '%s' mean?", term.Name),
		Options:      options,
		ContextHint:  term.ExampleUsage,
	}, nil
}

// SubmitAnswer grades one answer against the session's recorded answer key.
func (s *quizService) SubmitAnswer(ctx context.Context, userID string, req dto.QuizAnswerRequest) (*dto.QuizAnswerResponse, error) {
	now := s.now()

	session, err := s.loadOwnedSession(ctx, userID, req.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == model.SessionStatusActive && session.IsExpired(now, s.inactivityWindow) {
		session.Expire()
		if err := s.sessions.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("persisting expired session: %w", err)
		}
		return nil, quizerr.NewValidation(quizerr.ReasonSessionExpired,
			"quiz session expired after %d minutes of inactivity; start a new quiz", int(s.inactivityWindow.Minutes()))
	}
	if session.Status != model.SessionStatusActive {
		return nil, quizerr.NewValidation(quizerr.ReasonSessionNotActive,
			"quiz session is %s and no longer accepts answers", session.Status)
	}

	correctOptionID, ok := session.CorrectAnswers[req.QuestionID]
	if !ok {
		return nil, quizerr.NewValidation(quizerr.ReasonQuestionNotFound,
			"question not found in this session")
	}

	if err := s.enforceDailyLimit(ctx, userID, now); err != nil {
		return nil, err
	}

	isCorrect := req.SelectedOption == correctOptionID
	points := s.scoring.Points(isCorrect, req.TimeTakenSeconds)

	session.QuestionsAnswered++
	if isCorrect {
		session.CorrectCount++
	}
	session.TotalScore += points
	session.Touch(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	if _, err := s.counters.Increment(ctx, userID, now); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("SubmitAnswer: daily counter increment failed")
	}

	termName := session.TermNames[req.QuestionID]
	if err := s.termRepo.RecordQuizOutcome(termName, isCorrect); err != nil {
		log.Warn().Err(err).Str("term", termName).Msg("SubmitAnswer: failed to record quiz outcome on term")
	}

	explanation := s.buildExplanation(termName)
	return &dto.QuizAnswerResponse{
		IsCorrect:     isCorrect,
		PointsEarned:  points,
		CorrectOption: correctOptionID,
		Explanation:   explanation,
		Progress:      progressSnapshot(session, now),
	}, nil
}

// EndSession finalizes a session into a permanent historical record.
func (s *quizService) EndSession(ctx context.Context, userID, sessionID string) (*dto.QuizResult, error) {
	now := s.now()

	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, quizerr.NewValidation(quizerr.ReasonSessionNotActive,
			"quiz session is already completed")
	}
	if session.QuestionsAnswered == 0 {
		return nil, quizerr.NewValidation(quizerr.ReasonNoQuestionsAnswered,
			"cannot end a quiz session with no answered questions")
	}

	attempt, err := s.finalizeSession(ctx, session, now)
	if err != nil {
		return nil, err
	}

	percent := 0.0
	if attempt.TotalPossible > 0 {
		percent = attempt.Score / attempt.TotalPossible * 100
	}
	return &dto.QuizResult{
		SessionID:        session.SessionID,
		Score:            attempt.Score,
		TotalPossible:    attempt.TotalPossible,
		CorrectCount:     attempt.CorrectCount,
		TotalQuestions:   attempt.TotalQuestions,
		TimeTakenSeconds: attempt.TimeTakenSeconds,
		ShareText: fmt.Sprintf("I scored %.1f/%.0f (%.0f%%) on the %s slang quiz!",
			attempt.Score, attempt.TotalPossible, percent, session.Difficulty),
	}, nil
}

// GetSessionProgress reports the live session's progress without mutating it.
func (s *quizService) GetSessionProgress(ctx context.Context, userID, sessionID string) (*dto.QuizSessionProgress, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	progress := progressSnapshot(session, s.now())
	return &progress, nil
}

// loadOwnedSession fetches a session by id for the given user. An id owned by
// another user reports plain not-found so existence is not leaked.
func (s *quizService) loadOwnedSession(ctx context.Context, userID, sessionID string) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, userID, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, quizerr.NewValidation(quizerr.ReasonSessionNotFound, "quiz session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.UserID != userID {
		return nil, quizerr.NewValidation(quizerr.ReasonSessionNotFound, "quiz session not found")
	}
	return session, nil
}

// loadActiveSession returns the user's active session, lazily expiring one
// that has gone stale. Returns nil when there is no usable active session.
func (s *quizService) loadActiveSession(ctx context.Context, userID string, now time.Time) (*model.QuizSession, error) {
	session, err := s.sessions.GetActive(ctx, userID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading active session: %w", err)
	}
	if session.IsExpired(now, s.inactivityWindow) {
		session.Expire()
		if err := s.sessions.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("persisting expired session: %w", err)
		}
		return nil, nil
	}
	return session, nil
}

// enforceDailyLimit raises the usage-limit error for free-tier users at the
// cap. Before raising it finalizes the active session when that session has
// answered questions, so partial results are not lost.
func (s *quizService) enforceDailyLimit(ctx context.Context, userID string, now time.Time) error {
	tier, err := s.users.GetTier(userID)
	if err != nil {
		return fmt.Errorf("resolving user tier: %w", err)
	}
	if tier == model.TierPremium {
		return nil
	}

	count, err := s.counters.Get(ctx, userID, now)
	if err != nil {
		return fmt.Errorf("reading daily counter: %w", err)
	}
	if count < s.freeDailyLimit {
		return nil
	}

	if active, err := s.loadActiveSession(ctx, userID, now); err != nil {
		return err
	} else if active != nil && active.QuestionsAnswered > 0 {
		if _, err := s.finalizeSession(ctx, active, now); err != nil {
			log.Error().Err(err).Str("sessionID", active.SessionID).
				Msg("Failed to finalize session at daily limit")
		} else {
			log.Info().Str("sessionID", active.SessionID).
				Msg("Finalized in-progress session at daily limit")
		}
	}

	return quizerr.NewUsageLimit("questions", count, s.freeDailyLimit)
}

// finalizeSession archives the session as a historical attempt and marks the
// live record completed.
func (s *quizService) finalizeSession(ctx context.Context, session *model.QuizSession, now time.Time) (*model.QuizAttempt, error) {
	attempt := &model.QuizAttempt{
		SessionID:        session.SessionID,
		UserID:           session.UserID,
		Difficulty:       session.Difficulty,
		Score:            session.TotalScore,
		TotalPossible:    float64(session.QuestionsAnswered) * s.scoring.MaxPoints(),
		CorrectCount:     session.CorrectCount,
		TotalQuestions:   session.QuestionsAnswered,
		TimeTakenSeconds: now.Sub(session.StartedAt.Time).Seconds(),
		CompletedAt:      now,
	}
	if err := s.attempts.Create(attempt); err != nil {
		return nil, fmt.Errorf("archiving session: %w", err)
	}

	session.Status = model.SessionStatusCompleted
	session.Touch(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("marking session completed: %w", err)
	}
	return attempt, nil
}

func (s *quizService) buildExplanation(termName string) string {
	term, err := s.termRepo.FindByName(termName)
	if err != nil {
		log.Warn().Err(err).Str("term", termName).Msg("Explanation lookup failed")
		return fmt.Sprintf("'%s' — see the lexicon for details.", termName)
	}
	explanation := fmt.Sprintf("'%s' means: %s.", term.Name, NormalizeAnswerText(term.Meaning))
	if term.ExampleUsage != "" {
		explanation += fmt.Sprintf(" Example: %s", term.ExampleUsage)
	}
	return explanation
}

// shuffleOptions assigns ids a-d to the correct text plus three wrong texts in
// random order and reports which id landed on the correct answer.
func shuffleOptions(correctText string, wrongTexts []string) ([]dto.QuizOptionDTO, string) {
	texts := append([]string{correctText}, wrongTexts...)
	rand.Shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
	})

	options := make([]dto.QuizOptionDTO, len(texts))
	correctID := ""
	for i, text := range texts {
		options[i] = dto.QuizOptionDTO{ID: optionIDs[i], Text: text}
		if text == correctText {
			correctID = optionIDs[i]
		}
	}
	return options, correctID
}

func progressSnapshot(session *model.QuizSession, now time.Time) dto.QuizSessionProgress {
	accuracy := 0.0
	if session.QuestionsAnswered > 0 {
		accuracy = float64(session.CorrectCount) / float64(session.QuestionsAnswered) * 100
	}
	return dto.QuizSessionProgress{
		SessionID:          session.SessionID,
		QuestionsAnswered:  session.QuestionsAnswered,
		CorrectCount:       session.CorrectCount,
		TotalScore:         session.TotalScore,
		Accuracy:           accuracy,
		ElapsedTimeSeconds: now.Sub(session.StartedAt.Time).Seconds(),
	}
}
