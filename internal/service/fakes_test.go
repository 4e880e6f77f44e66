package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lshigami/Quagsire/internal/model"
	"github.com/lshigami/Quagsire/internal/repository"
	"gorm.io/gorm"
)

// In-memory collaborator fakes for engine tests.

type fakeTermRepo struct {
	terms   []model.SlangTerm
	failAll bool
}

func (r *fakeTermRepo) Create(term *model.SlangTerm) error {
	r.terms = append(r.terms, *term)
	return nil
}

func (r *fakeTermRepo) FindByName(name string) (*model.SlangTerm, error) {
	if r.failAll {
		return nil, errors.New("catalog unavailable")
	}
	for i := range r.terms {
		if r.terms[i].Name == name {
			term := r.terms[i]
			return &term, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTermRepo) FindAll(category, difficulty string) ([]model.SlangTerm, error) {
	var out []model.SlangTerm
	for _, t := range r.terms {
		if (category == "" || t.Category == category) && (difficulty == "" || t.Difficulty == difficulty) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTermRepo) FindEligible(difficulty string, limit int, excludeNames []string) ([]model.SlangTerm, error) {
	if r.failAll {
		return nil, errors.New("catalog unavailable")
	}
	excluded := make(map[string]bool, len(excludeNames))
	for _, name := range excludeNames {
		excluded[name] = true
	}
	var out []model.SlangTerm
	for _, t := range r.terms {
		if t.QuizEligible && t.Difficulty == difficulty && !excluded[t.Name] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimesQuizzed != out[j].TimesQuizzed {
			return out[i].TimesQuizzed < out[j].TimesQuizzed
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTermRepo) FindByCategory(category string) ([]model.SlangTerm, error) {
	if r.failAll {
		return nil, errors.New("catalog unavailable")
	}
	return r.FindAll(category, "")
}

func (r *fakeTermRepo) RecordQuizOutcome(name string, wasCorrect bool) error {
	for i := range r.terms {
		if r.terms[i].Name == name {
			r.terms[i].TimesQuizzed++
			if wasCorrect {
				r.terms[i].TimesCorrect++
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTermRepo) Delete(name string) error {
	for i := range r.terms {
		if r.terms[i].Name == name {
			r.terms = append(r.terms[:i], r.terms[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSessionStore struct {
	sessions map[string]*model.QuizSession // userID:sessionID
	active   map[string]string             // userID -> sessionID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*model.QuizSession),
		active:   make(map[string]string),
	}
}

func (s *fakeSessionStore) key(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}

func (s *fakeSessionStore) Create(ctx context.Context, session *model.QuizSession) error {
	return s.Update(ctx, session)
}

func (s *fakeSessionStore) Get(ctx context.Context, userID, sessionID string) (*model.QuizSession, error) {
	session, ok := s.sessions[s.key(userID, sessionID)]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *fakeSessionStore) GetActive(ctx context.Context, userID string) (*model.QuizSession, error) {
	sessionID, ok := s.active[userID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusActive {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) Update(ctx context.Context, session *model.QuizSession) error {
	clone := *session
	s.sessions[s.key(session.UserID, session.SessionID)] = &clone
	if session.Status == model.SessionStatusActive {
		s.active[session.UserID] = session.SessionID
	} else {
		delete(s.active, session.UserID)
	}
	return nil
}

type fakeDailyCounter struct {
	counts map[string]int
}

func newFakeDailyCounter() *fakeDailyCounter {
	return &fakeDailyCounter{counts: make(map[string]int)}
}

func (c *fakeDailyCounter) key(userID string, day time.Time) string {
	return userID + ":" + day.UTC().Format("2006-01-02")
}

func (c *fakeDailyCounter) Get(ctx context.Context, userID string, day time.Time) (int, error) {
	return c.counts[c.key(userID, day)], nil
}

func (c *fakeDailyCounter) Increment(ctx context.Context, userID string, day time.Time) (int, error) {
	c.counts[c.key(userID, day)]++
	return c.counts[c.key(userID, day)], nil
}

type fakeAttemptRepo struct {
	attempts []model.QuizAttempt
}

func (r *fakeAttemptRepo) Create(attempt *model.QuizAttempt) error {
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *fakeAttemptRepo) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) StatsForUser(userID string) (*model.QuizStats, error) {
	stats := &model.QuizStats{}
	for _, a := range r.attempts {
		if a.UserID != userID {
			continue
		}
		stats.TotalQuizzes++
		stats.TotalCorrect += a.CorrectCount
		stats.TotalQuestions += a.TotalQuestions
		if a.TotalPossible > 0 {
			pct := a.Score / a.TotalPossible * 100
			stats.AverageScore += pct
			if pct > stats.BestScore {
				stats.BestScore = pct
			}
		}
	}
	if stats.TotalQuizzes > 0 {
		stats.AverageScore /= float64(stats.TotalQuizzes)
	}
	if stats.TotalQuestions > 0 {
		stats.AccuracyRate = float64(stats.TotalCorrect) / float64(stats.TotalQuestions) * 100
	}
	return stats, nil
}

type fakeUserRepo struct {
	tiers map[string]string
}

func (r *fakeUserRepo) GetTier(userID string) (string, error) {
	if tier, ok := r.tiers[userID]; ok {
		return tier, nil
	}
	return model.TierFree, nil
}
