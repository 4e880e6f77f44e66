package service

import (
	"math/rand"
	"sync"

	"github.com/lshigami/Quagsire/internal/model"
	"github.com/lshigami/Quagsire/internal/repository"
	"github.com/rs/zerolog/log"
)

// fillerOptions pad out a question when a category cannot supply three
// distinct distractors. Already in normalized form.
var fillerOptions = []string{"Bad", "Okay", "Average", "Cool story", "No idea", "Something else"}

// DistractorService produces plausible wrong-answer texts for a term. Pools
// are built per category from the lexicon, once, and cached for the process
// lifetime. A pool that fails to load degrades to empty; it never fails a
// question.
type DistractorService interface {
	GenerateWrongOptions(term *model.SlangTerm, usedOptions map[string]bool) []string
	ResetCache()
}

type distractorService struct {
	termRepo repository.TermRepository

	mu     sync.RWMutex
	pools  map[string][]string // category -> normalized candidate texts
	loaded map[string]bool
}

func NewDistractorService(termRepo repository.TermRepository) DistractorService {
	return &distractorService{
		termRepo: termRepo,
		pools:    make(map[string][]string),
		loaded:   make(map[string]bool),
	}
}

// GenerateWrongOptions returns exactly 3 normalized option texts, distinct
// from each other and from the term's own (normalized) meaning. Options
// already shown in this session are avoided best-effort; when exclusion would
// leave fewer than 3 candidates, used ones are reconsidered rather than
// failing the question.
func (s *distractorService) GenerateWrongOptions(term *model.SlangTerm, usedOptions map[string]bool) []string {
	correct := NormalizeAnswerText(term.Meaning)
	pool := s.ensurePool(term.Category)

	seen := make(map[string]bool, len(pool))
	var fresh, used []string
	for _, candidate := range pool {
		if candidate == "" || candidate == correct || seen[candidate] {
			continue
		}
		seen[candidate] = true
		if usedOptions[candidate] {
			used = append(used, candidate)
		} else {
			fresh = append(fresh, candidate)
		}
	}

	picked := sampleN(fresh, 3)
	if len(picked) < 3 {
		picked = append(picked, sampleN(used, 3-len(picked))...)
	}

	// Pad with generic fillers so a question always has four options.
	for _, filler := range fillerOptions {
		if len(picked) >= 3 {
			break
		}
		if filler == correct || contains(picked, filler) {
			continue
		}
		picked = append(picked, filler)
	}
	return picked[:3]
}

// ResetCache drops every cached pool. Used by tests and by admin reloads
// after bulk lexicon changes.
func (s *distractorService) ResetCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools = make(map[string][]string)
	s.loaded = make(map[string]bool)
}

// ensurePool lazily loads the candidate pool for a category. Load failures
// are tolerated: the category is marked loaded with an empty pool so the
// catalog is not hammered on every question. Two racing loaders both write
// the same derived data, so last-write-wins is acceptable.
func (s *distractorService) ensurePool(category string) []string {
	s.mu.RLock()
	if s.loaded[category] {
		pool := s.pools[category]
		s.mu.RUnlock()
		return pool
	}
	s.mu.RUnlock()

	var pool []string
	terms, err := s.termRepo.FindByCategory(category)
	if err != nil {
		log.Warn().Err(err).Str("category", category).Msg("Failed to load distractor pool, degrading to empty")
	} else {
		dedup := make(map[string]bool, len(terms))
		for _, t := range terms {
			text := NormalizeAnswerText(t.Meaning)
			if text == "" || dedup[text] {
				continue
			}
			dedup[text] = true
			pool = append(pool, text)
		}
	}

	s.mu.Lock()
	s.pools[category] = pool
	s.loaded[category] = true
	s.mu.Unlock()
	return pool
}

// sampleN picks up to n elements at random without replacement.
func sampleN(candidates []string, n int) []string {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	shuffled := make([]string, len(candidates))
	copy(shuffled, candidates)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
