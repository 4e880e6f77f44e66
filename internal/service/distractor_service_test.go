package service

import (
	"testing"

	"github.com/lshigami/Quagsire/internal/model"
)

func categoryTerm(name, meaning, category string) model.SlangTerm {
	return model.SlangTerm{
		Name:         name,
		Meaning:      meaning,
		Category:     category,
		Difficulty:   model.DifficultyBeginner,
		QuizEligible: true,
	}
}

func TestGenerateWrongOptions_DistinctAndExcludesCorrect(t *testing.T) {
	repo := &fakeTermRepo{terms: []model.SlangTerm{
		categoryTerm("rizz", "Charisma", "vibes"),
		categoryTerm("drip", "Stylish outfit", "vibes"),
		categoryTerm("salty", "Bitter or upset", "vibes"),
		categoryTerm("mid", "Mediocre", "vibes"),
		categoryTerm("based", "Confidently true to oneself", "vibes"),
	}}
	svc := NewDistractorService(repo)

	term := repo.terms[0]
	options := svc.GenerateWrongOptions(&term, map[string]bool{})
	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	seen := make(map[string]bool)
	for _, opt := range options {
		if opt == "Charisma" {
			t.Fatalf("correct answer leaked into distractors")
		}
		if seen[opt] {
			t.Fatalf("duplicate distractor %q", opt)
		}
		seen[opt] = true
		if opt != NormalizeAnswerText(opt) {
			t.Fatalf("distractor %q is not normalized", opt)
		}
	}
}

func TestGenerateWrongOptions_AvoidsUsedOptions(t *testing.T) {
	repo := &fakeTermRepo{terms: []model.SlangTerm{
		categoryTerm("rizz", "Charisma", "vibes"),
		categoryTerm("drip", "Stylish outfit", "vibes"),
		categoryTerm("salty", "Bitter or upset", "vibes"),
		categoryTerm("mid", "Mediocre", "vibes"),
		categoryTerm("based", "Confidently true to oneself", "vibes"),
		categoryTerm("ghost", "To suddenly cut off contact", "vibes"),
		categoryTerm("bet", "Agreement", "vibes"),
	}}
	svc := NewDistractorService(repo)

	used := map[string]bool{
		"Stylish outfit":  true,
		"Bitter or upset": true,
		"Mediocre":        true,
	}
	term := repo.terms[0]
	options := svc.GenerateWrongOptions(&term, used)
	for _, opt := range options {
		if used[opt] {
			t.Fatalf("option %q was already shown and fresh candidates remained", opt)
		}
	}
}

func TestGenerateWrongOptions_ReusesWhenPoolTooSmall(t *testing.T) {
	repo := &fakeTermRepo{terms: []model.SlangTerm{
		categoryTerm("rizz", "Charisma", "vibes"),
		categoryTerm("drip", "Stylish outfit", "vibes"),
		categoryTerm("salty", "Bitter or upset", "vibes"),
		categoryTerm("mid", "Mediocre", "vibes"),
	}}
	svc := NewDistractorService(repo)

	// Everything except the correct answer has been shown already.
	used := map[string]bool{
		"Stylish outfit":  true,
		"Bitter or upset": true,
		"Mediocre":        true,
	}
	term := repo.terms[0]
	options := svc.GenerateWrongOptions(&term, used)
	if len(options) != 3 {
		t.Fatalf("got %d options, want 3 even when all candidates are used", len(options))
	}
}

func TestGenerateWrongOptions_PadsWithFillers(t *testing.T) {
	repo := &fakeTermRepo{terms: []model.SlangTerm{
		categoryTerm("rizz", "Charisma", "vibes"),
	}}
	svc := NewDistractorService(repo)

	term := repo.terms[0]
	options := svc.GenerateWrongOptions(&term, map[string]bool{})
	if len(options) != 3 {
		t.Fatalf("got %d options, want 3 from filler padding", len(options))
	}
	seen := make(map[string]bool)
	for _, opt := range options {
		if opt == "Charisma" || seen[opt] {
			t.Fatalf("bad filler set: %v", options)
		}
		seen[opt] = true
	}
}

func TestGenerateWrongOptions_PoolLoadFailureDegrades(t *testing.T) {
	repo := &fakeTermRepo{failAll: true}
	svc := NewDistractorService(repo)

	term := categoryTerm("rizz", "Charisma", "vibes")
	options := svc.GenerateWrongOptions(&term, map[string]bool{})
	if len(options) != 3 {
		t.Fatalf("pool load failure must degrade to fillers, got %v", options)
	}
}

func TestDistractorCache_LoadedOncePerCategory(t *testing.T) {
	repo := &fakeTermRepo{terms: []model.SlangTerm{
		categoryTerm("rizz", "Charisma", "vibes"),
		categoryTerm("drip", "Stylish outfit", "vibes"),
		categoryTerm("salty", "Bitter or upset", "vibes"),
		categoryTerm("mid", "Mediocre", "vibes"),
	}}
	svc := NewDistractorService(repo).(*distractorService)

	term := repo.terms[0]
	svc.GenerateWrongOptions(&term, map[string]bool{})

	// New catalog rows must not appear until the cache is reset.
	repo.terms = append(repo.terms, categoryTerm("based", "Confidently true to oneself", "vibes"))
	for i := 0; i < 20; i++ {
		for _, opt := range svc.GenerateWrongOptions(&term, map[string]bool{}) {
			if opt == "Confidently true to oneself" {
				t.Fatalf("cache reloaded without reset")
			}
		}
	}

	svc.ResetCache()
	found := false
	for i := 0; i < 50 && !found; i++ {
		for _, opt := range svc.GenerateWrongOptions(&term, map[string]bool{}) {
			if opt == "Confidently true to oneself" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("new candidate never appeared after cache reset")
	}
}
