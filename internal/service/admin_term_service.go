package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quagsire/internal/dto"
	"github.com/lshigami/Quagsire/internal/model"
	"github.com/lshigami/Quagsire/internal/quizerr"
	"github.com/lshigami/Quagsire/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminTermService manages the slang lexicon that feeds quiz generation.
type AdminTermService interface {
	CreateTerm(req dto.TermCreateDTO) (*dto.TermResponseDTO, error)
	GetTerm(name string) (*dto.TermResponseDTO, error)
	ListTerms(category, difficulty string) ([]dto.TermResponseDTO, error)
	DeleteTerm(name string) error
}

type adminTermService struct {
	termRepo    repository.TermRepository
	distractors DistractorService
}

func NewAdminTermService(termRepo repository.TermRepository, distractors DistractorService) AdminTermService {
	return &adminTermService{termRepo: termRepo, distractors: distractors}
}

func (s *adminTermService) CreateTerm(req dto.TermCreateDTO) (*dto.TermResponseDTO, error) {
	if existing, err := s.termRepo.FindByName(req.Name); err == nil && existing != nil {
		return nil, quizerr.NewValidation(quizerr.ReasonTermExists, "term '%s' already exists", req.Name)
	}

	term := model.SlangTerm{
		Name:         req.Name,
		Meaning:      req.Meaning,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		ExampleUsage: req.ExampleUsage,
		QuizEligible: true,
	}
	if req.QuizEligible != nil {
		term.QuizEligible = *req.QuizEligible
	}

	if err := s.termRepo.Create(&term); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create slang term")
		return nil, fmt.Errorf("creating term: %w", err)
	}

	// The cached pool for this category is stale now.
	s.distractors.ResetCache()

	return s.toResponse(&term)
}

func (s *adminTermService) GetTerm(name string) (*dto.TermResponseDTO, error) {
	term, err := s.termRepo.FindByName(name)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, quizerr.NewValidation(quizerr.ReasonTermNotFound, "term '%s' not found", name)
		}
		return nil, fmt.Errorf("fetching term: %w", err)
	}
	return s.toResponse(term)
}

func (s *adminTermService) ListTerms(category, difficulty string) ([]dto.TermResponseDTO, error) {
	terms, err := s.termRepo.FindAll(category, difficulty)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list slang terms")
		return nil, fmt.Errorf("listing terms: %w", err)
	}

	responses := make([]dto.TermResponseDTO, 0, len(terms))
	for i := range terms {
		resp, err := s.toResponse(&terms[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *adminTermService) DeleteTerm(name string) error {
	if err := s.termRepo.Delete(name); err != nil {
		if repository.IsNotFound(err) {
			return quizerr.NewValidation(quizerr.ReasonTermNotFound, "term '%s' not found", name)
		}
		return fmt.Errorf("deleting term: %w", err)
	}
	s.distractors.ResetCache()
	return nil
}

func (s *adminTermService) toResponse(term *model.SlangTerm) (*dto.TermResponseDTO, error) {
	var resp dto.TermResponseDTO
	if err := copier.Copy(&resp, term); err != nil {
		log.Error().Err(err).Msg("Failed to copy SlangTerm to TermResponseDTO")
		return nil, fmt.Errorf("preparing term response: %w", err)
	}
	return &resp, nil
}
